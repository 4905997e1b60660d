package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/wire"
	"github.com/zapswap/zapdeploy/internal/adapters/blockchain"
	"github.com/zapswap/zapdeploy/internal/adapters/interactive"
	"github.com/zapswap/zapdeploy/internal/adapters/lock"
	"github.com/zapswap/zapdeploy/internal/adapters/network"
	"github.com/zapswap/zapdeploy/internal/adapters/progress"
	"github.com/zapswap/zapdeploy/internal/adapters/repository/contracts"
	"github.com/zapswap/zapdeploy/internal/adapters/repository/deployments"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// ProvideDeploymentRepository selects the record store named by registry.backend
func ProvideDeploymentRepository(cfg *config.RuntimeConfig) (usecase.DeploymentRepository, func(), error) {
	switch backend := cfg.Project.RegistryBackend(); backend {
	case config.RegistryBackendFile:
		repo, err := deployments.NewFileRepositoryFromConfig(cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	case config.RegistryBackendPostgres:
		repo, err := deployments.NewPostgresRepository(context.Background(), cfg.Project.Registry.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry backend %q", backend)
	}
}

// ProvideSessionLocker selects the session lock named by lock.backend
func ProvideSessionLocker(cfg *config.RuntimeConfig, log *slog.Logger) (usecase.SessionLocker, func(), error) {
	switch backend := cfg.Project.LockBackend(); backend {
	case config.LockBackendFile:
		return lock.NewFileLocker(cfg.DataDir), func() {}, nil
	case config.LockBackendRedis:
		lc := cfg.Project.Lock
		locker, err := lock.NewRedisLocker(context.Background(), lc.RedisAddr, lc.RedisDB, lc.TTL)
		if err != nil {
			return nil, nil, err
		}
		return locker, func() {
			if err := locker.Close(); err != nil {
				log.Warn("failed to close redis connection", "error", err)
			}
		}, nil
	case config.LockBackendNone:
		log.Debug("session locking disabled")
		return lock.NoopLocker{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown lock backend %q", backend)
	}
}

// ProvideArtifactRepository indexes the compiled artifacts directory
func ProvideArtifactRepository(cfg *config.RuntimeConfig, log *slog.Logger) *contracts.Repository {
	dir := "artifacts"
	if cfg.Project != nil && cfg.Project.ArtifactsDir != "" {
		dir = cfg.Project.ArtifactsDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return contracts.NewRepository(dir, log)
}

// ProvideProgressSink narrates runs on a terminal; JSON and non-interactive
// output get the structured log instead
func ProvideProgressSink(cfg *config.RuntimeConfig, log *slog.Logger) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive {
		return progress.NewLogSink(log)
	}
	return progress.NewRunProgress()
}

// StorageSet provides record, artifact and lock storage
var StorageSet = wire.NewSet(
	ProvideDeploymentRepository,
	ProvideArtifactRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
	ProvideSessionLocker,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	ProvideProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewBackend,
	wire.Bind(new(usecase.ChainBackend), new(*blockchain.Backend)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	StorageSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
