package usecase

import (
	"context"

	"github.com/zapswap/zapdeploy/internal/domain/addressbook"
	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// BackendInfo names a storage backend and where it keeps its state
type BackendInfo struct {
	Kind     string
	Location string
}

// ShowConfigResult is the session a command would run with
type ShowConfigResult struct {
	Defaults     *config.Defaults
	DefaultsPath string
	// DefaultsSaved is false when no defaults file exists yet
	DefaultsSaved bool

	Namespace string
	// Network is nil when neither --network nor a saved default names one
	Network   *config.Network
	ChainName string
	// CoveredTables and MissingTables split the address tables by whether
	// they have an entry for the network's chain
	CoveredTables []string
	MissingTables []string

	Registry BackendInfo
	Lock     BackendInfo
}

// ShowConfig reports the resolved session: defaults, network and backends
type ShowConfig struct {
	config   *config.RuntimeConfig
	store    DefaultsStore
	resolver NetworkResolver
	repo     DeploymentRepository
	locker   SessionLocker
}

func NewShowConfig(
	cfg *config.RuntimeConfig,
	store DefaultsStore,
	resolver NetworkResolver,
	repo DeploymentRepository,
	locker SessionLocker,
) *ShowConfig {
	return &ShowConfig{
		config:   cfg,
		store:    store,
		resolver: resolver,
		repo:     repo,
		locker:   locker,
	}
}

func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	defaults, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Defaults:      defaults,
		DefaultsPath:  uc.store.Path(),
		DefaultsSaved: uc.store.Exists(),
		Namespace:     uc.config.Namespace,
		Network:       uc.config.Network,
		Registry: BackendInfo{
			Kind:     uc.config.Project.RegistryBackend(),
			Location: describe(uc.repo),
		},
		Lock: BackendInfo{
			Kind:     uc.config.Project.LockBackend(),
			Location: describe(uc.locker),
		},
	}
	if result.Namespace == "" {
		result.Namespace = defaults.EffectiveNamespace()
	}

	if n := uc.config.Network; n != nil {
		result.ChainName = uc.resolver.ChainName(n.ChainID)
		chainKey := n.ChainKey()
		for _, t := range addressbook.Tables() {
			if _, ok := t.Lookup(chainKey); ok {
				result.CoveredTables = append(result.CoveredTables, t.Name())
			} else {
				result.MissingTables = append(result.MissingTables, t.Name())
			}
		}
	}

	return result, nil
}

func describe(v any) string {
	if d, ok := v.(Describer); ok {
		return d.Describe()
	}
	return ""
}
