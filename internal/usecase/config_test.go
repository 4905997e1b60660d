package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
	"github.com/zapswap/zapdeploy/internal/usecase/usecasetest"
)

type memoryDefaultsStore struct {
	saved *config.Defaults
}

func (s *memoryDefaultsStore) Exists() bool { return s.saved != nil }

func (s *memoryDefaultsStore) Load(context.Context) (*config.Defaults, error) {
	if s.saved == nil {
		return &config.Defaults{}, nil
	}
	clone := *s.saved
	return &clone, nil
}

func (s *memoryDefaultsStore) Save(_ context.Context, defaults *config.Defaults) error {
	clone := *defaults
	s.saved = &clone
	return nil
}

func (s *memoryDefaultsStore) Path() string { return ".zapdeploy/config.local.json" }

type describedRepository struct{ *usecasetest.Repository }

func (describedRepository) Describe() string { return ".zapdeploy/deployments.json" }

type describedLocker struct{ *usecasetest.Locker }

func (describedLocker) Describe() string { return "localhost:6379 db=0 ttl=30m0s" }

func TestShowConfig(t *testing.T) {
	ctx := context.Background()
	localhost := &config.Network{Name: "localhost", ChainID: 31337, Dev: true}
	resolver := stubResolver{"localhost": localhost}

	t.Run("resolved session", func(t *testing.T) {
		cfg := &config.RuntimeConfig{
			Namespace: "staging",
			Network:   localhost,
			Project: &config.ProjectConfig{
				Lock: config.LockConfig{Backend: config.LockBackendRedis},
			},
		}
		store := &memoryDefaultsStore{saved: &config.Defaults{Namespace: "staging", Network: "localhost"}}
		uc := usecase.NewShowConfig(cfg, store, resolver,
			describedRepository{usecasetest.NewRepository()}, describedLocker{usecasetest.NewLocker()})

		result, err := uc.Run(ctx)
		require.NoError(t, err)
		assert.True(t, result.DefaultsSaved)
		assert.Equal(t, "staging", result.Namespace)
		assert.Equal(t, uint64(31337), result.Network.ChainID)
		assert.Equal(t, []string{"uniswap router"}, result.CoveredTables)
		assert.Equal(t, []string{"weth", "gzap"}, result.MissingTables)
		assert.Equal(t, usecase.BackendInfo{Kind: config.RegistryBackendFile, Location: ".zapdeploy/deployments.json"}, result.Registry)
		assert.Equal(t, usecase.BackendInfo{Kind: config.LockBackendRedis, Location: "localhost:6379 db=0 ttl=30m0s"}, result.Lock)
	})

	t.Run("no network and nothing saved", func(t *testing.T) {
		uc := usecase.NewShowConfig(&config.RuntimeConfig{}, &memoryDefaultsStore{}, resolver,
			usecasetest.NewRepository(), usecasetest.NewLocker())

		result, err := uc.Run(ctx)
		require.NoError(t, err)
		assert.False(t, result.DefaultsSaved)
		assert.Equal(t, config.DefaultNamespace, result.Namespace)
		assert.Nil(t, result.Network)
		assert.Empty(t, result.CoveredTables)
		assert.Equal(t, config.LockBackendFile, result.Lock.Kind)
		assert.Empty(t, result.Lock.Location)
	})
}

func TestSetConfig(t *testing.T) {
	ctx := context.Background()
	resolver := stubResolver{"localhost": {Name: "localhost", ChainID: 31337, Dev: true}}

	t.Run("namespace via alias", func(t *testing.T) {
		store := &memoryDefaultsStore{}
		result, err := usecase.NewSetConfig(store, resolver).Run(ctx, usecase.SetConfigParams{Key: "NS", Value: "staging"})
		require.NoError(t, err)
		assert.Equal(t, config.KeyNamespace, result.Key)
		assert.Nil(t, result.Network)
		assert.Equal(t, "staging", store.saved.Namespace)
	})

	t.Run("network must resolve", func(t *testing.T) {
		store := &memoryDefaultsStore{}
		uc := usecase.NewSetConfig(store, resolver)

		_, err := uc.Run(ctx, usecase.SetConfigParams{Key: "network", Value: "atlantis"})
		assert.Error(t, err)
		assert.Nil(t, store.saved)

		result, err := uc.Run(ctx, usecase.SetConfigParams{Key: "net", Value: "localhost"})
		require.NoError(t, err)
		assert.Equal(t, uint64(31337), result.Network.ChainID)
		assert.Equal(t, "localhost", store.saved.Network)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		store := &memoryDefaultsStore{}
		uc := usecase.NewSetConfig(store, resolver)

		_, err := uc.Run(ctx, usecase.SetConfigParams{Key: "color", Value: "blue"})
		assert.ErrorContains(t, err, "Available keys: namespace (ns), network (net)")

		_, err = uc.Run(ctx, usecase.SetConfigParams{Key: "namespace", Value: "a/b"})
		assert.Error(t, err)

		_, err = uc.Run(ctx, usecase.SetConfigParams{Key: "namespace", Value: ""})
		assert.Error(t, err)
		assert.Nil(t, store.saved)
	})
}

func TestRemoveConfig(t *testing.T) {
	ctx := context.Background()

	_, err := usecase.NewRemoveConfig(&memoryDefaultsStore{}).Run(ctx, usecase.RemoveConfigParams{Key: "network"})
	assert.ErrorContains(t, err, "no config file found")

	store := &memoryDefaultsStore{saved: &config.Defaults{Namespace: "staging", Network: "localhost"}}
	uc := usecase.NewRemoveConfig(store)

	result, err := uc.Run(ctx, usecase.RemoveConfigParams{Key: "namespace"})
	require.NoError(t, err)
	assert.Equal(t, "staging", result.RemovedValue)
	assert.Empty(t, store.saved.Namespace)
	assert.Equal(t, config.DefaultNamespace, store.saved.EffectiveNamespace())

	result, err = uc.Run(ctx, usecase.RemoveConfigParams{Key: "network"})
	require.NoError(t, err)
	assert.Equal(t, "localhost", result.RemovedValue)
	assert.Empty(t, store.saved.Network)
}

func TestResetDeployments(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	seed := func(t *testing.T) *usecasetest.Repository {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapStake", "ZapWizard")
		require.NoError(t, repo.SaveDeployment(ctx, &models.DeploymentRecord{
			ID: models.RecordID("default", 1, "ZapStake"), Name: "ZapStake", Namespace: "default", ChainID: 1,
		}))
		return repo
	}

	cfg := &config.RuntimeConfig{Namespace: "default", Network: &config.Network{Name: "localhost", ChainID: 31337}}

	t.Run("dry run keeps records", func(t *testing.T) {
		repo := seed(t)
		result, err := usecase.NewResetDeployments(cfg, repo, log).Run(ctx, usecase.ResetDeploymentsParams{DryRun: true})
		require.NoError(t, err)
		assert.Len(t, result.Removed, 2)

		all, err := repo.ListDeployments(ctx, domain.RecordFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("deletes only the current environment", func(t *testing.T) {
		repo := seed(t)
		result, err := usecase.NewResetDeployments(cfg, repo, log).Run(ctx, usecase.ResetDeploymentsParams{})
		require.NoError(t, err)
		assert.Len(t, result.Removed, 2)

		all, err := repo.ListDeployments(ctx, domain.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, uint64(1), all[0].ChainID)
	})

	t.Run("network required", func(t *testing.T) {
		_, err := usecase.NewResetDeployments(&config.RuntimeConfig{Namespace: "default"}, usecasetest.NewRepository(), log).
			Run(ctx, usecase.ResetDeploymentsParams{})
		assert.Error(t, err)
	})
}
