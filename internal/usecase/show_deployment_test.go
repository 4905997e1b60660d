package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
	"github.com/zapswap/zapdeploy/internal/usecase/usecasetest"
)

type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectDeployment(ctx context.Context, records []*models.DeploymentRecord, prompt string) (*models.DeploymentRecord, error) {
	args := m.Called(ctx, records, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeploymentRecord), args.Error(1)
}

func seedRecords(t *testing.T, repo *usecasetest.Repository, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, repo.SaveDeployment(context.Background(), &models.DeploymentRecord{
			ID:        models.RecordID("default", 31337, name),
			Name:      name,
			Namespace: "default",
			ChainID:   31337,
			State:     models.StateDeployed,
		}))
	}
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{Namespace: "default", Network: &config.Network{ChainID: 31337}}

	t.Run("exact name", func(t *testing.T) {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapDirector", "MiniZapDirectorV2")

		uc := usecase.NewShowDeployment(cfg, repo, new(MockSelector), &usecasetest.Progress{})
		rec, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "ZapDirector"})
		require.NoError(t, err)
		assert.Equal(t, "ZapDirector", rec.Name)
	})

	t.Run("single fuzzy match", func(t *testing.T) {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapDirector", "ZapStake")

		uc := usecase.NewShowDeployment(cfg, repo, new(MockSelector), &usecasetest.Progress{})
		rec, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "stake"})
		require.NoError(t, err)
		assert.Equal(t, "ZapStake", rec.Name)
	})

	t.Run("ambiguous match prompts", func(t *testing.T) {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapDirector", "MiniZapDirectorV2")

		selector := new(MockSelector)
		selector.On("SelectDeployment", ctx, mock.Anything, mock.Anything).
			Return(&models.DeploymentRecord{Name: "MiniZapDirectorV2"}, nil)

		uc := usecase.NewShowDeployment(cfg, repo, selector, &usecasetest.Progress{})
		rec, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "director"})
		require.NoError(t, err)
		assert.Equal(t, "MiniZapDirectorV2", rec.Name)
		selector.AssertExpectations(t)
	})

	t.Run("ambiguous match fails non-interactively", func(t *testing.T) {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapDirector", "MiniZapDirectorV2")

		nonInteractive := *cfg
		nonInteractive.NonInteractive = true
		uc := usecase.NewShowDeployment(&nonInteractive, repo, new(MockSelector), &usecasetest.Progress{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "director"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple deployments match")
	})

	t.Run("no match", func(t *testing.T) {
		repo := usecasetest.NewRepository()
		seedRecords(t, repo, "ZapStake")

		uc := usecase.NewShowDeployment(cfg, repo, new(MockSelector), &usecasetest.Progress{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "wizard"})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestMatchRecords_ExactCaseInsensitiveWins(t *testing.T) {
	records := []*models.DeploymentRecord{{Name: "ZapDirector"}, {Name: "MiniZapDirectorV2"}}
	matches := usecase.MatchRecords(records, "zapdirector")
	require.Len(t, matches, 1)
	assert.Equal(t, "ZapDirector", matches[0].Name)
}

func TestForgetDeployment(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{Namespace: "default", Network: &config.Network{ChainID: 31337}}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := usecasetest.NewRepository()
	seedRecords(t, repo, "ZapStake", "ZapWizard")

	uc := usecase.NewForgetDeployment(cfg, repo, log)
	rec, err := uc.Run(ctx, usecase.ForgetDeploymentParams{Name: "ZapStake"})
	require.NoError(t, err)
	assert.Equal(t, "ZapStake", rec.Name)

	_, err = repo.GetDeployment(ctx, models.RecordID("default", 31337, "ZapStake"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = repo.GetDeployment(ctx, models.RecordID("default", 31337, "ZapWizard"))
	assert.NoError(t, err)

	_, err = uc.Run(ctx, usecase.ForgetDeploymentParams{Name: "ZapStake"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

type stubResolver map[string]*config.Network

func (s stubResolver) GetNetworks(context.Context) []string {
	return []string{"localhost", "mainnet", "broken"}
}

func (s stubResolver) ResolveNetwork(_ context.Context, name string) (*config.Network, error) {
	if n, ok := s[name]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("unknown network: %s", name)
}

func (s stubResolver) ChainName(chainID uint64) string {
	if chainID == 1 {
		return "ethereum-mainnet"
	}
	return ""
}

func TestListNetworks(t *testing.T) {
	resolver := stubResolver{
		"localhost": {Name: "localhost", ChainID: 31337, Dev: true},
		"mainnet":   {Name: "mainnet", ChainID: 1},
	}

	result, err := usecase.NewListNetworks(resolver).Run(context.Background(), usecase.ListNetworksParams{})
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	local := result.Networks[0]
	assert.True(t, local.Dev)
	assert.Equal(t, []string{"uniswap router"}, local.Tables)

	mainnet := result.Networks[1]
	assert.Equal(t, "ethereum-mainnet", mainnet.ChainName)
	assert.Equal(t, []string{"uniswap router", "weth", "gzap"}, mainnet.Tables)

	assert.Error(t, result.Networks[2].Error)
	assert.Len(t, result.Tables, 3)
}
