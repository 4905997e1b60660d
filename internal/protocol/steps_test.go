package protocol_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/addressbook"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/protocol"
	"github.com/zapswap/zapdeploy/internal/usecase"
	"github.com/zapswap/zapdeploy/internal/usecase/usecasetest"
)

var dev = common.HexToAddress("0x00000000000000000000000000000000000000de")

type env struct {
	cfg      *config.RuntimeConfig
	repo     *usecasetest.Repository
	backend  *usecasetest.Backend
	progress *usecasetest.Progress
}

func newEnv(chainID uint64) *env {
	return &env{
		cfg: &config.RuntimeConfig{
			Namespace: "default",
			Network:   &config.Network{ChainID: chainID, Name: "test"},
			Project:   &config.ProjectConfig{Accounts: config.AccountsConfig{Dev: dev.Hex()}},
		},
		repo:     usecasetest.NewRepository(),
		backend:  usecasetest.NewBackend(),
		progress: &usecasetest.Progress{},
	}
}

func (e *env) run(tags ...string) (*usecase.RunDeploymentResult, error) {
	uc := usecase.NewRunDeployment(e.cfg, protocol.NewRegistry(), e.repo, &usecasetest.Artifacts{},
		e.backend, usecasetest.NewLocker(), e.progress, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return uc.Run(context.Background(), usecase.RunDeploymentParams{Tags: tags})
}

func (e *env) address(t *testing.T, name string) common.Address {
	t.Helper()
	rec, err := e.repo.GetDeployment(context.Background(), models.RecordID("default", e.cfg.Network.ChainID, name))
	require.NoError(t, err)
	return common.HexToAddress(rec.Address)
}

func (e *env) args(t *testing.T, contract string) []string {
	t.Helper()
	for _, d := range e.backend.Deploys {
		if d.Contract == contract {
			return usecase.RenderArgs(d.Args)
		}
	}
	t.Fatalf("%s was not deployed", contract)
	return nil
}

func TestPlanOrder(t *testing.T) {
	plan, err := usecase.BuildPlan(protocol.Steps(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		protocol.GZapToken,
		protocol.UniswapV2Factory,
		protocol.WETH9Mock,
		protocol.UniswapV2Router02,
		protocol.ZapDirector,
		protocol.MiniZapDirectorV2,
		protocol.ZapMigrate,
		protocol.ZapStake,
		protocol.ZapWizard,
	}, plan.Names())
}

func TestPlanTagFilter(t *testing.T) {
	plan, err := usecase.BuildPlan(protocol.Steps(), []string{protocol.ZapWizard})
	require.NoError(t, err)
	assert.Equal(t, []string{
		protocol.GZapToken,
		protocol.UniswapV2Factory,
		protocol.WETH9Mock,
		protocol.UniswapV2Router02,
		protocol.ZapStake,
		protocol.ZapWizard,
	}, plan.Names())
}

func TestRopstenDeployment(t *testing.T) {
	e := newEnv(3)

	result, err := e.run()
	require.NoError(t, err)
	assert.Equal(t, 9, result.Deployed())

	gzap := e.address(t, protocol.GZapToken)
	factory := e.address(t, protocol.UniswapV2Factory)
	mock := e.address(t, protocol.WETH9Mock)
	router := e.address(t, protocol.UniswapV2Router02)
	stake := e.address(t, protocol.ZapStake)
	director := e.address(t, protocol.ZapDirector)
	wizard := e.address(t, protocol.ZapWizard)
	mini := e.address(t, protocol.MiniZapDirectorV2)

	assert.Equal(t, []string{dev.Hex()}, e.args(t, protocol.UniswapV2Factory))
	assert.Equal(t, []string{factory.Hex(), mock.Hex()}, e.args(t, protocol.UniswapV2Router02))
	assert.Equal(t, []string{gzap.Hex()}, e.args(t, protocol.ZapStake))
	assert.Equal(t, []string{
		gzap.Hex(), dev.Hex(), "1000000000000000000000", "0", "1000000000000000000000",
	}, e.args(t, protocol.ZapDirector))
	assert.Equal(t, []string{factory.Hex(), stake.Hex(), gzap.Hex(), mock.Hex()}, e.args(t, protocol.ZapWizard))
	assert.Equal(t, []string{
		"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D", router.Hex(),
	}, e.args(t, protocol.ZapMigrate))
	// Ropsten rewards in the ZapDirector record instead of the table token
	assert.Equal(t, []string{director.Hex()}, e.args(t, protocol.MiniZapDirectorV2))

	assert.Equal(t, director, e.backend.Owners[gzap])
	assert.Equal(t, dev, e.backend.Owners[director])
	assert.Equal(t, dev, e.backend.Owners[wizard])
	assert.Equal(t, dev, e.backend.Owners[mini])

	require.Len(t, e.backend.TransfersTo(wizard), 1)
	assert.Equal(t, []any{dev, true, false}, e.backend.TransfersTo(wizard)[0].Args)
	require.Len(t, e.backend.TransfersTo(director), 1)
	assert.Equal(t, []any{dev}, e.backend.TransfersTo(director)[0].Args)

	assert.Equal(t, []string{
		"Transfer GZap Ownership to Director",
		"Transfer ownership of ZapDirector to dev",
		"Transfer ownership of MiniZapDirector to dev",
		"Setting wizard owner",
	}, e.progress.Infos)

	// Second run is a no-op
	_, err = e.run()
	require.NoError(t, err)
	assert.Len(t, e.backend.Deploys, 9)
	assert.Len(t, e.backend.Transfers, 4)
}

func TestMainnetDeployment(t *testing.T) {
	e := newEnv(1)

	result, err := e.run()
	require.NoError(t, err)
	assert.Equal(t, 8, result.Deployed())

	weth, err := addressbook.Resolve(addressbook.WETH, "1")
	require.NoError(t, err)
	sushi, err := addressbook.Resolve(addressbook.GZap, "1")
	require.NoError(t, err)

	factory := e.address(t, protocol.UniswapV2Factory)
	assert.Equal(t, []string{factory.Hex(), weth.Hex()}, e.args(t, protocol.UniswapV2Router02))
	assert.Equal(t, []string{sushi.Hex()}, e.args(t, protocol.MiniZapDirectorV2))

	_, err = e.repo.GetDeployment(context.Background(), models.RecordID("default", 1, protocol.WETH9Mock))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUnknownNetworks(t *testing.T) {
	t.Run("mini director has no reward token on hardhat", func(t *testing.T) {
		e := newEnv(31337)
		_, err := e.run(protocol.MiniZapDirectorV2)

		var unknown *domain.UnknownNetworkError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "31337", unknown.ChainID)
		assert.Equal(t, addressbook.GZap.Name(), unknown.Table)
		for _, d := range e.backend.Deploys {
			assert.NotEqual(t, protocol.MiniZapDirectorV2, d.Contract)
		}
	})

	t.Run("migrator has no uniswap router on polygon", func(t *testing.T) {
		e := newEnv(137)
		_, err := e.run(protocol.ZapMigrate)

		var unknown *domain.UnknownNetworkError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "137", unknown.ChainID)
		for _, d := range e.backend.Deploys {
			assert.NotEqual(t, protocol.ZapMigrate, d.Contract)
		}
	})

	t.Run("router has no weth on an unlisted chain", func(t *testing.T) {
		e := newEnv(424242)
		_, err := e.run(protocol.UniswapV2Router02)
		assert.True(t, errors.Is(err, domain.ErrUnknownNetwork))
	})
}
