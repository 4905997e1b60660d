package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

func init() {
	color.NoColor = true
}

func testRecord(name string, state models.StepState) *models.DeploymentRecord {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.DeploymentRecord{
		ID:        models.RecordID("default", 31337, name),
		Name:      name,
		Namespace: "default",
		ChainID:   31337,
		Contract:  name,
		Address:   "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		State:     state,
		Tags:      []string{name},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestFormatState(t *testing.T) {
	assert.Equal(t, "Ownership Transferred", FormatState(models.StateOwnershipTransferred))
	assert.Equal(t, "Deployed", FormatState(models.StateDeployed))
	assert.Equal(t, "Ownership Pending", FormatState(models.StateOwnershipPending))
	assert.Equal(t, "Undeployed", FormatState(models.StateUndeployed))
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Connection refused", FormatError("failed to connect: dial: connection refused"))
}

func TestDeploymentsRenderer(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewDeploymentsRenderer(&buf, nil)
		require.NoError(t, r.RenderDeploymentList(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})

	t.Run("groups by namespace and chain", func(t *testing.T) {
		owned := testRecord("ZapStake", models.StateOwnershipTransferred)
		owned.Owner = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
		pending := testRecord("ZapDirector", models.StateOwnershipPending)
		pending.Tags = []string{"ZapDirector", "core"}

		var buf bytes.Buffer
		r := NewDeploymentsRenderer(&buf, func(chainID uint64) string {
			if chainID == 31337 {
				return "localhost"
			}
			return ""
		})
		require.NoError(t, r.RenderDeploymentList(&usecase.DeploymentListResult{
			Deployments: []*models.DeploymentRecord{owned, pending},
		}))

		out := buf.String()
		assert.Contains(t, out, "DEFAULT")
		assert.Contains(t, out, "31337 (localhost)")
		assert.Contains(t, out, "CONTRACTS")
		assert.Contains(t, out, "OWNERSHIP PENDING")
		assert.Contains(t, out, "ZapDirector (core)")
		assert.Contains(t, out, "owner 0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
		assert.Contains(t, out, "Total deployments: 2")
		assert.Less(t, strings.Index(out, "CONTRACTS"), strings.Index(out, "OWNERSHIP PENDING"))
	})
}

func TestDeploymentRenderer(t *testing.T) {
	rec := testRecord("ZapDirector", models.StateOwnershipPending)
	rec.Contract = "MiniZapDirectorV2"
	rec.Args = []string{"0x0000000000000000000000000000000000000001", "100"}
	rec.TxHash = "0xabc"

	var buf bytes.Buffer
	require.NoError(t, NewDeploymentRenderer(&buf, nil).RenderDeployment(rec))

	out := buf.String()
	assert.Contains(t, out, "Deployment: default/31337/ZapDirector")
	assert.Contains(t, out, "Contract: MiniZapDirectorV2")
	assert.Contains(t, out, "State: Ownership Pending")
	assert.Contains(t, out, "the next run will retry it")
	assert.Contains(t, out, "[1] 100")
	assert.Contains(t, out, "Hash: 0xabc")
}

func TestPlanRenderer(t *testing.T) {
	token := &usecase.Step{Name: "ZapToken"}
	stake := &usecase.Step{Name: "ZapStake", Dependencies: []string{"ZapToken"}}

	var buf bytes.Buffer
	require.NoError(t, NewPlanRenderer(&buf).Render(&usecase.PlanDeploymentResult{
		Network:   &config.Network{Name: "localhost", ChainID: 31337},
		Namespace: "default",
		Plan:      &usecase.DeploymentPlan{Steps: []*usecase.Step{token, stake}},
		Entries: []usecase.PlanEntry{
			{Step: token, Record: testRecord("ZapToken", models.StateDeployed)},
			{Step: stake, Dependencies: []string{"ZapToken"}},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "Deployment plan for default/localhost (31337)")
	assert.Contains(t, out, "Undeployed")
	assert.Contains(t, out, "2 step(s), 1 to deploy")
	assert.Less(t, strings.Index(out, "ZapToken"), strings.Index(out, "ZapStake"))
}

func TestRunRenderer(t *testing.T) {
	deployed := testRecord("ZapToken", models.StateDeployed)
	reused := testRecord("ZapStake", models.StateOwnershipTransferred)
	dev := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	t.Run("successful run", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRunRenderer(&buf).Render(&usecase.RunDeploymentResult{
			SessionID: "session",
			Network:   &config.Network{Name: "localhost", ChainID: 31337},
			Namespace: "default",
			Executed: []*usecase.StepResult{
				{Step: &usecase.Step{Name: "ZapToken"}, Outcome: &usecase.StepOutcome{Record: deployed, Deployed: true}},
				{Step: &usecase.Step{Name: "ZapStake"}, Outcome: &usecase.StepOutcome{
					Record:    reused,
					Transfers: []usecase.TransferResult{{Target: "ZapStake", NewOwner: dev, TxHash: "0xdef"}},
				}},
				{Step: &usecase.Step{Name: "Mock"}, Outcome: &usecase.StepOutcome{Skipped: true}},
			},
			Success: true,
		}))

		out := buf.String()
		assert.Contains(t, out, "Deployment summary")
		assert.Contains(t, out, "ZapToken deployed at")
		assert.Contains(t, out, "ZapStake reusing")
		assert.Contains(t, out, "transferred ZapStake to "+dev.Hex())
		assert.Contains(t, out, "Mock skipped")
		assert.Contains(t, out, "3 step(s) complete, 1 contract(s) deployed")
	})

	t.Run("failed run", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRunRenderer(&buf).Render(&usecase.RunDeploymentResult{
			Namespace: "default",
			Failed: &usecase.StepResult{
				Step:  &usecase.Step{Name: "ZapStake"},
				Error: errors.New("execution reverted"),
			},
		}))
		assert.Contains(t, buf.String(), "ZapStake: execution reverted")
		assert.Contains(t, buf.String(), "Run stopped at ZapStake after 0 step(s)")
	})

	t.Run("dry run", func(t *testing.T) {
		planned := testRecord("ZapToken", models.StateUndeployed)
		planned.Address = ""

		director := testRecord("ZapDirector", models.StateUndeployed)
		director.Address = ""

		result := &usecase.RunDeploymentResult{
			Namespace: "default",
			DryRun:    true,
			Executed: []*usecase.StepResult{
				{Step: &usecase.Step{Name: "ZapToken"}, Outcome: &usecase.StepOutcome{Record: planned}},
				{Step: &usecase.Step{Name: "ZapDirector"}, Outcome: &usecase.StepOutcome{
					Record:    director,
					Transfers: []usecase.TransferResult{{Target: "GZapToken", PendingOn: "ZapDirector"}},
				}},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, NewRunRenderer(&buf).Render(result))
		assert.Contains(t, buf.String(), "Dry run summary")
		assert.Contains(t, buf.String(), "ZapToken would deploy")
		assert.Contains(t, buf.String(), "would transfer GZapToken to ZapDirector once it is deployed")
		assert.NotContains(t, buf.String(), "0x0000000000000000000000000000000000000000")
		assert.Contains(t, buf.String(), "nothing was sent")

		report := NewRunReport(result)
		require.Len(t, report.Steps[1].Transfers, 1)
		assert.Equal(t, "ZapDirector", report.Steps[1].Transfers[0].PendingOn)
		assert.Empty(t, report.Steps[1].Transfers[0].NewOwner)
	})
}

func TestNetworksRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "mainnet", ChainID: 1, ChainName: "ethereum-mainnet"},
			{Name: "localhost", ChainID: 31337, Dev: true},
			{Name: "broken", Error: errors.New("no rpc url")},
		},
		Tables: []usecase.TableCoverage{{Name: "WETH", ChainIDs: []string{"1", "3"}}},
	}))

	out := buf.String()
	assert.Contains(t, out, "mainnet - Chain ID: 1 (ethereum-mainnet)")
	assert.Contains(t, out, "localhost - Chain ID: 31337 [dev]")
	assert.Contains(t, out, "broken - Error: no rpc url")
	assert.Contains(t, out, "WETH")
	assert.Contains(t, out, "1, 3")
}

func TestResetRenderer(t *testing.T) {
	network := &config.Network{Name: "localhost", ChainID: 31337}

	var buf bytes.Buffer
	require.NoError(t, NewResetRenderer(&buf).Render(&usecase.ResetDeploymentsResult{Namespace: "default", Network: network}))
	assert.Equal(t, "No deployments to reset in default/localhost\n", buf.String())

	buf.Reset()
	require.NoError(t, NewResetRenderer(&buf).Render(&usecase.ResetDeploymentsResult{
		Namespace: "default",
		Network:   network,
		Removed:   []*models.DeploymentRecord{testRecord("ZapToken", models.StateDeployed)},
	}))
	assert.Contains(t, buf.String(), "removed 1 record(s) from default/localhost")
}

func TestConfigRenderer(t *testing.T) {
	result := &usecase.ShowConfigResult{
		Defaults:      &config.Defaults{Namespace: "staging", Network: "ropsten"},
		DefaultsPath:  "/work/.zapdeploy/config.local.json",
		DefaultsSaved: true,
		Namespace:     "production",
		Network:       &config.Network{Name: "ropsten", ChainID: 3},
		ChainName:     "ethereum-testnet-ropsten",
		CoveredTables: []string{"uniswap router", "weth", "gzap"},
		Registry:      usecase.BackendInfo{Kind: config.RegistryBackendPostgres, Location: "zap@db:5432/deployments"},
		Lock:          usecase.BackendInfo{Kind: config.LockBackendRedis, Location: "localhost:6379 db=0 ttl=30m0s"},
	}

	t.Run("session", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConfigRenderer(&buf).RenderConfig(result))

		out := buf.String()
		assert.Contains(t, out, "production [overrides saved staging]")
		assert.Contains(t, out, "ropsten - Chain ID: 3 (ethereum-testnet-ropsten) [saved]")
		assert.Contains(t, out, "uniswap router, weth, gzap")
		assert.NotContains(t, out, "no entry")
		assert.Contains(t, out, "postgres zap@db:5432/deployments")
		assert.Contains(t, out, "redis localhost:6379 db=0 ttl=30m0s")
	})

	t.Run("missing coverage and no network", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConfigRenderer(&buf).RenderConfig(&usecase.ShowConfigResult{
			Defaults:  &config.Defaults{},
			Namespace: "default",
			Registry:  usecase.BackendInfo{Kind: config.RegistryBackendFile},
			Lock:      usecase.BackendInfo{Kind: config.LockBackendFile},
		}))
		assert.Contains(t, buf.String(), "(not set, pass --network)")
		assert.Contains(t, buf.String(), "no saved defaults")

		assert.Equal(t, "uniswap router (no entry: weth, gzap)", coverage([]string{"uniswap router"}, []string{"weth", "gzap"}))
	})

	t.Run("structured", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderStructured(&buf, FormatJSON, NewConfigReport(result)))
		assert.JSONEq(t, `{
			"namespace": "production",
			"network": "ropsten",
			"chainId": 3,
			"chainName": "ethereum-testnet-ropsten",
			"coveredTables": ["uniswap router", "weth", "gzap"],
			"registry": {"kind": "postgres", "location": "zap@db:5432/deployments"},
			"lock": {"kind": "redis", "location": "localhost:6379 db=0 ttl=30m0s"},
			"defaults": {"namespace": "staging", "network": "ropsten"},
			"defaultsPath": "/work/.zapdeploy/config.local.json"
		}`, buf.String())
	})

	t.Run("set and remove", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConfigRenderer(&buf).RenderSet(&usecase.SetConfigResult{
			Key:     config.KeyNetwork,
			Value:   "ropsten",
			Network: &config.Network{Name: "ropsten", ChainID: 3},
		}))
		assert.Contains(t, buf.String(), "network default set to ropsten (chain 3)")

		buf.Reset()
		require.NoError(t, NewConfigRenderer(&buf).RenderRemove(&usecase.RemoveConfigResult{
			Key:          config.KeyNamespace,
			RemovedValue: "staging",
		}))
		assert.Contains(t, buf.String(), `cleared namespace staging, runs use "default"`)

		buf.Reset()
		require.NoError(t, NewConfigRenderer(&buf).RenderRemove(&usecase.RemoveConfigResult{Key: config.KeyNetwork}))
		assert.Contains(t, buf.String(), "No network default was saved")
	})
}

func TestRenderStructured(t *testing.T) {
	payload := map[string]any{"name": "ZapToken", "chainId": 31337}

	var buf bytes.Buffer
	require.NoError(t, RenderStructured(&buf, FormatJSON, payload))
	assert.JSONEq(t, `{"name":"ZapToken","chainId":31337}`, buf.String())

	buf.Reset()
	require.NoError(t, RenderStructured(&buf, FormatYAML, payload))
	assert.YAMLEq(t, "name: ZapToken\nchainId: 31337\n", buf.String())

	assert.Error(t, RenderStructured(&buf, "xml", payload))
}
