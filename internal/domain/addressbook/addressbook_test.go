package addressbook

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapswap/zapdeploy/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		table    Table
		chainID  string
		expected string
		wantErr  bool
	}{
		{name: "mainnet router", table: UniswapRouter, chainID: "1", expected: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"},
		{name: "moonbase router", table: UniswapRouter, chainID: "1287", expected: "0x2823caf546C7d09a4832bd1da14f2C6b6E665e05"},
		{name: "hardhat router", table: UniswapRouter, chainID: "31337", expected: "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"},
		{name: "router unknown on polygon", table: UniswapRouter, chainID: "137", wantErr: true},
		{name: "weth on arbitrum", table: WETH, chainID: "42161", expected: "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"},
		{name: "weth unknown on hardhat", table: WETH, chainID: "31337", wantErr: true},
		{name: "empty chain id", table: GZap, chainID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := Resolve(tt.table, tt.chainID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrUnknownNetwork))
				assert.Equal(t, common.Address{}, addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress(tt.expected), addr)
		})
	}
}

func TestResolve_MissingKeyReportsChain(t *testing.T) {
	table := NewTable("test", map[string]string{"1": "0x0000000000000000000000000000000000000001"})

	_, err := Resolve(table, "3")
	require.Error(t, err)

	var unknown *domain.UnknownNetworkError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "3", unknown.ChainID)
	assert.Equal(t, "test", unknown.Table)
}

func TestResolveWithOverride(t *testing.T) {
	mock := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	override := Override{ChainIDs: []string{"3", "31337"}, Deployment: "WETH9Mock"}

	var looked []string
	lookup := func(name string) (common.Address, error) {
		looked = append(looked, name)
		return mock, nil
	}

	t.Run("override chain reads the deployment", func(t *testing.T) {
		looked = nil
		addr, err := ResolveWithOverride(WETH, "3", override, lookup)
		require.NoError(t, err)
		assert.Equal(t, mock, addr)
		assert.Equal(t, []string{"WETH9Mock"}, looked)
	})

	t.Run("other chains read the table", func(t *testing.T) {
		looked = nil
		addr, err := ResolveWithOverride(WETH, "1", override, lookup)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), addr)
		assert.Empty(t, looked)
	})

	t.Run("lookup errors propagate", func(t *testing.T) {
		missing := &domain.MissingDependencyError{Name: "WETH9Mock"}
		_, err := ResolveWithOverride(WETH, "31337", override, func(string) (common.Address, error) {
			return common.Address{}, missing
		})
		assert.ErrorIs(t, err, domain.ErrMissingDependency)
	})
}

func TestTable_ChainIDsSortedNumerically(t *testing.T) {
	assert.Equal(t, []string{"1", "3", "4", "5", "42", "1287", "31337"}, UniswapRouter.ChainIDs())
}
