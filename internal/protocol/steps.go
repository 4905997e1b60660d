// Package protocol declares the Zap deployment steps.
package protocol

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/zapswap/zapdeploy/internal/domain/addressbook"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

const (
	WETH9Mock         = "WETH9Mock"
	GZapToken         = "GZapToken"
	UniswapV2Factory  = "UniswapV2Factory"
	UniswapV2Router02 = "UniswapV2Router02"
	ZapStake          = "ZapStake"
	ZapDirector       = "ZapDirector"
	ZapWizard         = "ZapWizard"
	ZapMigrate        = "ZapMigrate"
	MiniZapDirectorV2 = "MiniZapDirectorV2"
)

// MockChains get a WETH9Mock deployed and read WETH from it
var MockChains = []string{"3", "31337"}

var (
	// 1000 GZap per block
	gzapPerBlock = mustBig("1000000000000000000000")
	// bonus period ends at block 1000e18, effectively never
	bonusEndBlock = mustBig("1000000000000000000000")
	startBlock    = big.NewInt(0)
)

var wethOverride = addressbook.Override{ChainIDs: MockChains, Deployment: WETH9Mock}

// MiniZapDirectorV2 rewards in the ZapDirector on ropsten
var miniGZapOverride = addressbook.Override{ChainIDs: []string{"3"}, Deployment: ZapDirector}

// Registry is the static set of Zap deployment steps
type Registry struct {
	steps []*usecase.Step
}

// NewRegistry creates the step registry
func NewRegistry() *Registry {
	return &Registry{steps: Steps()}
}

// Steps implements usecase.StepRegistry
func (r *Registry) Steps() []*usecase.Step {
	return r.steps
}

// Steps returns a fresh copy of every Zap step
func Steps() []*usecase.Step {
	return []*usecase.Step{
		{
			Name: WETH9Mock,
			Tags: []string{WETH9Mock},
			Skip: func(sc *usecase.StepContext) bool {
				return !lo.Contains(MockChains, sc.ChainID())
			},
		},
		{
			Name: GZapToken,
			Tags: []string{GZapToken},
		},
		{
			Name: UniswapV2Factory,
			Tags: []string{UniswapV2Factory},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				return []any{sc.NamedAccounts().Dev}, nil
			},
		},
		{
			Name:         UniswapV2Router02,
			Tags:         []string{UniswapV2Router02},
			Dependencies: []string{UniswapV2Factory, WETH9Mock},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				factory, err := sc.Address(UniswapV2Factory)
				if err != nil {
					return nil, err
				}
				weth, err := sc.ResolveWithOverride(addressbook.WETH, wethOverride)
				if err != nil {
					return nil, err
				}
				return []any{factory, weth}, nil
			},
		},
		{
			Name:         ZapStake,
			Tags:         []string{ZapStake},
			Dependencies: []string{UniswapV2Factory, UniswapV2Router02, GZapToken},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				gzap, err := sc.Address(GZapToken)
				if err != nil {
					return nil, err
				}
				return []any{gzap}, nil
			},
		},
		{
			Name:         ZapDirector,
			Tags:         []string{ZapDirector},
			Dependencies: []string{UniswapV2Factory, UniswapV2Router02, GZapToken},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				gzap, err := sc.Address(GZapToken)
				if err != nil {
					return nil, err
				}
				dev := sc.NamedAccounts().Dev
				return []any{gzap, dev, new(big.Int).Set(gzapPerBlock), new(big.Int).Set(startBlock), new(big.Int).Set(bonusEndBlock)}, nil
			},
			Ownership: []usecase.OwnershipHandoff{
				{
					Target:   GZapToken,
					NewOwner: addressOf(ZapDirector),
					Style:    usecase.OwnableStandard,
					Message:  "Transfer GZap Ownership to Director",
				},
				{
					NewOwner: dev,
					Style:    usecase.OwnableStandard,
					Message:  "Transfer ownership of ZapDirector to dev",
				},
			},
		},
		{
			Name:         ZapWizard,
			Tags:         []string{ZapWizard},
			Dependencies: []string{UniswapV2Factory, UniswapV2Router02, ZapStake, GZapToken, WETH9Mock},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				factory, err := sc.Address(UniswapV2Factory)
				if err != nil {
					return nil, err
				}
				bar, err := sc.Address(ZapStake)
				if err != nil {
					return nil, err
				}
				gzap, err := sc.Address(GZapToken)
				if err != nil {
					return nil, err
				}
				weth, err := sc.ResolveWithOverride(addressbook.WETH, wethOverride)
				if err != nil {
					return nil, err
				}
				return []any{factory, bar, gzap, weth}, nil
			},
			Ownership: []usecase.OwnershipHandoff{
				{
					NewOwner: dev,
					Style:    usecase.OwnableBoring,
					Message:  "Setting wizard owner",
				},
			},
		},
		{
			Name:         ZapMigrate,
			Tags:         []string{ZapMigrate},
			Dependencies: []string{UniswapV2Factory, UniswapV2Router02},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				uniswapRouter, err := sc.Resolve(addressbook.UniswapRouter)
				if err != nil {
					return nil, err
				}
				router, err := sc.Address(UniswapV2Router02)
				if err != nil {
					return nil, err
				}
				return []any{uniswapRouter, router}, nil
			},
		},
		{
			Name:         MiniZapDirectorV2,
			Tags:         []string{MiniZapDirectorV2},
			Dependencies: []string{UniswapV2Factory, UniswapV2Router02, ZapDirector},
			Args: func(sc *usecase.StepContext) ([]any, error) {
				gzap, err := sc.ResolveWithOverride(addressbook.GZap, miniGZapOverride)
				if err != nil {
					return nil, err
				}
				return []any{gzap}, nil
			},
			Ownership: []usecase.OwnershipHandoff{
				{
					NewOwner: dev,
					Style:    usecase.OwnableBoring,
					Message:  "Transfer ownership of MiniZapDirector to dev",
				},
			},
		},
	}
}

func dev(sc *usecase.StepContext) (common.Address, error) {
	return sc.NamedAccounts().Dev, nil
}

func addressOf(name string) func(sc *usecase.StepContext) (common.Address, error) {
	return func(sc *usecase.StepContext) (common.Address, error) {
		return sc.Address(name)
	}
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer literal " + s)
	}
	return v
}
