package usecase

import (
	"context"

	"github.com/zapswap/zapdeploy/internal/domain/addressbook"
	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	// Tables lists every address table with the chains it covers
	Tables []TableCoverage
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name      string
	ChainID   uint64
	ChainName string
	Dev       bool
	// Tables names the address tables with an entry for this chain
	Tables []string
	Error  error
}

// TableCoverage lists the chains an address table knows
type TableCoverage struct {
	Name     string
	ChainIDs []string
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.Dev = info.Dev
			status.ChainName = uc.resolver.ChainName(info.ChainID)
			status.Tables = tablesFor(config.FormatChainID(info.ChainID))
		}

		networks = append(networks, status)
	}

	tables := make([]TableCoverage, 0, len(addressbook.Tables()))
	for _, t := range addressbook.Tables() {
		tables = append(tables, TableCoverage{Name: t.Name(), ChainIDs: t.ChainIDs()})
	}

	return &ListNetworksResult{
		Networks: networks,
		Tables:   tables,
	}, nil
}

func tablesFor(chainID string) []string {
	var names []string
	for _, t := range addressbook.Tables() {
		if _, ok := t.Lookup(chainID); ok {
			names = append(names, t.Name())
		}
	}
	return names
}
