package network

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	chain_selectors "github.com/smartcontractkit/chain-selectors"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// Resolver handles network configuration resolution
type Resolver struct {
	networks      map[string]*config.Network
	chainIDLookup map[uint64]string // chainID -> network name
}

// NewResolver creates a resolver with the well-known networks plus the
// networks declared in the project config
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	r := &Resolver{
		networks:      make(map[string]*config.Network),
		chainIDLookup: make(map[uint64]string),
	}

	// Initialize with default networks
	r.initializeDefaultNetworks()

	if cfg != nil && cfg.Project != nil {
		r.LoadNetworks(cfg.Project.Networks)
	}

	return r
}

// initializeDefaultNetworks sets up the networks the address tables know
func (r *Resolver) initializeDefaultNetworks() {
	defaultNetworks := []config.Network{
		{ChainID: 1, Name: "mainnet", ExplorerURL: "https://etherscan.io"},
		{ChainID: 3, Name: "ropsten", ExplorerURL: "https://ropsten.etherscan.io"},
		{ChainID: 4, Name: "rinkeby", ExplorerURL: "https://rinkeby.etherscan.io"},
		{ChainID: 5, Name: "goerli", ExplorerURL: "https://goerli.etherscan.io"},
		{ChainID: 42, Name: "kovan", ExplorerURL: "https://kovan.etherscan.io"},
		{ChainID: 1287, Name: "moonbase", ExplorerURL: "https://moonbase.moonscan.io"},
		{ChainID: 31337, Name: "localhost", RPCURL: "http://localhost:8545", Dev: true},
	}

	for _, network := range defaultNetworks {
		if network.RPCURL == "" {
			network.RPCURL = os.Getenv(RPCEnvVar(network.Name))
		}
		r.addNetwork(&network)
	}
}

// addNetwork adds a network configuration
func (r *Resolver) addNetwork(network *config.Network) {
	if existing, ok := r.networks[strings.ToLower(network.Name)]; ok && existing.ChainID != network.ChainID {
		delete(r.chainIDLookup, existing.ChainID)
	}
	r.networks[strings.ToLower(network.Name)] = network // Case-insensitive lookup
	r.chainIDLookup[network.ChainID] = network.Name
}

// LoadNetworks adds or replaces networks from [networks.<name>] sections
func (r *Resolver) LoadNetworks(networks map[string]config.NetworkConfig) {
	names := make([]string, 0, len(networks))
	for name := range networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		nc := networks[name]
		network := &config.Network{
			Name:        name,
			ChainID:     nc.ChainID,
			RPCURL:      os.ExpandEnv(nc.RPCURL),
			ExplorerURL: nc.ExplorerURL,
			Dev:         nc.Dev,
		}
		if base, ok := r.networks[strings.ToLower(name)]; ok {
			if network.ChainID == 0 {
				network.ChainID = base.ChainID
			}
			if network.RPCURL == "" {
				network.RPCURL = base.RPCURL
			}
			if network.ExplorerURL == "" {
				network.ExplorerURL = base.ExplorerURL
			}
			network.Dev = network.Dev || base.Dev
		}
		if network.RPCURL == "" {
			network.RPCURL = os.Getenv(RPCEnvVar(name))
		}
		r.addNetwork(network)
	}
}

// GetNetworks returns the known network names, sorted by chain ID
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(r.networks))
	for _, network := range r.networks {
		names = append(names, network.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := r.networks[strings.ToLower(names[i])], r.networks[strings.ToLower(names[j])]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		return a.Name < b.Name
	})
	return names
}

// ResolveNetwork resolves a network by name or chain ID
func (r *Resolver) ResolveNetwork(ctx context.Context, input string) (*config.Network, error) {
	// Empty input
	if input == "" {
		return nil, fmt.Errorf("network not specified")
	}

	// Case-insensitive name lookup
	if network, ok := r.networks[strings.ToLower(input)]; ok {
		clone := *network
		return &clone, nil
	}

	// Try to parse as chain ID
	if chainID, err := strconv.ParseUint(input, 10, 64); err == nil {
		if name, ok := r.chainIDLookup[chainID]; ok {
			clone := *r.networks[strings.ToLower(name)]
			return &clone, nil
		}
	}

	return nil, fmt.Errorf("%w: %s is not a configured network", domain.ErrUnknownNetwork, input)
}

// ChainName returns the canonical chain name for display, empty when unknown
func (r *Resolver) ChainName(chainID uint64) string {
	chain, ok := chain_selectors.ChainByEvmChainID(chainID)
	if !ok {
		return ""
	}
	return chain.Name
}

// RPCEnvVar returns the environment variable consulted for a network's RPC URL.
// Examples: ropsten -> ROPSTEN_RPC_URL, moonbase-alpha -> MOONBASE_ALPHA_RPC_URL
func RPCEnvVar(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

var _ usecase.NetworkResolver = (*Resolver)(nil)
