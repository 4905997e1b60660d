package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Namespace string   // Deployment environment within a chain
	Network   *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved project configuration (zapdeploy.toml)
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	// Dev networks get mock prerequisites and skip live-network confirmation
	Dev bool `json:"dev,omitempty"`
}

// ChainKey returns the chain ID in the string form used by address tables
func (n *Network) ChainKey() string {
	if n == nil {
		return ""
	}
	return FormatChainID(n.ChainID)
}
