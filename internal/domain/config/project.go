package config

import (
	"strconv"
	"time"
)

const (
	RegistryBackendFile     = "file"
	RegistryBackendPostgres = "postgres"

	LockBackendFile  = "file"
	LockBackendRedis = "redis"
	LockBackendNone  = "none"
)

// ProjectConfig is the parsed zapdeploy.toml
type ProjectConfig struct {
	ArtifactsDir string                   `toml:"artifacts_dir"`
	Networks     map[string]NetworkConfig `toml:"networks"`
	Accounts     AccountsConfig           `toml:"accounts"`
	Registry     RegistryConfig           `toml:"registry"`
	Lock         LockConfig               `toml:"lock"`
}

// NetworkConfig is a [networks.<name>] section
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id"`
	ExplorerURL string `toml:"explorer_url"`
	Dev         bool   `toml:"dev"`
}

// AccountsConfig holds the named accounts
type AccountsConfig struct {
	// DeployerKey is the hex private key that signs every transaction
	DeployerKey string `toml:"deployer_key"`
	// Dev is the administrative address that receives ownership
	Dev string `toml:"dev"`
}

// RegistryConfig selects where deployment records are persisted
type RegistryConfig struct {
	Backend string `toml:"backend"`
	DSN     string `toml:"dsn"`
}

// LockConfig selects the session lock implementation
type LockConfig struct {
	Backend   string        `toml:"backend"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	TTL       time.Duration `toml:"ttl"`
}

// FormatChainID renders a chain ID as an address-table key
func FormatChainID(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}

// RegistryBackend returns the configured record store, "file" when unset
func (p *ProjectConfig) RegistryBackend() string {
	if p == nil || p.Registry.Backend == "" {
		return RegistryBackendFile
	}
	return p.Registry.Backend
}

// LockBackend returns the configured session lock, "file" when unset
func (p *ProjectConfig) LockBackend() string {
	if p == nil || p.Lock.Backend == "" {
		return LockBackendFile
	}
	return p.Lock.Backend
}
