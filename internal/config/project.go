package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// ProjectFile is the project configuration file that marks a project root
const ProjectFile = "zapdeploy.toml"

const (
	defaultArtifactsDir = "artifacts"
	defaultLockTTL      = 30 * time.Minute
)

// LoadProjectConfig loads .env files and parses zapdeploy.toml. A missing
// file yields the defaults.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{}

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyDefaults(cfg)

	// Expand environment variables in secrets and endpoints
	cfg.Accounts.DeployerKey = os.ExpandEnv(cfg.Accounts.DeployerKey)
	cfg.Accounts.Dev = os.ExpandEnv(cfg.Accounts.Dev)
	cfg.Registry.DSN = os.ExpandEnv(cfg.Registry.DSN)
	cfg.Lock.RedisAddr = os.ExpandEnv(cfg.Lock.RedisAddr)

	if err := validateProjectConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectFile, err)
	}

	return cfg, nil
}

func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

func applyDefaults(cfg *config.ProjectConfig) {
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = defaultArtifactsDir
	}
	if cfg.Registry.Backend == "" {
		cfg.Registry.Backend = config.RegistryBackendFile
	}
	if cfg.Lock.Backend == "" {
		cfg.Lock.Backend = config.LockBackendFile
	}
	if cfg.Lock.TTL <= 0 {
		cfg.Lock.TTL = defaultLockTTL
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
}

func validateProjectConfig(cfg *config.ProjectConfig) error {
	switch cfg.Registry.Backend {
	case config.RegistryBackendFile:
	case config.RegistryBackendPostgres:
		if cfg.Registry.DSN == "" {
			return fmt.Errorf("registry.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown registry backend %q", cfg.Registry.Backend)
	}

	switch cfg.Lock.Backend {
	case config.LockBackendFile, config.LockBackendNone:
	case config.LockBackendRedis:
		if cfg.Lock.RedisAddr == "" {
			return fmt.Errorf("lock.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}

	for name, network := range cfg.Networks {
		if network.ChainID == 0 && network.RPCURL == "" {
			return fmt.Errorf("network %s needs chain_id or rpc_url", name)
		}
	}
	return nil
}
