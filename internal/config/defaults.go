package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// DefaultsFile holds the checkout's saved namespace and network. SetupViper
// reads it as the lowest-priority source for --namespace and --network.
const DefaultsFile = "config.local.json"

// DefaultsStore reads and writes DefaultsFile through viper
type DefaultsStore struct {
	path string
}

// NewDefaultsStore keeps the defaults file in the session's data directory
func NewDefaultsStore(cfg *config.RuntimeConfig) *DefaultsStore {
	return &DefaultsStore{path: filepath.Join(cfg.DataDir, DefaultsFile)}
}

func (s *DefaultsStore) Path() string { return s.path }

func (s *DefaultsStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the saved defaults; a missing file means nothing is saved
func (s *DefaultsStore) Load(ctx context.Context) (*config.Defaults, error) {
	defaults := &config.Defaults{}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if err := v.Unmarshal(defaults); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return defaults, nil
}

// Save rewrites the file with the keys that are set
func (s *DefaultsStore) Save(ctx context.Context, defaults *config.Defaults) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}

	v := viper.New()
	for _, key := range config.DefaultKeys() {
		if value := defaults.Get(key); value != "" {
			v.Set(string(key), value)
		}
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

var _ usecase.DefaultsStore = (*DefaultsStore)(nil)
