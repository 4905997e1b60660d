package usecase

import (
	"context"
	"fmt"

	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	Defaults *config.Defaults
	Path     string
	Key      config.DefaultKey
	Value    string
	// Network is the resolved network when the network default changed
	Network *config.Network
}

// SetConfig saves a namespace or network default for this checkout
type SetConfig struct {
	store    DefaultsStore
	resolver NetworkResolver
}

func NewSetConfig(store DefaultsStore, resolver NetworkResolver) *SetConfig {
	return &SetConfig{
		store:    store,
		resolver: resolver,
	}
}

func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := config.ParseDefaultKey(params.Key)
	if err != nil {
		return nil, err
	}

	defaults, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := defaults.Set(key, params.Value); err != nil {
		return nil, err
	}

	result := &SetConfigResult{
		Defaults: defaults,
		Path:     uc.store.Path(),
		Key:      key,
		Value:    params.Value,
	}

	// Refuse a network default that every later command would fail to resolve
	if key == config.KeyNetwork {
		if result.Network, err = uc.resolver.ResolveNetwork(ctx, params.Value); err != nil {
			return nil, err
		}
	}

	if err := uc.store.Save(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return result, nil
}
