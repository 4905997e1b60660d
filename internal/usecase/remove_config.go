package usecase

import (
	"context"
	"fmt"

	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// RemoveConfigParams contains parameters for removing configuration
type RemoveConfigParams struct {
	Key string
}

// RemoveConfigResult contains the result of removing configuration
type RemoveConfigResult struct {
	Defaults     *config.Defaults
	Path         string
	Key          config.DefaultKey
	RemovedValue string
}

// RemoveConfig clears a saved default
type RemoveConfig struct {
	store DefaultsStore
}

func NewRemoveConfig(store DefaultsStore) *RemoveConfig {
	return &RemoveConfig{store: store}
}

func (uc *RemoveConfig) Run(ctx context.Context, params RemoveConfigParams) (*RemoveConfigResult, error) {
	key, err := config.ParseDefaultKey(params.Key)
	if err != nil {
		return nil, err
	}
	if !uc.store.Exists() {
		return nil, fmt.Errorf("no config file found at %s", uc.store.Path())
	}

	defaults, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	removed := defaults.Clear(key)
	if err := uc.store.Save(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &RemoveConfigResult{
		Defaults:     defaults,
		Path:         uc.store.Path(),
		Key:          key,
		RemovedValue: removed,
	}, nil
}
