package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// ResetDeploymentsParams contains parameters for resetting an environment
type ResetDeploymentsParams struct {
	DryRun bool // If true, only collect records without deleting them
}

// ResetDeploymentsResult contains the result of resetting an environment
type ResetDeploymentsResult struct {
	Namespace string
	Network   *config.Network
	Removed   []*models.DeploymentRecord
	DryRun    bool
}

// ResetDeployments forgets every record of the current namespace and network,
// so the next run deploys the whole plan again
type ResetDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	log    *slog.Logger
}

// NewResetDeployments creates a new ResetDeployments use case
func NewResetDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, log *slog.Logger) *ResetDeployments {
	return &ResetDeployments{
		config: cfg,
		repo:   repo,
		log:    log,
	}
}

// Run executes the reset
func (uc *ResetDeployments) Run(ctx context.Context, params ResetDeploymentsParams) (*ResetDeploymentsResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("network is required for reset")
	}

	records, err := uc.repo.ListDeployments(ctx, domain.RecordFilter{
		Namespace: uc.config.Namespace,
		ChainID:   uc.config.Network.ChainID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	result := &ResetDeploymentsResult{
		Namespace: uc.config.Namespace,
		Network:   uc.config.Network,
		Removed:   records,
		DryRun:    params.DryRun,
	}

	if params.DryRun {
		return result, nil
	}

	for _, rec := range records {
		if err := uc.repo.DeleteDeployment(ctx, rec.ID); err != nil {
			return nil, fmt.Errorf("failed to reset deployments: %w", err)
		}
		uc.log.Info("forgot deployment", "id", rec.ID, "address", rec.Address)
	}

	return result, nil
}
