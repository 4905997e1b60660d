package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// ForgetDeploymentParams contains parameters for forgetting a record
type ForgetDeploymentParams struct {
	Name string
}

// ForgetDeployment deletes a record so the next run deploys the step again.
// The contract on chain is untouched.
type ForgetDeployment struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	log    *slog.Logger
}

// NewForgetDeployment creates a new ForgetDeployment use case
func NewForgetDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, log *slog.Logger) *ForgetDeployment {
	return &ForgetDeployment{
		config: cfg,
		repo:   repo,
		log:    log,
	}
}

// Run deletes the named record in the current namespace and network
func (uc *ForgetDeployment) Run(ctx context.Context, params ForgetDeploymentParams) (*models.DeploymentRecord, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network specified, use --network or set ZAPDEPLOY_NETWORK")
	}

	id := models.RecordID(uc.config.Namespace, uc.config.Network.ChainID, params.Name)
	rec, err := uc.repo.GetDeployment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deployment %s: %w", id, err)
	}

	if err := uc.repo.DeleteDeployment(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete deployment %s: %w", id, err)
	}

	uc.log.Info("forgot deployment", "id", id, "address", rec.Address)
	return rec, nil
}
