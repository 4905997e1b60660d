package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// PlanDeploymentParams contains parameters for planning a run
type PlanDeploymentParams struct {
	Tags []string
}

// PlanEntry pairs a planned step with its persisted record, if any
type PlanEntry struct {
	Step         *Step
	Dependencies []string
	Record       *models.DeploymentRecord
}

// State returns the persisted state, UNDEPLOYED when no record exists
func (e PlanEntry) State() models.StepState {
	if e.Record == nil {
		return models.StateUndeployed
	}
	return e.Record.State
}

// PlanDeploymentResult contains the ordered plan with current states
type PlanDeploymentResult struct {
	Network   *config.Network
	Namespace string
	Plan      *DeploymentPlan
	Entries   []PlanEntry
}

// PlanDeployment shows what a run would execute without touching the chain
type PlanDeployment struct {
	config   *config.RuntimeConfig
	registry StepRegistry
	repo     DeploymentRepository
}

// NewPlanDeployment creates a new PlanDeployment use case
func NewPlanDeployment(cfg *config.RuntimeConfig, registry StepRegistry, repo DeploymentRepository) *PlanDeployment {
	return &PlanDeployment{
		config:   cfg,
		registry: registry,
		repo:     repo,
	}
}

// Run builds the plan and attaches the recorded state of every step
func (uc *PlanDeployment) Run(ctx context.Context, params PlanDeploymentParams) (*PlanDeploymentResult, error) {
	plan, err := BuildPlan(uc.registry.Steps(), params.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to build deployment plan: %w", err)
	}

	result := &PlanDeploymentResult{
		Network:   uc.config.Network,
		Namespace: uc.config.Namespace,
		Plan:      plan,
		Entries:   make([]PlanEntry, 0, len(plan.Steps)),
	}

	for _, step := range plan.Steps {
		entry := PlanEntry{
			Step:         step,
			Dependencies: plan.Dependencies[step.Name],
		}
		if uc.config.Network != nil {
			id := models.RecordID(uc.config.Namespace, uc.config.Network.ChainID, step.Name)
			rec, err := uc.repo.GetDeployment(ctx, id)
			switch {
			case err == nil:
				entry.Record = rec
			case !errors.Is(err, domain.ErrNotFound):
				return nil, fmt.Errorf("failed to load deployment %s: %w", step.Name, err)
			}
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}
