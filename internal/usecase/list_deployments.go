package usecase

import (
	"context"
	"sort"

	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Filter parameters (namespace and chainID come from RuntimeConfig)
	Name string
	Tag  string
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	repo   DeploymentRepository
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		repo:   repo,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	filter := domain.RecordFilter{
		Namespace: uc.config.Namespace,
		Name:      params.Name,
		Tag:       params.Tag,
	}
	if uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
	}

	records, err := uc.repo.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortRecords(records)
	summary := calculateSummary(records)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(records),
		Total:   len(records),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: records,
		Summary:     summary,
	}, nil
}

// sortRecords sorts records by namespace, chain, then creation time
func sortRecords(records []*models.DeploymentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})
}

// calculateSummary calculates summary statistics for records
func calculateSummary(records []*models.DeploymentRecord) DeploymentSummary {
	summary := DeploymentSummary{
		Total:       len(records),
		ByNamespace: make(map[string]int),
		ByChain:     make(map[uint64]int),
		ByState:     make(map[models.StepState]int),
	}

	for _, rec := range records {
		summary.ByNamespace[rec.Namespace]++
		summary.ByChain[rec.ChainID]++
		summary.ByState[rec.State]++
	}

	return summary
}
