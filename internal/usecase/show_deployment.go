package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	Name string
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	selector DeploymentSelector
	sink     ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, repo DeploymentRepository, selector DeploymentSelector, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config:   cfg,
		repo:     repo,
		selector: selector,
		sink:     sink,
	}
}

// Run resolves a record by exact name, falling back to a fuzzy match
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*models.DeploymentRecord, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})

	if params.Name == "" {
		return nil, fmt.Errorf("deployment name is required")
	}

	filter := domain.RecordFilter{Namespace: uc.config.Namespace}
	if uc.config.Network != nil {
		filter.ChainID = uc.config.Network.ChainID
		rec, err := uc.repo.GetDeployment(ctx, models.RecordID(uc.config.Namespace, uc.config.Network.ChainID, params.Name))
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	records, err := uc.repo.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	candidates := MatchRecords(records, params.Name)
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("deployment %q: %w", params.Name, domain.ErrNotFound)
	case 1:
		return candidates[0], nil
	}

	if uc.config.NonInteractive {
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			names = append(names, c.ID)
		}
		return nil, fmt.Errorf("multiple deployments match %q: %s", params.Name, strings.Join(names, ", "))
	}

	return uc.selector.SelectDeployment(ctx, candidates, fmt.Sprintf("Multiple deployments match %q, select one", params.Name))
}

type recordSource []*models.DeploymentRecord

func (s recordSource) String(i int) string { return s[i].Name }
func (s recordSource) Len() int            { return len(s) }

// MatchRecords returns records whose names fuzzily match query, best first.
// A case-insensitive exact name wins outright.
func MatchRecords(records []*models.DeploymentRecord, query string) []*models.DeploymentRecord {
	var exact []*models.DeploymentRecord
	for _, rec := range records {
		if strings.EqualFold(rec.Name, query) {
			exact = append(exact, rec)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	matches := fuzzy.FindFrom(query, recordSource(records))
	result := make([]*models.DeploymentRecord, 0, len(matches))
	for _, m := range matches {
		result = append(result, records[m.Index])
	}
	return result
}
