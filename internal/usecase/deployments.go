package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// DeployOptions are the inputs of an idempotent deploy
type DeployOptions struct {
	Contract string
	From     common.Address
	Args     []any
	Tags     []string
	// Force redeploys even when a record exists
	Force bool
}

// Deployments is the record access a session hands to its steps.
// Records are scoped to one namespace and chain.
type Deployments struct {
	repo      DeploymentRepository
	artifacts ArtifactRepository
	backend   ChainBackend
	progress  ProgressSink
	log       *slog.Logger

	namespace string
	chainID   uint64
	dryRun    bool

	// records planned but not sent during a dry run
	planned map[string]*models.DeploymentRecord
}

// NewDeployments scopes record access to one environment
func NewDeployments(
	repo DeploymentRepository,
	artifacts ArtifactRepository,
	backend ChainBackend,
	progress ProgressSink,
	log *slog.Logger,
	namespace string,
	chainID uint64,
	dryRun bool,
) *Deployments {
	return &Deployments{
		repo:      repo,
		artifacts: artifacts,
		backend:   backend,
		progress:  progress,
		log:       log,
		namespace: namespace,
		chainID:   chainID,
		dryRun:    dryRun,
		planned:   make(map[string]*models.DeploymentRecord),
	}
}

// Get returns the record for name, or MissingDependencyError when it has not run
func (d *Deployments) Get(ctx context.Context, name string) (*models.DeploymentRecord, error) {
	if rec, ok := d.planned[name]; ok {
		return rec, nil
	}
	rec, err := d.repo.GetDeployment(ctx, models.RecordID(d.namespace, d.chainID, name))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.MissingDependencyError{Name: name}
		}
		return nil, fmt.Errorf("failed to load deployment %s: %w", name, err)
	}
	return rec, nil
}

// Deploy returns the existing record for name or deploys the contract and
// persists a new one. The boolean reports whether a transaction was sent.
func (d *Deployments) Deploy(ctx context.Context, name string, opts DeployOptions) (*models.DeploymentRecord, bool, error) {
	id := models.RecordID(d.namespace, d.chainID, name)

	existing, err := d.repo.GetDeployment(ctx, id)
	switch {
	case err == nil && !opts.Force:
		d.log.Debug("reusing deployment", "name", name, "address", existing.Address, "state", existing.State)
		return existing, false, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, false, fmt.Errorf("failed to load deployment %s: %w", name, err)
	}

	contract := opts.Contract
	if contract == "" {
		contract = name
	}
	artifact, err := d.artifacts.GetArtifact(ctx, contract)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load artifact for %s: %w", name, err)
	}

	now := time.Now().UTC()
	rec := &models.DeploymentRecord{
		ID:        id,
		Name:      name,
		Namespace: d.namespace,
		ChainID:   d.chainID,
		Contract:  contract,
		ABI:       artifact.ABI,
		Deployer:  opts.From.Hex(),
		Args:      RenderArgs(opts.Args),
		State:     models.StateUndeployed,
		Tags:      opts.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if d.dryRun {
		d.planned[name] = rec
		return rec, false, nil
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s", rec.GetDisplayName()),
		Spinner: true,
	})

	address, txHash, err := d.backend.Deploy(ctx, artifact, opts.Args...)
	if err != nil {
		return nil, false, wrapTxError(err, "deploy", name, txHash)
	}

	rec.Address = address.Hex()
	rec.TxHash = txHash.Hex()
	rec.State = models.StateDeployed
	if existing != nil {
		rec.CreatedAt = existing.CreatedAt
	}

	if err := d.repo.SaveDeployment(ctx, rec); err != nil {
		return nil, true, fmt.Errorf("deployed %s at %s but failed to save record: %w", name, rec.Address, err)
	}

	d.log.Info("deployed contract", "name", name, "address", rec.Address, "tx", rec.TxHash)
	return rec, true, nil
}

// Update persists bookkeeping changes on a record this session owns
func (d *Deployments) Update(ctx context.Context, rec *models.DeploymentRecord) error {
	if d.dryRun {
		return nil
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := d.repo.SaveDeployment(ctx, rec); err != nil {
		return fmt.Errorf("failed to update deployment %s: %w", rec.Name, err)
	}
	return nil
}

func (d *Deployments) ownableABI(rec *models.DeploymentRecord) (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(rec.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", rec.Name, err)
	}
	_, hasOwner := parsed.Methods["owner"]
	_, hasTransfer := parsed.Methods["transferOwnership"]
	if !hasOwner || !hasTransfer {
		return nil, fmt.Errorf("%s: %w", rec.Name, domain.ErrNotOwnable)
	}
	return &parsed, nil
}
