package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	// GetDeployment returns the record with the given ID or an ErrNotFound-wrapped error
	GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error)
	ListDeployments(ctx context.Context, filter domain.RecordFilter) ([]*models.DeploymentRecord, error)
	SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error
	DeleteDeployment(ctx context.Context, id string) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ChainBackend sends transactions and reads contract state on one chain.
// Every mutating call blocks until its receipt is available.
type ChainBackend interface {
	Connect(ctx context.Context, network *config.Network, deployerKey string) error
	// From returns the deployer address derived from the signing key
	From() common.Address
	ChainID() uint64
	Deploy(ctx context.Context, artifact *models.Artifact, args ...any) (common.Address, common.Hash, error)
	Owner(ctx context.Context, address common.Address, contractABI *abi.ABI) (common.Address, error)
	TransferOwnership(ctx context.Context, address common.Address, contractABI *abi.ABI, args ...any) (common.Hash, error)
	Close()
}

// SessionLocker serialises deployment sessions that share a deployer nonce sequence
type SessionLocker interface {
	// Acquire returns domain.ErrSessionLocked when another session holds key
	Acquire(ctx context.Context, key string, owner string) (SessionLease, error)
}

// SessionLease is a held session lock
type SessionLease interface {
	Release(ctx context.Context) error
}

// NetworkResolver resolves network names to chain configuration
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
	// ChainName returns a canonical chain name for display, empty when unknown
	ChainName(chainID uint64) string
}

// StepRegistry provides the statically declared deployment steps
type StepRegistry interface {
	Steps() []*Step
}

// DeploymentSelector handles interactive selection of deployment records
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, records []*models.DeploymentRecord, prompt string) (*models.DeploymentRecord, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Use case result types

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.DeploymentRecord
	Summary     DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total       int
	ByNamespace map[string]int
	ByChain     map[uint64]int
	ByState     map[models.StepState]int
}

// DefaultsStore persists the per-checkout namespace and network defaults
type DefaultsStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.Defaults, error)
	Save(ctx context.Context, defaults *config.Defaults) error
	Path() string
}

// Describer is implemented by record stores and session lockers that can
// say where they keep their state
type Describer interface {
	Describe() string
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}
