package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/zapswap/zapdeploy/internal/domain"
	"github.com/zapswap/zapdeploy/internal/domain/addressbook"
	"github.com/zapswap/zapdeploy/internal/domain/models"
)

// OwnableStyle selects the transferOwnership signature a contract exposes
type OwnableStyle int

const (
	// OwnableStandard is transferOwnership(address)
	OwnableStandard OwnableStyle = iota
	// OwnableBoring is transferOwnership(address newOwner, bool direct, bool renounce)
	OwnableBoring
)

func (s OwnableStyle) String() string {
	if s == OwnableBoring {
		return "boring"
	}
	return "standard"
}

// TransferArgs builds the transferOwnership arguments for a direct transfer
func (s OwnableStyle) TransferArgs(newOwner common.Address) []any {
	if s == OwnableBoring {
		return []any{newOwner, true, false}
	}
	return []any{newOwner}
}

// OwnershipHandoff moves ownership of a deployed contract after its step deploys
type OwnershipHandoff struct {
	// Target names the record whose contract changes owner; empty means the step itself
	Target   string
	NewOwner func(sc *StepContext) (common.Address, error)
	Style    OwnableStyle
	// Message is announced to the operator before the transfer is sent
	Message string
}

// Step is a named, dependency-aware unit of deployment work
type Step struct {
	Name string
	// Contract is the artifact name, defaults to Name
	Contract     string
	Tags         []string
	Dependencies []string
	Skip         func(sc *StepContext) bool
	Args         func(sc *StepContext) ([]any, error)
	Ownership    []OwnershipHandoff
}

// ContractName returns the artifact this step deploys
func (s *Step) ContractName() string {
	if s.Contract != "" {
		return s.Contract
	}
	return s.Name
}

// AllTags returns the tags this step satisfies; the name is the default tag
func (s *Step) AllTags() []string {
	if len(s.Tags) == 0 {
		return []string{s.Name}
	}
	return lo.Uniq(s.Tags)
}

// NamedAccounts are the read-only accounts shared by every step
type NamedAccounts struct {
	Deployer common.Address
	Dev      common.Address
}

// StepContext is what a step sees while it runs
type StepContext struct {
	ctx         context.Context
	step        *Step
	accounts    NamedAccounts
	chainID     string
	deployments *Deployments
	visible     map[string]bool
	log         *slog.Logger

	// self is the step's own record once it is deployed
	self *models.DeploymentRecord
	// planned collects dry-run records read since the last reset; they have no address
	planned []string
}

func newStepContext(ctx context.Context, step *Step, accounts NamedAccounts, chainID string, deployments *Deployments, closure []string, log *slog.Logger) *StepContext {
	return &StepContext{
		ctx:         ctx,
		step:        step,
		accounts:    accounts,
		chainID:     chainID,
		deployments: deployments,
		visible:     lo.SliceToMap(closure, func(name string) (string, bool) { return name, true }),
		log:         log.With("step", step.Name),
	}
}

func (c *StepContext) Context() context.Context { return c.ctx }
func (c *StepContext) NamedAccounts() NamedAccounts { return c.accounts }
func (c *StepContext) ChainID() string { return c.chainID }
func (c *StepContext) Logger() *slog.Logger { return c.log }

// Get returns the record of a step in this step's dependency closure, or
// the step's own record after it has deployed
func (c *StepContext) Get(name string) (*models.DeploymentRecord, error) {
	if name == c.step.Name && c.self != nil {
		c.notePlanned(c.self)
		return c.self, nil
	}
	if !c.visible[name] {
		return nil, &domain.MissingDependencyError{Name: name, Reader: c.step.Name}
	}
	rec, err := c.deployments.Get(c.ctx, name)
	if err != nil {
		var missing *domain.MissingDependencyError
		if errors.As(err, &missing) {
			missing.Reader = c.step.Name
		}
		return nil, err
	}
	c.notePlanned(rec)
	return rec, nil
}

func (c *StepContext) notePlanned(rec *models.DeploymentRecord) {
	if rec.State == models.StateUndeployed && rec.Address == "" {
		c.planned = append(c.planned, rec.Name)
	}
}

// Address returns the deployed address of a dependency
func (c *StepContext) Address(name string) (common.Address, error) {
	rec, err := c.Get(name)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(rec.Address), nil
}

// Resolve looks the current chain up in an address table
func (c *StepContext) Resolve(table addressbook.Table) (common.Address, error) {
	return addressbook.Resolve(table, c.chainID)
}

// ResolveWithOverride prefers a dependency record on the override's chains
func (c *StepContext) ResolveWithOverride(table addressbook.Table, override addressbook.Override) (common.Address, error) {
	return addressbook.ResolveWithOverride(table, c.chainID, override, c.Address)
}

// TransferResult describes one ownership handoff of a step run
type TransferResult struct {
	Target   string
	Address  common.Address
	Previous common.Address
	NewOwner common.Address
	TxHash   string
	// Skipped is set when the owner already matched
	Skipped bool
	// PendingOn names the planned deployment the new owner resolves to in a
	// dry run; NewOwner is unknown until it deploys
	PendingOn string
}

// StepOutcome is the result of running one step
type StepOutcome struct {
	Record *models.DeploymentRecord
	// Deployed is set when this run sent the deployment transaction
	Deployed  bool
	Skipped   bool
	Args      []string
	Transfers []TransferResult
}

// RunStep executes a step: build args, idempotent deploy, then ownership handoffs.
// Re-entry from any persisted state converges without repeating effects.
func RunStep(sc *StepContext, step *Step, d *Deployments, force bool) (*StepOutcome, error) {
	ctx := sc.Context()

	if step.Skip != nil && step.Skip(sc) {
		sc.log.Debug("skipping step")
		return &StepOutcome{Skipped: true}, nil
	}

	var args []any
	if step.Args != nil {
		var err error
		args, err = step.Args(sc)
		if err != nil {
			return nil, fmt.Errorf("failed to build constructor arguments: %w", err)
		}
	}

	rec, deployed, err := d.Deploy(ctx, step.Name, DeployOptions{
		Contract: step.ContractName(),
		From:     sc.accounts.Deployer,
		Args:     args,
		Tags:     step.AllTags(),
		Force:    force,
	})
	if err != nil {
		return nil, err
	}

	sc.self = rec

	outcome := &StepOutcome{
		Record:   rec,
		Deployed: deployed,
		Args:     RenderArgs(args),
	}

	transferred := false
	for _, h := range step.Ownership {
		res, err := runHandoff(sc, step, rec, h, d)
		if err != nil {
			return outcome, err
		}
		outcome.Transfers = append(outcome.Transfers, *res)
		if !res.Skipped {
			transferred = true
		}
	}

	if !d.dryRun && (transferred || rec.State == models.StateOwnershipPending) {
		rec.State = models.StateOwnershipTransferred
		if err := d.Update(ctx, rec); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

func runHandoff(sc *StepContext, step *Step, rec *models.DeploymentRecord, h OwnershipHandoff, d *Deployments) (*TransferResult, error) {
	ctx := sc.Context()

	target := rec
	if h.Target != "" && h.Target != step.Name {
		var err error
		if target, err = sc.Get(h.Target); err != nil {
			return nil, err
		}
	}

	contractABI, err := d.ownableABI(target)
	if err != nil {
		return nil, err
	}

	sc.planned = nil
	newOwner, err := h.NewOwner(sc)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve new owner of %s: %w", target.Name, err)
	}

	address := common.HexToAddress(target.Address)
	res := &TransferResult{
		Target:   target.Name,
		Address:  address,
		NewOwner: newOwner,
	}

	if len(sc.planned) > 0 {
		res.NewOwner = common.Address{}
		res.PendingOn = sc.planned[0]
		return res, nil
	}

	// Nothing is on chain yet for a planned record
	if d.dryRun && target.State == models.StateUndeployed {
		return res, nil
	}

	current, err := d.backend.Owner(ctx, address, contractABI)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner of %s: %w", target.Name, err)
	}
	res.Previous = current

	if current == newOwner {
		sc.log.Debug("owner already set", "target", target.Name, "owner", newOwner.Hex())
		res.Skipped = true
		if target == rec && rec.Owner != newOwner.Hex() {
			rec.Owner = newOwner.Hex()
			if err := d.Update(ctx, rec); err != nil {
				return nil, err
			}
		}
		return res, nil
	}

	if d.dryRun {
		return res, nil
	}

	if h.Message != "" {
		d.progress.Info(h.Message)
	}
	sc.log.Info("transferring ownership", "target", target.Name, "from", current.Hex(), "to", newOwner.Hex(), "style", h.Style.String())

	// Only the step's own record carries ownership bookkeeping
	rec.State = models.StateOwnershipPending
	if err := d.Update(ctx, rec); err != nil {
		return nil, err
	}

	txHash, err := d.backend.TransferOwnership(ctx, address, contractABI, h.Style.TransferArgs(newOwner)...)
	if err != nil {
		return nil, wrapTxError(err, "transferOwnership", target.Name, txHash)
	}
	res.TxHash = txHash.Hex()

	if target == rec {
		rec.Owner = newOwner.Hex()
	}
	return res, nil
}

func wrapTxError(err error, op, name string, txHash common.Hash) error {
	var txErr *domain.TransactionFailureError
	if errors.As(err, &txErr) {
		if txErr.Name == "" {
			txErr.Name = name
		}
		return err
	}
	failure := &domain.TransactionFailureError{Op: op, Name: name, Err: err}
	if txHash != (common.Hash{}) {
		failure.TxHash = txHash.Hex()
	}
	return failure
}

// RenderArgs renders constructor arguments for records and display
func RenderArgs(args []any) []string {
	return lo.Map(args, func(arg any, _ int) string {
		switch v := arg.(type) {
		case common.Address:
			return v.Hex()
		case *big.Int:
			return v.String()
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	})
}
