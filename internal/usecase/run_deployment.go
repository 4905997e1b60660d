package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/zapswap/zapdeploy/internal/domain/config"
)

// RunDeploymentParams contains parameters for a deployment run
type RunDeploymentParams struct {
	Tags   []string
	Force  bool
	DryRun bool
}

// RunDeploymentResult contains the result of a deployment run
type RunDeploymentResult struct {
	SessionID string
	Network   *config.Network
	Namespace string
	Accounts  NamedAccounts
	Plan      *DeploymentPlan
	Executed  []*StepResult
	Failed    *StepResult
	DryRun    bool
	Success   bool
}

// Deployed returns how many contracts this run deployed
func (r *RunDeploymentResult) Deployed() int {
	count := 0
	for _, s := range r.Executed {
		if s.Outcome != nil && s.Outcome.Deployed {
			count++
		}
	}
	return count
}

// StepResult contains the result of executing a single step
type StepResult struct {
	Step     *Step
	Outcome  *StepOutcome
	Duration time.Duration
	Error    error
}

// RunDeployment executes the deployment steps against one network
type RunDeployment struct {
	config    *config.RuntimeConfig
	registry  StepRegistry
	repo      DeploymentRepository
	artifacts ArtifactRepository
	backend   ChainBackend
	locker    SessionLocker
	progress  ProgressSink
	log       *slog.Logger
}

// NewRunDeployment creates a new RunDeployment use case
func NewRunDeployment(
	cfg *config.RuntimeConfig,
	registry StepRegistry,
	repo DeploymentRepository,
	artifacts ArtifactRepository,
	backend ChainBackend,
	locker SessionLocker,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeployment {
	return &RunDeployment{
		config:    cfg,
		registry:  registry,
		repo:      repo,
		artifacts: artifacts,
		backend:   backend,
		locker:    locker,
		progress:  progress,
		log:       log,
	}
}

// Run executes the planned steps strictly sequentially. The first failure
// aborts the run; records persisted before it are kept.
func (uc *RunDeployment) Run(ctx context.Context, params RunDeploymentParams) (result *RunDeploymentResult, err error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network specified, use --network or set ZAPDEPLOY_NETWORK")
	}

	plan, err := BuildPlan(uc.registry.Steps(), params.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to build deployment plan: %w", err)
	}

	result = &RunDeploymentResult{
		SessionID: uuid.NewString(),
		Network:   network,
		Namespace: uc.config.Namespace,
		Plan:      plan,
		DryRun:    params.DryRun,
	}
	log := uc.log.With("session", result.SessionID, "network", network.Name, "namespace", uc.config.Namespace)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    "plan_created",
		Total:    len(plan.Steps),
		Metadata: plan,
	})

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	var deployerKey string
	if uc.config.Project != nil {
		deployerKey = uc.config.Project.Accounts.DeployerKey
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "connecting",
		Message: fmt.Sprintf("Connecting to %s", network.Name),
		Spinner: true,
	})
	if err := uc.backend.Connect(ctx, network, deployerKey); err != nil {
		return result, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer uc.backend.Close()

	result.Accounts, err = uc.namedAccounts(log)
	if err != nil {
		return result, err
	}

	if !params.DryRun {
		key := fmt.Sprintf("%s/%d/%s", uc.config.Namespace, network.ChainID, result.Accounts.Deployer.Hex())
		var lease SessionLease
		lease, err = uc.locker.Acquire(ctx, key, result.SessionID)
		if err != nil {
			return result, fmt.Errorf("failed to acquire session lock: %w", err)
		}
		defer func() {
			// The run context may already be cancelled
			if releaseErr := lease.Release(context.Background()); releaseErr != nil {
				log.Warn("failed to release session lock", "error", releaseErr)
				err = errors.Join(err, releaseErr)
			}
		}()
	}

	deployments := NewDeployments(uc.repo, uc.artifacts, uc.backend, uc.progress, log,
		uc.config.Namespace, network.ChainID, params.DryRun)
	targets := plan.Targets()
	chainKey := network.ChainKey()

	for i, step := range plan.Steps {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    "step_started",
			Current:  i + 1,
			Total:    len(plan.Steps),
			Message:  step.Name,
			Metadata: step,
		})

		started := time.Now()
		sc := newStepContext(ctx, step, result.Accounts, chainKey, deployments, plan.Closure(step.Name), log)
		outcome, stepErr := RunStep(sc, step, deployments, params.Force && targets[step.Name])

		stepResult := &StepResult{
			Step:     step,
			Outcome:  outcome,
			Duration: time.Since(started),
			Error:    stepErr,
		}

		if stepErr != nil {
			result.Failed = stepResult
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:    "step_failed",
				Current:  i + 1,
				Total:    len(plan.Steps),
				Message:  step.Name,
				Metadata: stepResult,
			})
			log.Error("step failed", "step", step.Name, "error", stepErr)
			return result, fmt.Errorf("step %s failed: %w", step.Name, stepErr)
		}

		result.Executed = append(result.Executed, stepResult)
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    "step_completed",
			Current:  i + 1,
			Total:    len(plan.Steps),
			Message:  step.Name,
			Metadata: stepResult,
		})
	}

	result.Success = true
	return result, nil
}

func (uc *RunDeployment) namedAccounts(log *slog.Logger) (NamedAccounts, error) {
	accounts := NamedAccounts{Deployer: uc.backend.From()}

	var dev string
	if uc.config.Project != nil {
		dev = uc.config.Project.Accounts.Dev
	}
	if dev == "" {
		log.Warn("no dev account configured, using deployer", "deployer", accounts.Deployer.Hex())
		accounts.Dev = accounts.Deployer
		return accounts, nil
	}
	if !common.IsHexAddress(dev) {
		return accounts, fmt.Errorf("invalid dev account %q", dev)
	}
	accounts.Dev = common.HexToAddress(dev)
	return accounts, nil
}
