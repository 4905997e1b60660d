package render

import (
	"github.com/zapswap/zapdeploy/internal/domain/config"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// PlanReport is the machine-readable form of a deployment plan
type PlanReport struct {
	Network   string           `json:"network,omitempty" yaml:"network,omitempty"`
	ChainID   uint64           `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Namespace string           `json:"namespace" yaml:"namespace"`
	Tags      []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Steps     []PlanStepReport `json:"steps" yaml:"steps"`
}

// PlanStepReport describes one planned step
type PlanStepReport struct {
	Name         string           `json:"name" yaml:"name"`
	Tags         []string         `json:"tags" yaml:"tags"`
	Dependencies []string         `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	State        models.StepState `json:"state" yaml:"state"`
	Address      string           `json:"address,omitempty" yaml:"address,omitempty"`
}

// NewPlanReport flattens a plan result for JSON or YAML output
func NewPlanReport(result *usecase.PlanDeploymentResult) *PlanReport {
	report := &PlanReport{
		Namespace: result.Namespace,
		Steps:     make([]PlanStepReport, 0, len(result.Entries)),
	}
	if result.Network != nil {
		report.Network = result.Network.Name
		report.ChainID = result.Network.ChainID
	}
	if result.Plan != nil {
		report.Tags = result.Plan.Tags
	}
	for _, entry := range result.Entries {
		step := PlanStepReport{
			Name:         entry.Step.Name,
			Tags:         entry.Step.AllTags(),
			Dependencies: entry.Dependencies,
			State:        entry.State(),
		}
		if entry.Record != nil {
			step.Address = entry.Record.Address
		}
		report.Steps = append(report.Steps, step)
	}
	return report
}

// RunReport is the machine-readable form of a run result
type RunReport struct {
	SessionID string          `json:"sessionId" yaml:"sessionId"`
	Network   string          `json:"network,omitempty" yaml:"network,omitempty"`
	ChainID   uint64          `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	Namespace string          `json:"namespace" yaml:"namespace"`
	Deployer  string          `json:"deployer,omitempty" yaml:"deployer,omitempty"`
	Dev       string          `json:"dev,omitempty" yaml:"dev,omitempty"`
	DryRun    bool            `json:"dryRun" yaml:"dryRun"`
	Success   bool            `json:"success" yaml:"success"`
	Deployed  int             `json:"deployed" yaml:"deployed"`
	Steps     []RunStepReport `json:"steps" yaml:"steps"`
}

// RunStepReport describes the outcome of one executed step
type RunStepReport struct {
	Name       string           `json:"name" yaml:"name"`
	Skipped    bool             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Deployed   bool             `json:"deployed,omitempty" yaml:"deployed,omitempty"`
	Address    string           `json:"address,omitempty" yaml:"address,omitempty"`
	State      models.StepState `json:"state,omitempty" yaml:"state,omitempty"`
	TxHash     string           `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Args       []string         `json:"args,omitempty" yaml:"args,omitempty"`
	Transfers  []TransferReport `json:"transfers,omitempty" yaml:"transfers,omitempty"`
	DurationMS int64            `json:"durationMs" yaml:"durationMs"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// TransferReport describes one ownership handoff
type TransferReport struct {
	Target    string `json:"target" yaml:"target"`
	Address   string `json:"address" yaml:"address"`
	NewOwner  string `json:"newOwner,omitempty" yaml:"newOwner,omitempty"`
	PendingOn string `json:"pendingOn,omitempty" yaml:"pendingOn,omitempty"`
	TxHash    string `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	Skipped   bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewRunReport flattens a run result for JSON or YAML output
func NewRunReport(result *usecase.RunDeploymentResult) *RunReport {
	report := &RunReport{
		SessionID: result.SessionID,
		Namespace: result.Namespace,
		DryRun:    result.DryRun,
		Success:   result.Success,
		Deployed:  result.Deployed(),
		Steps:     make([]RunStepReport, 0, len(result.Executed)+1),
	}
	if result.Network != nil {
		report.Network = result.Network.Name
		report.ChainID = result.Network.ChainID
	}
	if (result.Accounts != usecase.NamedAccounts{}) {
		report.Deployer = result.Accounts.Deployer.Hex()
		report.Dev = result.Accounts.Dev.Hex()
	}

	steps := result.Executed
	if result.Failed != nil {
		steps = append(steps[:len(steps):len(steps)], result.Failed)
	}
	for _, s := range steps {
		report.Steps = append(report.Steps, newRunStepReport(s))
	}
	return report
}

func newRunStepReport(s *usecase.StepResult) RunStepReport {
	step := RunStepReport{
		Name:       s.Step.Name,
		DurationMS: s.Duration.Milliseconds(),
	}
	if s.Error != nil {
		step.Error = s.Error.Error()
	}
	if s.Outcome == nil {
		return step
	}
	step.Skipped = s.Outcome.Skipped
	step.Deployed = s.Outcome.Deployed
	step.Args = s.Outcome.Args
	if rec := s.Outcome.Record; rec != nil {
		step.Address = rec.Address
		step.State = rec.State
		step.TxHash = rec.TxHash
	}
	for _, t := range s.Outcome.Transfers {
		transfer := TransferReport{
			Target:    t.Target,
			Address:   t.Address.Hex(),
			PendingOn: t.PendingOn,
			TxHash:    t.TxHash,
			Skipped:   t.Skipped,
		}
		if t.PendingOn == "" {
			transfer.NewOwner = t.NewOwner.Hex()
		}
		step.Transfers = append(step.Transfers, transfer)
	}
	return step
}

// ConfigReport is the resolved session for JSON or YAML output
type ConfigReport struct {
	Namespace     string          `json:"namespace" yaml:"namespace"`
	Network       string          `json:"network,omitempty" yaml:"network,omitempty"`
	ChainID       uint64          `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	ChainName     string          `json:"chainName,omitempty" yaml:"chainName,omitempty"`
	Dev           bool            `json:"dev,omitempty" yaml:"dev,omitempty"`
	CoveredTables []string        `json:"coveredTables,omitempty" yaml:"coveredTables,omitempty"`
	MissingTables []string        `json:"missingTables,omitempty" yaml:"missingTables,omitempty"`
	Registry      BackendReport   `json:"registry" yaml:"registry"`
	Lock          BackendReport   `json:"lock" yaml:"lock"`
	Defaults      config.Defaults `json:"defaults" yaml:"defaults"`
	DefaultsPath  string          `json:"defaultsPath" yaml:"defaultsPath"`
}

// BackendReport names a storage backend and where it keeps its state
type BackendReport struct {
	Kind     string `json:"kind" yaml:"kind"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// NewConfigReport flattens a show-config result
func NewConfigReport(result *usecase.ShowConfigResult) *ConfigReport {
	report := &ConfigReport{
		Namespace:     result.Namespace,
		ChainName:     result.ChainName,
		CoveredTables: result.CoveredTables,
		MissingTables: result.MissingTables,
		Registry:      BackendReport(result.Registry),
		Lock:          BackendReport(result.Lock),
		DefaultsPath:  result.DefaultsPath,
	}
	if result.Defaults != nil {
		report.Defaults = *result.Defaults
	}
	if n := result.Network; n != nil {
		report.Network = n.Name
		report.ChainID = n.ChainID
		report.Dev = n.Dev
	}
	return report
}
