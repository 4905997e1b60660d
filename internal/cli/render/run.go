package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// RunRenderer renders the summary of a deployment run
type RunRenderer struct {
	out io.Writer
}

// NewRunRenderer creates a new run renderer
func NewRunRenderer(out io.Writer) *RunRenderer {
	return &RunRenderer{out: out}
}

// Render prints the per-step outcomes and the final status of a run
func (r *RunRenderer) Render(result *usecase.RunDeploymentResult) error {
	fmt.Fprintln(r.out)
	header := color.New(color.FgCyan, color.Bold)
	if result.DryRun {
		header.Fprintln(r.out, "Dry run summary")
	} else {
		header.Fprintln(r.out, "Deployment summary")
	}

	if result.Network != nil {
		fmt.Fprintf(r.out, "  Network:   %s (%d)\n", result.Network.Name, result.Network.ChainID)
	}
	fmt.Fprintf(r.out, "  Namespace: %s\n", result.Namespace)
	if (result.Accounts != usecase.NamedAccounts{}) {
		fmt.Fprintf(r.out, "  Deployer:  %s\n", result.Accounts.Deployer.Hex())
		fmt.Fprintf(r.out, "  Dev:       %s\n", result.Accounts.Dev.Hex())
	}
	fmt.Fprintf(r.out, "  Session:   %s\n", color.New(color.Faint).Sprint(result.SessionID))
	fmt.Fprintln(r.out)

	for _, step := range result.Executed {
		r.renderStep(step)
	}
	if result.Failed != nil {
		fmt.Fprintf(r.out, "  %s %s: %v\n", color.New(color.FgRed).Sprint("✗"), result.Failed.Step.Name, result.Failed.Error)
	}

	fmt.Fprintln(r.out)
	switch {
	case result.Failed != nil:
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("run stopped at %s after %d step(s)", result.Failed.Step.Name, len(result.Executed))))
	case result.DryRun:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("dry run complete, %d step(s) checked, nothing was sent", len(result.Executed))))
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%d step(s) complete, %d contract(s) deployed", len(result.Executed), result.Deployed())))
	}
	return nil
}

func (r *RunRenderer) renderStep(step *usecase.StepResult) {
	outcome := step.Outcome
	elapsed := color.New(color.Faint).Sprintf("(%s)", step.Duration.Round(time.Millisecond))

	switch {
	case outcome == nil || outcome.Skipped:
		fmt.Fprintf(r.out, "  ⊘ %s skipped\n", step.Step.Name)
		return
	case outcome.Record == nil:
		fmt.Fprintf(r.out, "  ? %s\n", step.Step.Name)
		return
	case outcome.Deployed:
		fmt.Fprintf(r.out, "  %s %s deployed at %s %s\n", color.New(color.FgGreen).Sprint("✓"), step.Step.Name, outcome.Record.Address, elapsed)
	case outcome.Record.Address == "":
		fmt.Fprintf(r.out, "  ○ %s would deploy\n", step.Step.Name)
	default:
		fmt.Fprintf(r.out, "  %s %s reusing %s\n", color.New(color.FgCyan).Sprint("✓"), step.Step.Name, outcome.Record.Address)
	}

	for _, transfer := range outcome.Transfers {
		switch {
		case transfer.Skipped:
			fmt.Fprintf(r.out, "      owner of %s already %s\n", transfer.Target, transfer.NewOwner.Hex())
		case transfer.PendingOn != "":
			fmt.Fprintf(r.out, "      would transfer %s to %s once it is deployed\n", transfer.Target, transfer.PendingOn)
		case transfer.TxHash == "":
			fmt.Fprintf(r.out, "      would transfer %s to %s\n", transfer.Target, transfer.NewOwner.Hex())
		default:
			fmt.Fprintf(r.out, "      transferred %s to %s (tx %s)\n", transfer.Target, transfer.NewOwner.Hex(), transfer.TxHash)
		}
	}
}
