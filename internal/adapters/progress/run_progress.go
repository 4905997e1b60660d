package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

var (
	stepColor    = color.New(color.FgWhite, color.Bold)
	addressColor = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgWhite, color.Faint)
	failColor    = color.New(color.FgRed, color.Bold)
)

// RunProgress narrates a deployment run step by step
type RunProgress struct {
	spinner *SpinnerProgressReporter
}

// NewRunProgress creates a run narrator writing to stdout
func NewRunProgress() *RunProgress {
	return NewRunProgressTo(os.Stdout)
}

// NewRunProgressTo creates a run narrator writing to out
func NewRunProgressTo(out io.Writer) *RunProgress {
	return &RunProgress{spinner: NewSpinnerProgressReporterTo(out)}
}

// OnProgress renders the run's stage events
func (n *RunProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case "plan_created":
		if plan, ok := event.Metadata.(*usecase.DeploymentPlan); ok {
			n.spinner.Println(fmt.Sprintf("Plan: %s", strings.Join(plan.Names(), " → ")))
		}
	case "step_started":
		event.Spinner = true
		event.Message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	case "step_completed":
		n.spinner.Stop()
		if res, ok := event.Metadata.(*usecase.StepResult); ok {
			n.spinner.Println(fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, describeStep(res)))
		}
		return
	case "step_failed":
		n.spinner.Stop()
		if res, ok := event.Metadata.(*usecase.StepResult); ok {
			n.spinner.Println(fmt.Sprintf("[%d/%d] %s %s: %v", event.Current, event.Total,
				failColor.Sprint("✗"), stepColor.Sprint(res.Step.Name), res.Error))
		}
		return
	}

	n.spinner.OnProgress(ctx, event)
}

// Info prints operator-facing messages such as ownership transfers
func (n *RunProgress) Info(message string) {
	n.spinner.Info(message)
}

// Error prints error messages
func (n *RunProgress) Error(message string) {
	n.spinner.Error(message)
}

func describeStep(res *usecase.StepResult) string {
	name := stepColor.Sprint(res.Step.Name)
	out := res.Outcome
	switch {
	case out == nil || out.Skipped:
		return fmt.Sprintf("%s %s %s", mutedColor.Sprint("⊘"), name, mutedColor.Sprint("skipped"))
	case out.Record.Address == "":
		return fmt.Sprintf("%s %s %s", color.YellowString("○"), name, mutedColor.Sprint("would deploy"))
	case out.Deployed:
		return fmt.Sprintf("%s %s deployed at %s", color.GreenString("✓"), name, addressColor.Sprint(out.Record.Address))
	default:
		return fmt.Sprintf("%s %s reusing %s", color.GreenString("✓"), name, addressColor.Sprint(out.Record.Address))
	}
}

// Ensure RunProgress implements ProgressSink
var _ usecase.ProgressSink = (*RunProgress)(nil)
