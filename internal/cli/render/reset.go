package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// ResetRenderer renders the records a reset removes
type ResetRenderer struct {
	out io.Writer
}

// NewResetRenderer creates a new reset renderer
func NewResetRenderer(out io.Writer) *ResetRenderer {
	return &ResetRenderer{out: out}
}

// RenderPreview lists the records a reset would remove
func (r *ResetRenderer) RenderPreview(result *usecase.ResetDeploymentsResult) {
	fmt.Fprintf(r.out, "The following %d record(s) in %s/%s will be removed:\n", len(result.Removed), result.Namespace, networkName(result))
	for _, rec := range result.Removed {
		fmt.Fprintf(r.out, "  - %s at %s %s\n", rec.GetDisplayName(), rec.Address, color.New(color.Faint).Sprintf("[%s]", rec.State))
	}
}

// Render prints the outcome of a reset
func (r *ResetRenderer) Render(result *usecase.ResetDeploymentsResult) error {
	if len(result.Removed) == 0 {
		fmt.Fprintf(r.out, "No deployments to reset in %s/%s\n", result.Namespace, networkName(result))
		return nil
	}
	if result.DryRun {
		r.RenderPreview(result)
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("removed %d record(s) from %s/%s", len(result.Removed), result.Namespace, networkName(result))))
	return nil
}

func networkName(result *usecase.ResetDeploymentsResult) string {
	if result.Network == nil {
		return "?"
	}
	return result.Network.Name
}
