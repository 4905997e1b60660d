package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// PlanRenderer renders the ordered steps of a deployment plan
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// Render prints the plan header followed by one row per step in execution order
func (r *PlanRenderer) Render(result *usecase.PlanDeploymentResult) error {
	network := "(no network)"
	if result.Network != nil {
		network = fmt.Sprintf("%s (%d)", result.Network.Name, result.Network.ChainID)
	}
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment plan for %s/%s\n", result.Namespace, network)
	if len(result.Plan.Tags) > 0 {
		fmt.Fprintf(r.out, "Tags: %s\n", strings.Join(result.Plan.Tags, ", "))
	}
	fmt.Fprintln(r.out)

	if len(result.Entries) == 0 {
		fmt.Fprintln(r.out, "No steps to run")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"#", "Step", "Depends On", "State", "Address"})
	for i, entry := range result.Entries {
		deps := "-"
		if len(entry.Dependencies) > 0 {
			deps = strings.Join(entry.Dependencies, ", ")
		}
		address := ""
		if entry.Record != nil {
			address = entry.Record.Address
		}
		t.AppendRow(table.Row{i + 1, entry.Step.Name, deps, FormatState(entry.State()), address})
	}
	fmt.Fprintln(r.out, t.Render())

	pending := 0
	for _, entry := range result.Entries {
		if entry.Record == nil {
			pending++
		}
	}
	fmt.Fprintf(r.out, "\n%d step(s), %d to deploy\n", len(result.Entries), pending)
	return nil
}
