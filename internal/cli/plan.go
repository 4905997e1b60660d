package cli

import (
	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var (
		tags   []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "plan [tags...]",
		Short: "Show the ordered steps a run would execute",
		Long: `Show the steps a run would execute, in order, with the recorded state
of each step in the current namespace and network. Nothing is sent to the chain.`,
		Example: `  zapdeploy plan --network localhost
  zapdeploy plan ZapStake --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.PlanDeployment.Run(cmd.Context(), usecase.PlanDeploymentParams{
				Tags: append(tags, args...),
			})
			if err != nil {
				return err
			}

			if f := outputFormat(a, format); f != render.FormatText {
				return render.RenderStructured(cmd.OutOrStdout(), f, render.NewPlanReport(result))
			}
			return render.NewPlanRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Only plan steps with these tags and their dependencies")
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
