package cli

import (
	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <deployment>",
		Short: "Show detailed deployment information",
		Long: `Show detailed information about a deployment record.

The name is matched exactly in the current namespace and network first, then
by prefix or fuzzy match. When several records match you are asked to pick one.

Examples:
  zapdeploy show ZapStake
  zapdeploy show ZapDir --network rinkeby
  zapdeploy show ZapToken --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			rec, err := a.ShowDeployment.Run(cmd.Context(), usecase.ShowDeploymentParams{
				Name: args[0],
			})
			if err != nil {
				return err
			}

			if f := outputFormat(a, format); f != render.FormatText {
				return render.RenderStructured(cmd.OutOrStdout(), f, rec)
			}
			return render.NewDeploymentRenderer(cmd.OutOrStdout(), a.Networks.ChainName).RenderDeployment(rec)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
