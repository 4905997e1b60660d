package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget every record of the current namespace and network",
		Long: `Delete all deployment records of the current namespace and network, so the
next run deploys the whole plan again. Contracts on chain are not touched.`,
		Example: `  # Preview what would be removed
  zapdeploy reset --network localhost --dry-run

  # Start over on a local node
  zapdeploy reset --network localhost --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			renderer := render.NewResetRenderer(cmd.OutOrStdout())

			preview, err := a.ResetDeployments.Run(cmd.Context(), usecase.ResetDeploymentsParams{DryRun: true})
			if err != nil {
				return err
			}
			if dryRun || len(preview.Removed) == 0 {
				return renderer.Render(preview)
			}

			if !yes {
				renderer.RenderPreview(preview)
				ok, err := a.Confirmer.Confirm(cmd.Context(), "Remove these records?", false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			result, err := a.ResetDeployments.Run(cmd.Context(), usecase.ResetDeploymentsParams{})
			if err != nil {
				return err
			}
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without deleting anything")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
