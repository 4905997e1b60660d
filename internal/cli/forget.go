package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewForgetCmd creates the forget command
func NewForgetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "forget <name>",
		Short: "Forget the record of a step so the next run deploys it again",
		Long: `Delete the deployment record of a step in the current namespace and network.

The contract stays on chain; only the record is removed.`,
		Example: `  zapdeploy forget ZapStake --network localhost`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := a.Confirmer.Confirm(cmd.Context(), fmt.Sprintf("Forget the record of %s?", args[0]), false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			rec, err := a.ForgetDeployment.Run(cmd.Context(), usecase.ForgetDeploymentParams{Name: args[0]})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("forgot %s at %s", rec.GetDisplayName(), rec.Address)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}
