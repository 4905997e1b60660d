package cli

import (
	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		name string
		tag  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployment records",
		Long: `List the deployment records of the current namespace.

With --network only records on that chain are listed.`,
		Example: `  # List every record in the namespace
  zapdeploy list

  # List the staking contracts on rinkeby
  zapdeploy list --network rinkeby --tag ZapStake`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				Name: name,
				Tag:  tag,
			})
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.RenderStructured(cmd.OutOrStdout(), render.FormatJSON, result.Deployments)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), a.Networks.ChainName).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by step name")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag")

	return cmd
}
