package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/app"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		tags        []string
		force       bool
		dryRun      bool
		yes         bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "run [tags...]",
		Aliases: []string{"deploy"},
		Short:   "Run the deployment steps",
		Long: `Run the deployment steps on the selected network.

Steps are ordered by their dependency tags. With --tags only the matching
steps and everything they depend on are run. Steps that already have a record
in the current namespace are reused; --force redeploys the tagged steps.

Live networks ask for confirmation unless --yes is given.`,
		Example: `  # Deploy everything to a local node
  zapdeploy run --network localhost

  # Deploy the staking contracts and their dependencies
  zapdeploy run --network rinkeby --tags ZapStake

  # Show what a run would do without sending transactions
  zapdeploy run --network mainnet --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			tags = append(tags, args...)
			if len(tags) == 0 && interactive {
				if a.Config.NonInteractive {
					return fmt.Errorf("--select requires interactive mode")
				}
				tags, err = SelectTags(tagItems(a.Steps.Steps()), "Select the tags to deploy")
				if err != nil {
					return err
				}
			}

			if !dryRun && !yes && a.Config.Network != nil && !a.Config.Network.Dev {
				ok, err := a.Confirmer.Confirm(cmd.Context(),
					fmt.Sprintf("Deploy to %s (chain %d) in namespace %s?", a.Config.Network.Name, a.Config.Network.ChainID, a.Config.Namespace),
					false)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("deployment cancelled")
				}
			}

			result, runErr := a.RunDeployment.Run(cmd.Context(), usecase.RunDeploymentParams{
				Tags:   tags,
				Force:  force,
				DryRun: dryRun,
			})
			if result != nil {
				if err := renderRun(cmd, a, result); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Only run steps with these tags and their dependencies")
	cmd.Flags().BoolVar(&force, "force", false, "Redeploy the tagged steps even when a record exists")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan the run without sending transactions or writing records")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation on live networks")
	cmd.Flags().BoolVarP(&interactive, "select", "i", false, "Pick tags interactively")

	return cmd
}

func renderRun(cmd *cobra.Command, a *app.App, result *usecase.RunDeploymentResult) error {
	if a.Config.JSON {
		return render.RenderStructured(cmd.OutOrStdout(), render.FormatJSON, render.NewRunReport(result))
	}
	return render.NewRunRenderer(cmd.OutOrStdout()).Render(result)
}

// tagItems groups step names under every tag they provide
func tagItems(steps []*usecase.Step) []tagItem {
	byTag := make(map[string][]string)
	for _, step := range steps {
		for _, tag := range step.AllTags() {
			byTag[tag] = append(byTag[tag], step.Name)
		}
	}

	items := make([]tagItem, 0, len(byTag))
	for tag, names := range byTag {
		sort.Strings(names)
		items = append(items, tagItem{tag: tag, steps: names})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].tag < items[j].tag })
	return items
}
