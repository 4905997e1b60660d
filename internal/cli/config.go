package cli

import (
	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/cli/render"
	"github.com/zapswap/zapdeploy/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved session and manage saved defaults",
		Long: `Show what a command run here would use: namespace, network with its
chain ID and address-table coverage, and the registry and lock backends.

Namespace and network defaults are saved in .zapdeploy/config.local.json
and apply when --namespace or --network is not given.

Subcommands:
  config set       Save a default
  config remove    Clear a default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a namespace or network default",
		Long: `Save a default in .zapdeploy/config.local.json.
Keys: namespace (ns), network (net). Networks must resolve from zapdeploy.toml.

Examples:
  zapdeploy config set ns staging
  zapdeploy config set network ropsten`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Clear a saved default",
		Long: `Clear a default from .zapdeploy/config.local.json.
Without a namespace default runs use 'default'; without a network
default commands need --network.

Examples:
  zapdeploy config remove ns
  zapdeploy config remove network`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{
				Key: args[0],
			})
			if err != nil {
				return err
			}

			return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
		},
	}
}

func showConfig(cmd *cobra.Command, format string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := a.ShowConfig.Run(cmd.Context())
	if err != nil {
		return err
	}

	if f := outputFormat(a, format); f != render.FormatText {
		return render.RenderStructured(cmd.OutOrStdout(), f, render.NewConfigReport(result))
	}
	return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
}
