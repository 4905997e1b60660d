package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zapswap/zapdeploy/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of zapdeploy",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zapdeploy version %s\n", config.Version)
			if config.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", config.Commit)
			}
			if config.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", config.Date)
			}
		},
	}
}
