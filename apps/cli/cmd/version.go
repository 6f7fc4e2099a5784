package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              usageArgs(cobra.NoArgs),
	PersistentPreRunE: skipSetup,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wave version %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", buildTime)
	},
}

// skipSetup replaces the root pre-run for commands that need no config.
func skipSetup(*cobra.Command, []string) error { return nil }
