package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "easydinar",
	Short: "EasyDinar banking web front end",
	Long: `easydinar serves the EasyDinar web front end: the sign-in pages and the
client dashboard, backed by the EasyDinar bank API.

Use "easydinar [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
