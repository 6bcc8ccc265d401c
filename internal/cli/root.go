// Package cli implements the chargewatch CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chargewatch",
	Short: "Battery level notifications",
	Long: `chargewatch raises desktop notifications when the battery reaches
the levels you configure. The chargewatchd daemon does the watching;
this command edits its settings and manages it.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
