// Package cli wires the dayflow commands. Running the binary with no
// arguments opens the TUI; subcommands cover scripted use.
package cli

import (
	"github.com/spf13/cobra"

	"dayflow/internal/tui"
	"dayflow/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "dayflow",
	Short:   "Personal task scheduling from the terminal",
	Long:    `Dayflow keeps a multi-day task board with hourly time blocks and per-task focus timers. Run it bare for the interactive board.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

func init() {
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(syncCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
