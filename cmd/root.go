package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "queens-server",
	Short: "Two-player Queens duel backend",
	Long: `Backend for a two-player real-time Queens puzzle duel: an 8×8 board
partitioned into 8 colored regions, each player racing to place 8
non-attacking queens on their own copy of the shared board.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
