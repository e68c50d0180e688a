// Package cli provides the command-line interface for alarmscope.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	// Variables from .env complement the real environment (Slack token,
	// database URL). A missing .env is fine.
	_ = godotenv.Load()

	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarmscope",
		Short: "Classify Slack alarm messages and compute alarm statistics",
		Long: `alarmscope fetches alarm messages from configured Slack channels,
classifies them per product/environment, applies declarative ignore rules
and computes time-windowed statistics including on-call (reperibilità)
counts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewAnalyzeCommand())
	cmd.AddCommand(NewHistoryCommand())
	return cmd
}
