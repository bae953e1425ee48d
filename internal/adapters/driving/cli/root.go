// Package cli wires the application together and exposes it as a
// command-line interface: collection runs, the query server, manual
// reindexing, and one-shot questions.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/histora/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "histora",
	Short: "Historical document collection and query pipeline",
	Long: `histora collects historical legislative bills and newspaper pages,
normalizes them into a unified document store, keeps the downstream
semantic index in sync, and answers questions about the collection.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI. The context is cancelled on shutdown signals
// so long runs can stop cleanly.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
