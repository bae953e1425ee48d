package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/histora/internal/config"
	"github.com/custodia-labs/histora/internal/core/services"
)

var askPersona string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question about the collection",
	Long: `Answers a single question against the knowledge base and prints the
answer with its cited sources. Useful for smoke-testing the query
path without running the server.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askPersona, "persona", services.FallbackPersona, "persona framing the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	query, err := buildQueryService(ctx, cfg)
	if err != nil {
		return err
	}

	answer, err := query.Ask(ctx, strings.Join(args, " "), askPersona)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for _, src := range answer.Sources {
			if src.Title != "" {
				cmd.Printf("  - %s (%s)\n", src.Title, src.DocumentID)
			} else {
				cmd.Printf("  - %s\n", src.DocumentID)
			}
		}
	}
	return nil
}
