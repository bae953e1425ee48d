package cli

import (
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/histora/internal/adapters/driven/index/bedrock"
	"github.com/custodia-labs/histora/internal/config"
	"github.com/custodia-labs/histora/internal/core/services"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Sync the knowledge base with the object store",
	Long: `Starts an ingestion job for every data source of the knowledge base
and waits for each to finish. Collections are synced one at a time.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.KnowledgeBaseID == "" {
		return fmt.Errorf("KNOWLEDGE_BASE_ID must be set")
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	index := bedrock.NewIndex(bedrockagent.NewFromConfig(awscfg), cfg.KnowledgeBaseID)

	reindexer := services.NewReindexer(index, nil, services.DefaultReindexConfig())
	if err := reindexer.Reindex(ctx); err != nil {
		return err
	}

	cmd.Println("Reindex complete.")
	return nil
}
