package cli

import (
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagent"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/histora/internal/adapters/driven/corpus/hf"
	"github.com/custodia-labs/histora/internal/adapters/driven/index/bedrock"
	"github.com/custodia-labs/histora/internal/connectors/chronicling"
	"github.com/custodia-labs/histora/internal/connectors/congress"
	"github.com/custodia-labs/histora/internal/config"
	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/services"
	"github.com/custodia-labs/histora/internal/extraction"
)

var skipReindex bool

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the full collection pipeline",
	Long: `Collects legislative bills from the Congress API and newspaper pages
from the bulk corpus, persists them to the object store, writes the
run summary, and triggers a knowledge base sync.

The run exits non-zero when any item failed; already-collected items
are skipped and do not count as failures.`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().BoolVar(&skipReindex, "skip-reindex", false, "do not trigger a knowledge base sync after collecting")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.CongressAPIKey == "" {
		return fmt.Errorf("CONGRESS_API_KEY must be set")
	}

	store, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	client := congress.NewClient(cfg.CongressAPIKey)

	// OCR needs a bucket for async staging; local runs without one
	// still collect every bill published as plain text.
	var extractor congress.TextExtractor
	if cfg.Bucket != "" {
		backend, err := buildOCR(ctx, cfg)
		if err != nil {
			return err
		}
		extractor = extraction.NewSelector(backend, store, nil, extraction.DefaultConfig())
	}
	bills := congress.NewResolver(client, extractor)

	corpus := chronicling.NewAdapter(hf.NewReader(cfg.Dataset), cfg.MaxNewspaperRows)

	var reindexer *services.Reindexer
	if !skipReindex && cfg.KnowledgeBaseID != "" {
		awscfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		index := bedrock.NewIndex(bedrockagent.NewFromConfig(awscfg), cfg.KnowledgeBaseID)
		reindexer = services.NewReindexer(index, nil, services.DefaultReindexConfig())
	}

	collector := services.NewCollector(bills, corpus, services.NewPersister(store), store, reindexer, nil,
		services.CollectorConfig{
			Congresses:       cfg.Congresses(),
			BillTypes:        cfg.BillTypes,
			DatasetName:      cfg.Dataset,
			MaxNewspaperRows: cfg.MaxNewspaperRows,
			ItemDelay:        500 * time.Millisecond,
		})

	report, err := collector.Run(ctx)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return err
	}
	if !report.Clean() {
		return fmt.Errorf("%d items failed", report.TotalFailed)
	}
	return nil
}

func printReport(cmd *cobra.Command, r *domain.RunReport) {
	cmd.Printf("\nRun %s finished in %.1fs\n", r.RunID, r.ElapsedSeconds)
	cmd.Printf("  Bills:      %d collected, %d skipped, %d failed (of %d)\n",
		r.Bills.Successful, r.Bills.Skipped, r.Bills.Failed, r.Bills.Total)
	cmd.Printf("  Newspapers: %d collected, %d skipped, %d failed (of %d)\n",
		r.Newspapers.Successful, r.Newspapers.Skipped, r.Newspapers.Failed, r.Newspapers.Total)
	if len(r.Errors) > 0 {
		cmd.Printf("  Errors (%d, full list in %s):\n", len(r.Errors), services.SummaryKey)
		for i, e := range r.Errors {
			if i == 10 {
				cmd.Printf("    ... and %d more\n", len(r.Errors)-10)
				break
			}
			cmd.Printf("    - %s\n", e)
		}
	}
}
