package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/histora/internal/adapters/driven/llm/bedrock"
	"github.com/custodia-labs/histora/internal/adapters/driven/prompts"
	"github.com/custodia-labs/histora/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/histora/internal/config"
	"github.com/custodia-labs/histora/internal/core/ports/driving"
	"github.com/custodia-labs/histora/internal/core/services"
	"github.com/custodia-labs/histora/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question-answering API",
	Long: `Starts the HTTP API that answers questions about the collected
documents, with persona-tailored prompting and bill-reference
filtering.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	query, err := buildQueryService(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewHandler(query),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildQueryService assembles the RAG query path: Bedrock answerer,
// persona prompt store, query orchestration.
func buildQueryService(ctx context.Context, cfg *config.Config) (driving.QueryService, error) {
	if cfg.KnowledgeBaseID == "" || cfg.ModelARN == "" {
		return nil, fmt.Errorf("KNOWLEDGE_BASE_ID and MODEL_ARN must be set")
	}

	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	answerer := bedrock.NewAnswerer(bedrockagentruntime.NewFromConfig(awscfg), cfg.KnowledgeBaseID, cfg.ModelARN)

	store, err := prompts.NewStore(cfg.PromptsDir)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	return services.NewQueryService(answerer, store), nil
}
