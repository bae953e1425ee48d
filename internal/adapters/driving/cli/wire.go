package cli

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/textract"

	ocr "github.com/custodia-labs/histora/internal/adapters/driven/ocr/textract"
	"github.com/custodia-labs/histora/internal/adapters/driven/storage/s3"
	"github.com/custodia-labs/histora/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/histora/internal/config"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// buildStore selects the object store: SQLite for local runs, S3
// otherwise. The returned closer is nil for S3.
func buildStore(ctx context.Context, cfg *config.Config) (driven.ObjectStore, func() error, error) {
	if cfg.LocalStorePath != "" {
		store, err := sqlite.Open(cfg.LocalStorePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}

	if cfg.Bucket == "" {
		return nil, nil, fmt.Errorf("BUCKET_NAME or LOCAL_STORE_PATH must be set")
	}
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewObjectStore(awss3.NewFromConfig(awscfg), cfg.Bucket), nil, nil
}

// buildOCR creates the Textract backend reading staged objects from
// the bucket. OCR needs the production store; local SQLite runs can
// still collect plain-text bills and the pre-OCR'd corpus.
func buildOCR(ctx context.Context, cfg *config.Config) (driven.OCRBackend, error) {
	awscfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ocr.NewBackend(textract.NewFromConfig(awscfg), cfg.Bucket), nil
}
