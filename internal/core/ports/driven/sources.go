package driven

import (
	"context"

	"github.com/custodia-labs/histora/internal/core/domain"
)

// BillSummary is one entry from the legislative API's bill listing.
type BillSummary struct {
	Number           string
	Title            string
	IntroducedDate   string
	LatestAction     string
	LatestActionDate string
}

// LegislativeSource adapts the legislative REST API. Implementations
// handle pagination and rate limiting internally.
type LegislativeSource interface {
	// ListBills returns the bill summaries for one (congress, billType)
	// pair, in upstream list order.
	ListBills(ctx context.Context, congress int, billType string) ([]BillSummary, error)

	// ResolveText resolves a bill's best available text representation.
	// Returns the text and the canonical URL it was derived from, or
	// ("", "") with a nil error when the bill has no digitised text:
	// that is an expected condition, not a pipeline failure.
	ResolveText(ctx context.Context, congress int, billType, number string) (text, canonicalURL string, err error)
}

// DatasetReader reads rows from the bulk, pre-OCR'd corpus. Rows are
// mappings of named fields; the corpus adapter validates and shapes
// them into Documents.
type DatasetReader interface {
	// Open opens the configured dataset and returns its total row count.
	Open(ctx context.Context) (int, error)

	// Row reads one row by its fixed external index.
	Row(ctx context.Context, index int) (map[string]string, error)
}

// CorpusSource is the bulk corpus adapter as the collector sees it:
// an opened row range producing ready-made Documents.
type CorpusSource interface {
	// Open returns the number of rows to process, after applying any
	// configured cap.
	Open(ctx context.Context) (int, error)

	// Document reads and validates row index, returning the shaped
	// Document. Returns domain.ErrInvalidInput for rows missing
	// required fields.
	Document(ctx context.Context, index int) (*domain.Document, error)
}
