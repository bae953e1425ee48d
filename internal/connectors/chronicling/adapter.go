package chronicling

import (
	"context"
	"fmt"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
)

// BatchSize is the number of rows per downstream collection. Batch
// assignment is floor(row/BatchSize)+1 and is purely organizational.
const BatchSize = 25000

// Row field names in the upstream dataset.
const (
	fieldText    = "ocr_text"
	fieldPDFURL  = "pdf_url"
	fieldTitle   = "newspaper_title"
	fieldDate    = "issue_date"
	fieldPlace   = "place_of_publication"
	fieldEdition = "edition_notes"
)

// Ensure Adapter implements the interface.
var _ driven.CorpusSource = (*Adapter)(nil)

// Adapter reads newspaper rows and shapes them into documents.
type Adapter struct {
	reader  driven.DatasetReader
	maxRows int
}

// NewAdapter creates a corpus adapter. maxRows of 0 means no truncation.
func NewAdapter(reader driven.DatasetReader, maxRows int) *Adapter {
	return &Adapter{reader: reader, maxRows: maxRows}
}

// Open prepares the dataset and returns how many rows to process,
// after applying the configured truncation.
func (a *Adapter) Open(ctx context.Context) (int, error) {
	total, err := a.reader.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open corpus: %w", err)
	}
	if a.maxRows > 0 && a.maxRows < total {
		total = a.maxRows
	}
	return total, nil
}

// Document reads one row and returns the canonical document. Rows
// missing their text or source URL are rejected with
// domain.ErrInvalidInput and have no side effects.
func (a *Adapter) Document(ctx context.Context, index int) (*domain.Document, error) {
	row, err := a.reader.Row(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("read row %d: %w", index, err)
	}

	text := row[fieldText]
	pdfURL := row[fieldPDFURL]
	if text == "" || pdfURL == "" {
		return nil, fmt.Errorf("row %d missing ocr_text or pdf_url: %w", index, domain.ErrInvalidInput)
	}

	return &domain.Document{
		Kind:         domain.SourceNewspaper,
		Batch:        index/BatchSize + 1,
		Row:          index,
		Text:         text,
		CanonicalURL: pdfURL,
		Title:        orUnknown(row[fieldTitle]),
		IssueDate:    orUnknown(row[fieldDate]),
		Place:        orUnknown(row[fieldPlace]),
		EditionNotes: row[fieldEdition],
	}, nil
}

// orUnknown substitutes the dataset's placeholder for absent
// descriptive fields.
func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
