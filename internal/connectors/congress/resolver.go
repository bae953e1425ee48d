package congress

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/logger"
)

// TextExtractor runs OCR over raw document bytes. Implemented by the
// extraction strategy selector.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, docID string) (string, error)
}

// Ensure Resolver implements the interface.
var _ driven.LegislativeSource = (*Resolver)(nil)

// Resolver turns bill identities into full text. Plain text formats
// are preferred; scanned PDFs go through the extractor.
type Resolver struct {
	client    *Client
	extractor TextExtractor
}

// NewResolver creates a resolver over an API client and an extractor.
func NewResolver(client *Client, extractor TextExtractor) *Resolver {
	return &Resolver{client: client, extractor: extractor}
}

// ListBills returns the bill summaries for one congress and bill type.
func (r *Resolver) ListBills(ctx context.Context, congress int, billType string) ([]driven.BillSummary, error) {
	return r.client.ListBills(ctx, congress, billType)
}

// ResolveText returns a bill's full text and the URL of the
// representation it came from. A bill with no digitized text returns
// empty strings with a nil error; that is an expected outcome for
// historical material, not a failure.
func (r *Resolver) ResolveText(ctx context.Context, congress int, billType, number string) (string, string, error) {
	versions, err := r.client.TextVersions(ctx, congress, billType, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("congress %d %s %s: no text available upstream", congress, billType, number)
			return "", "", nil
		}
		return "", "", fmt.Errorf("resolve text: %w", err)
	}
	if len(versions) == 0 {
		logger.Debug("congress %d %s %s: no text versions", congress, billType, number)
		return "", "", nil
	}

	// The first version is the latest published rendition.
	formats := versions[0].Formats
	if len(formats) == 0 {
		logger.Debug("congress %d %s %s: no formats on latest version", congress, billType, number)
		return "", "", nil
	}

	if text, docURL := r.tryPlainText(ctx, formats); text != "" {
		return text, docURL, nil
	}

	docID := fmt.Sprintf("congress_%d_%s_%s", congress, billType, number)
	if text, docURL := r.tryPDF(ctx, formats, docID); text != "" {
		return text, docURL, nil
	}

	logger.Debug("%s: no usable text format", docID)
	return "", "", nil
}

// tryPlainText downloads plain text formats in order, skipping any
// whose body turns out to be an HTML error page.
func (r *Resolver) tryPlainText(ctx context.Context, formats []TextFormat) (string, string) {
	for _, f := range formats {
		if f.Type != FormatPlainText {
			continue
		}
		body, err := r.client.Download(ctx, f.URL)
		if err != nil {
			logger.Warn("plain text download failed: %v", err)
			continue
		}
		text := string(body)
		if containsHTML(text) {
			logger.Warn("plain text at %s is actually HTML, skipping", f.URL)
			continue
		}
		if text != "" {
			return text, f.URL
		}
	}
	return "", ""
}

// tryPDF downloads the first PDF format and runs it through OCR. A
// nil extractor disables the PDF path entirely.
func (r *Resolver) tryPDF(ctx context.Context, formats []TextFormat, docID string) (string, string) {
	if r.extractor == nil {
		logger.Debug("%s: no extractor configured, skipping pdf formats", docID)
		return "", ""
	}
	for _, f := range formats {
		if f.Type != FormatPDF {
			continue
		}
		body, err := r.client.Download(ctx, f.URL)
		if err != nil {
			logger.Warn("%s: pdf download failed: %v", docID, err)
			return "", ""
		}
		text, err := r.extractor.Extract(ctx, body, docID)
		if err != nil {
			logger.Warn("%s: extraction failed: %v", docID, err)
			return "", ""
		}
		return text, f.URL
	}
	return "", ""
}

// containsHTML detects document hosts serving an HTML error page in
// place of the advertised plain text.
func containsHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}
