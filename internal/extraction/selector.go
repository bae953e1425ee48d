// Package extraction chooses and executes an OCR strategy for scanned
// documents: no extraction when the download is degenerate, a single
// synchronous call for small single-page files, and an asynchronous
// staged job for everything else.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/logger"
	"github.com/custodia-labs/histora/internal/poll"
)

const (
	// minFileBytes rejects near-zero downloads, which are almost always
	// truncated or empty responses.
	minFileBytes = 1024

	// smallFileBytes is the synchronous API's document size ceiling.
	smallFileBytes = 5 * 1024 * 1024

	// maxFileBytes is the OCR backend's hard ceiling.
	maxFileBytes = 500 * 1024 * 1024

	// stagingPrefix is where documents are staged for asynchronous
	// jobs. The async API reads from the store, not inline bytes.
	stagingPrefix = "temp/textract/"
)

var pdfMagic = []byte("%PDF")

// Config holds the selector's delays and polling bounds.
type Config struct {
	// SyncDelay is the minimum pause after a synchronous call
	// (1 TPS budget).
	SyncDelay time.Duration

	// AsyncDelay is the minimum pause after a successful asynchronous
	// job (2 TPS budget).
	AsyncDelay time.Duration

	// PollInterval is the asynchronous job polling interval.
	PollInterval time.Duration

	// PollCeiling is the asynchronous job wall-clock ceiling.
	PollCeiling time.Duration
}

// DefaultConfig returns the production delays and bounds.
func DefaultConfig() Config {
	return Config{
		SyncDelay:    time.Second,
		AsyncDelay:   500 * time.Millisecond,
		PollInterval: 10 * time.Second,
		PollCeiling:  10 * time.Minute,
	}
}

// Selector routes documents to the cheapest viable extraction path.
type Selector struct {
	backend driven.OCRBackend
	store   driven.ObjectStore
	clock   poll.Clock
	cfg     Config
}

// NewSelector creates a strategy selector. A nil clock uses real time.
func NewSelector(backend driven.OCRBackend, store driven.ObjectStore, clock poll.Clock, cfg Config) *Selector {
	if clock == nil {
		clock = poll.SystemClock{}
	}
	return &Selector{backend: backend, store: store, clock: clock, cfg: cfg}
}

// Extract returns the text of a scanned document, or "" when no text
// is obtainable. Expected failure modes (wrong format, degenerate or
// oversize bodies, backend failure, job timeout) never return an
// error; only context cancellation does.
func (s *Selector) Extract(ctx context.Context, data []byte, docID string) (string, error) {
	n := len(data)

	if n < minFileBytes {
		logger.Warn("%s: file too small (%d bytes), likely empty or corrupted", docID, n)
		return "", nil
	}
	if n > maxFileBytes {
		logger.Warn("%s: file too large for OCR (%d bytes)", docID, n)
		return "", nil
	}
	if !isPDF(data) {
		if looksLikeHTML(data) {
			logger.Warn("%s: body is HTML, not PDF (server error page?)", docID)
		} else {
			logger.Warn("%s: not a valid PDF (bad signature)", docID)
		}
		return "", nil
	}

	if n <= smallFileBytes {
		text, err := s.detectSync(ctx, docID, data)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnsupportedDocument):
				logger.Debug("%s: sync detection unsupported (multi-page?), retrying async", docID)
			case errors.Is(err, domain.ErrCorruptDocument):
				logger.Warn("%s: document corrupt or wrong format", docID)
				return "", nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return "", err
			default:
				logger.Warn("%s: sync detection failed: %v", docID, err)
				return "", nil
			}
		} else if text != "" {
			return text, nil
		} else {
			// Zero fragments from a valid call; treat like unsupported
			// and let the async path have a go.
			logger.Debug("%s: sync detection returned no text, retrying async", docID)
		}
	}

	return s.detectAsync(ctx, docID, data)
}

// detectSync runs the single-call path and enforces the sync rate delay.
func (s *Selector) detectSync(ctx context.Context, docID string, data []byte) (string, error) {
	lines, err := s.backend.DetectSync(ctx, data)
	if err != nil {
		return "", err
	}
	if err := s.clock.Sleep(ctx, s.cfg.SyncDelay); err != nil {
		return "", err
	}
	text := strings.Join(lines, "\n")
	logger.Debug("%s: extracted %d characters (sync)", docID, len(text))
	return text, nil
}

// detectAsync stages the document, runs an asynchronous job, polls it
// to a terminal state, and drains the paginated results. The staged
// object is always deleted, including on failure and timeout.
func (s *Selector) detectAsync(ctx context.Context, docID string, data []byte) (string, error) {
	key := stagingPrefix + docID + ".pdf"
	if err := s.store.Put(ctx, key, data, "application/pdf", nil); err != nil {
		logger.Warn("%s: staging upload failed: %v", docID, err)
		return "", nil
	}
	defer s.cleanup(key)

	jobID, err := s.backend.StartDetection(ctx, key)
	if err != nil {
		logger.Warn("%s: start detection job failed: %v", docID, err)
		return "", nil
	}
	logger.Debug("%s: detection job started: %s", docID, jobID)

	var terminal *driven.DetectionPage
	err = poll.Until(ctx, s.clock, s.cfg.PollInterval, s.cfg.PollCeiling,
		func(ctx context.Context) (bool, error) {
			page, err := s.backend.DetectionPage(ctx, jobID, "")
			if err != nil {
				return false, err
			}
			if page.Status == driven.JobInProgress {
				return false, nil
			}
			terminal = page
			return true, nil
		})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		if errors.Is(err, domain.ErrTimeout) {
			logger.Warn("%s: detection job timed out after %s", docID, s.cfg.PollCeiling)
		} else {
			logger.Warn("%s: detection job polling failed: %v", docID, err)
		}
		return "", nil
	}

	if terminal.Status == driven.JobFailed {
		logger.Warn("%s: detection job failed: %s", docID, terminal.StatusMessage)
		return "", nil
	}

	lines := terminal.Lines
	for token := terminal.NextToken; token != ""; {
		page, err := s.backend.DetectionPage(ctx, jobID, token)
		if err != nil {
			logger.Warn("%s: draining detection results failed: %v", docID, err)
			return "", nil
		}
		lines = append(lines, page.Lines...)
		token = page.NextToken
	}

	if err := s.clock.Sleep(ctx, s.cfg.AsyncDelay); err != nil {
		return "", err
	}

	text := strings.Join(lines, "\n")
	logger.Debug("%s: extracted %d characters (async)", docID, len(text))
	return text, nil
}

// cleanup deletes a staged object, logging but not propagating errors.
func (s *Selector) cleanup(key string) {
	if err := s.store.Delete(context.Background(), key); err != nil {
		logger.Warn("cleanup of %s failed: %v", key, err)
	}
}

// isPDF checks the structural signature.
func isPDF(data []byte) bool {
	return len(data) >= len(pdfMagic) && bytes.Equal(data[:len(pdfMagic)], pdfMagic)
}

// looksLikeHTML detects servers returning an error page instead of
// the expected binary.
func looksLikeHTML(data []byte) bool {
	head := data
	if len(head) > 15 {
		head = head[:15]
	}
	lower := strings.ToLower(string(head))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}
