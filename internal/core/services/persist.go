package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/logger"
)

// Persister writes documents to the object store under their
// deterministic keys. Existence at the key is the sole de-duplication
// mechanism: re-running a whole collection after a partial failure is
// safe and cheap.
type Persister struct {
	store driven.ObjectStore
}

// NewPersister creates a persister over an object store.
func NewPersister(store driven.ObjectStore) *Persister {
	return &Persister{store: store}
}

// Exists reports whether the document's key is already present.
// Callers use this to skip an item before fetching its text.
func (p *Persister) Exists(ctx context.Context, doc *domain.Document) (bool, error) {
	return p.store.Exists(ctx, doc.Key())
}

// Persist writes one document, or skips it if its key already exists.
// Documents with no text or an oversize body are rejected before any
// write attempt.
func (p *Persister) Persist(ctx context.Context, doc *domain.Document) (domain.PersistOutcome, error) {
	if doc.Text == "" {
		return domain.Failed, fmt.Errorf("%s: no text: %w", doc.Key(), domain.ErrNoText)
	}

	body := doc.Body()
	if len(body) > domain.MaxObjectBytes {
		return domain.Failed, fmt.Errorf("%s: body is %d bytes: %w", doc.Key(), len(body), domain.ErrTooLarge)
	}

	key := doc.Key()
	exists, err := p.store.Exists(ctx, key)
	if err != nil {
		return domain.Failed, fmt.Errorf("check %s: %w", key, err)
	}
	if exists {
		logger.Debug("%s: already present, skipping", key)
		return domain.Skipped, nil
	}

	if err := p.store.Put(ctx, key, body, "text/plain", doc.Metadata()); err != nil {
		return domain.Failed, fmt.Errorf("write %s: %w", key, err)
	}

	logger.Debug("%s: written (%d bytes)", key, len(body))
	return domain.Written, nil
}
