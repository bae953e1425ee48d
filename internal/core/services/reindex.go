package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/histora/internal/core/domain"
	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/logger"
	"github.com/custodia-labs/histora/internal/poll"
)

// ReindexConfig holds the sync job polling bounds.
type ReindexConfig struct {
	// PollInterval is the job status polling interval.
	PollInterval time.Duration

	// PollCeiling is the per-collection wall-clock ceiling.
	PollCeiling time.Duration
}

// DefaultReindexConfig returns the production polling bounds.
func DefaultReindexConfig() ReindexConfig {
	return ReindexConfig{
		PollInterval: 30 * time.Second,
		PollCeiling:  2 * time.Hour,
	}
}

// Reindexer drives the downstream index's sync jobs, one collection
// at a time. Collections are synced strictly sequentially; the
// indexing backend does not tolerate concurrent ingestion jobs.
type Reindexer struct {
	index driven.SemanticIndex
	clock poll.Clock
	cfg   ReindexConfig
}

// NewReindexer creates a reindexer. A nil clock uses real time.
func NewReindexer(index driven.SemanticIndex, clock poll.Clock, cfg ReindexConfig) *Reindexer {
	if clock == nil {
		clock = poll.SystemClock{}
	}
	return &Reindexer{index: index, clock: clock, cfg: cfg}
}

// Reindex syncs every collection in turn. A failure or timeout on one
// collection is logged and does not block the next; only context
// cancellation and a failed collection enumeration are returned.
func (r *Reindexer) Reindex(ctx context.Context) error {
	collections, err := r.index.Collections(ctx)
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}

	logger.Section("Reindexing %d collections", len(collections))

	for _, col := range collections {
		if err := r.syncCollection(ctx, col); err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Error("collection %s (%s): %v", col.Name, col.ID, err)
		}
	}
	return nil
}

// syncCollection starts one collection's sync job and polls it to a
// terminal state.
func (r *Reindexer) syncCollection(ctx context.Context, col driven.IndexCollection) error {
	logger.Info("syncing collection %s (%s)", col.Name, col.ID)

	jobID, err := r.index.StartSync(ctx, col.ID)
	if err != nil {
		return fmt.Errorf("start sync: %w", err)
	}
	logger.Debug("collection %s: job %s started", col.ID, jobID)

	var final driven.IndexJobStatus
	err = poll.Until(ctx, r.clock, r.cfg.PollInterval, r.cfg.PollCeiling,
		func(ctx context.Context) (bool, error) {
			status, err := r.index.SyncStatus(ctx, col.ID, jobID)
			if err != nil {
				return false, err
			}
			if status == driven.IndexJobInProgress {
				return false, nil
			}
			final = status
			return true, nil
		})
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			return fmt.Errorf("job %s did not finish within %s: %w", jobID, r.cfg.PollCeiling, err)
		}
		return fmt.Errorf("poll job %s: %w", jobID, err)
	}

	if final == driven.IndexJobFailed {
		return fmt.Errorf("job %s: %w", jobID, domain.ErrIndexUnavailable)
	}

	logger.Info("collection %s synced", col.Name)
	return nil
}
