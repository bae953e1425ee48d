package driving

import (
	"context"

	"github.com/custodia-labs/histora/internal/core/domain"
)

// Collector runs the full collection pipeline: legislative phase,
// corpus phase, summary write, then the sequential reindex trigger.
type Collector interface {
	// Run executes the pipeline to completion and returns the aggregate
	// report. Per-item failures are recorded in the report, never
	// propagated; the only fatal error is the bulk corpus failing to
	// open at all.
	Run(ctx context.Context) (*domain.RunReport, error)
}
