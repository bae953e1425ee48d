package driven

import "context"

// IndexJobStatus is the state of a semantic index sync job.
type IndexJobStatus string

const (
	// IndexJobInProgress means the sync has not reached a terminal state.
	IndexJobInProgress IndexJobStatus = "IN_PROGRESS"

	// IndexJobComplete means the collection finished ingesting.
	IndexJobComplete IndexJobStatus = "COMPLETE"

	// IndexJobFailed means the sync failed.
	IndexJobFailed IndexJobStatus = "FAILED"
)

// IndexCollection is one indexed collection (downstream data source).
type IndexCollection struct {
	ID   string
	Name string
}

// SemanticIndex is the downstream retrieval index. The pipeline only
// enumerates collections and drives their sync jobs; indexing itself
// is external.
type SemanticIndex interface {
	// Collections lists the indexed collections.
	Collections(ctx context.Context) ([]IndexCollection, error)

	// StartSync starts an ingestion job for one collection and returns
	// the job ID.
	StartSync(ctx context.Context, collectionID string) (string, error)

	// SyncStatus reports the state of a previously started job.
	SyncStatus(ctx context.Context, collectionID, jobID string) (IndexJobStatus, error)
}
