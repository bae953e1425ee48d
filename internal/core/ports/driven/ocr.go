package driven

import "context"

// JobStatus is the state of an asynchronous OCR job.
type JobStatus string

const (
	// JobInProgress means the job has not reached a terminal state.
	JobInProgress JobStatus = "IN_PROGRESS"

	// JobSucceeded means results are ready to drain.
	JobSucceeded JobStatus = "SUCCEEDED"

	// JobFailed means the backend could not process the document.
	JobFailed JobStatus = "FAILED"
)

// DetectionPage is one page of asynchronous OCR results. Results are
// paginated; a non-empty NextToken means more lines follow.
type DetectionPage struct {
	Status        JobStatus
	StatusMessage string
	Lines         []string
	NextToken     string
}

// OCRBackend is the text detection service. Implementations classify
// backend failures into the domain sentinel errors so the extraction
// selector can decide between fallback and give-up:
// domain.ErrUnsupportedDocument for documents the synchronous call
// cannot handle as a single unit, domain.ErrCorruptDocument for
// structurally broken input.
type OCRBackend interface {
	// DetectSync submits bytes for immediate detection and returns the
	// line fragments in reported order.
	DetectSync(ctx context.Context, data []byte) ([]string, error)

	// StartDetection starts an asynchronous job over an object already
	// staged in the durable store, returning the job ID.
	StartDetection(ctx context.Context, storageKey string) (string, error)

	// DetectionPage fetches one page of job results. Pass an empty
	// token for the first page.
	DetectionPage(ctx context.Context, jobID, nextToken string) (*DetectionPage, error)
}
