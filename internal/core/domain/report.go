package domain

// PersistOutcome is the result of persisting a single document.
type PersistOutcome string

const (
	// Written means a new object was stored.
	Written PersistOutcome = "written"

	// Skipped means the key already existed; nothing was fetched or written.
	Skipped PersistOutcome = "skipped"

	// Failed means the document was rejected (empty text, oversize) or
	// the write itself failed.
	Failed PersistOutcome = "failed"
)

// SourceStats accumulates per-source counters over a run.
type SourceStats struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// Record tallies one persist outcome.
func (s *SourceStats) Record(outcome PersistOutcome) {
	switch outcome {
	case Written:
		s.Successful++
	case Skipped:
		s.Skipped++
	case Failed:
		s.Failed++
	}
}

// RunReport is the aggregate result of one collection run. It is
// persisted to the object store as the run's audit trail.
type RunReport struct {
	RunID           string            `json:"run_id"`
	Bills           SourceStats       `json:"congress_bills"`
	Newspapers      SourceStats       `json:"newspapers"`
	TotalItems      int               `json:"total_items"`
	TotalSuccessful int               `json:"total_successful"`
	TotalSkipped    int               `json:"total_skipped"`
	TotalFailed     int               `json:"total_failed"`
	ElapsedSeconds  float64           `json:"elapsed_seconds"`
	Config          map[string]string `json:"config"`
	Timestamp       string            `json:"timestamp"`
	Errors          []string          `json:"errors"`
}

// Totalise recomputes the overall counters from the per-source stats.
func (r *RunReport) Totalise() {
	r.TotalItems = r.Bills.Total + r.Newspapers.Total
	r.TotalSuccessful = r.Bills.Successful + r.Newspapers.Successful
	r.TotalSkipped = r.Bills.Skipped + r.Newspapers.Skipped
	r.TotalFailed = r.Bills.Failed + r.Newspapers.Failed
}

// Clean reports whether every item either succeeded or was skipped.
// The process exit code is derived from this after the full run.
func (r *RunReport) Clean() bool {
	return r.TotalFailed == 0
}
