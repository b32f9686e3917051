package processor

import (
	"time"

	"github.com/tenderhub/normalizer/internal/lang"
)

// TableStats summarizes one source table's slice of a run.
type TableStats struct {
	Table      string        `json:"table"`
	Fetched    int           `json:"fetched"`
	Normalized int           `json:"normalized"`
	Stubbed    int           `json:"stubbed"`
	Failed     int           `json:"failed"`
	Skipped    bool          `json:"skipped,omitempty"`
	Duration   time.Duration `json:"duration"`
	Error      string        `json:"error,omitempty"`
}

// RunStats summarizes a whole normalization run.
type RunStats struct {
	RunID           string                `json:"run_id"`
	StartedAt       time.Time             `json:"started_at"`
	Elapsed         time.Duration         `json:"elapsed"`
	Tables          map[string]TableStats `json:"tables"`
	TotalFetched    int                   `json:"total_fetched"`
	TotalNormalized int                   `json:"total_normalized"`
	TotalStubbed    int                   `json:"total_stubbed"`
	TotalFailed     int                   `json:"total_failed"`
	Errors          []string              `json:"errors,omitempty"`
	Translation     lang.Snapshot         `json:"translation"`
	Cancelled       bool                  `json:"cancelled,omitempty"`
}

func (r *RunStats) record(ts TableStats) {
	r.Tables[ts.Table] = ts
	r.TotalFetched += ts.Fetched
	r.TotalNormalized += ts.Normalized
	r.TotalStubbed += ts.Stubbed
	r.TotalFailed += ts.Failed
	if ts.Error != "" {
		r.Errors = append(r.Errors, ts.Table+": "+ts.Error)
	}
}
