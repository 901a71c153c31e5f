package report

import (
	"time"

	"employee-sync/core/reconcile"
	"employee-sync/feature/employee/runstate"
)

// Report is the outcome of one sync run.
type Report struct {
	RunID      string            `json:"run_id"`
	Mode       runstate.Mode     `json:"mode"`
	Forced     bool              `json:"forced"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Since      *time.Time        `json:"since,omitempty"`
	Successful bool              `json:"successful"`
	Error      string            `json:"error,omitempty"`
	Summary    reconcile.Summary `json:"summary"`
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
