package runstate

import "time"

// Mode is the kind of reconciliation a run performs.
type Mode string

const (
	// ModeFullAudit reconciles the whole in-scope population.
	ModeFullAudit Mode = "full_audit"
	// ModeIncremental only syncs records changed since the previous run.
	ModeIncremental Mode = "incremental"
)

// AuditInterval is the age of the last full audit after which a run audits again.
const AuditInterval = 24 * time.Hour

// EpochAnchor stands in for a missing audit date, so a first run always audits.
var EpochAnchor = time.Date(2018, 2, 4, 0, 0, 0, 0, time.Local)

// Decide picks the run mode. A full audit is due when forced or when the last
// one is at least AuditInterval old.
func Decide(forceFull bool, lastFullAuditDate, now time.Time) Mode {
	if forceFull || now.Sub(lastFullAuditDate) >= AuditInterval {
		return ModeFullAudit
	}
	return ModeIncremental
}

// ShouldResetAuditDate reports whether a completed full audit moves the audit
// date forward. Unlike Decide the comparison is strict, so a forced audit run
// exactly AuditInterval after the last one keeps the old date.
func ShouldResetAuditDate(lastFullAuditDate, now time.Time) bool {
	return now.Sub(lastFullAuditDate) > AuditInterval
}

// Today returns local midnight of now's day.
func Today(now time.Time) time.Time {
	local := now.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
