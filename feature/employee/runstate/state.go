package runstate

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Keys of the persisted run state.
const (
	KeyWeeklyAuditRun       = "WeeklyAuditRun"
	KeyPreviousRun          = "PreviousRun"
	KeyLastError            = "LastError"
	KeyCurrentRunSuccessful = "CurrentRunSuccessful"
	KeyLastRunID            = "LastRunID"
)

const auditDateLayout = "2006-01-02"

// Store persists run state as string values. Get returns "" for unset keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Context is the typed state a run is decided and executed with.
type Context struct {
	// LastFullAuditDate is the local date of the last full audit reset.
	LastFullAuditDate time.Time
	// PreviousRunTimestamp is the start of the last successful run, zero when none.
	PreviousRunTimestamp time.Time
}

// Snapshot is the persisted state as reported to operators.
type Snapshot struct {
	LastFullAuditDate    string `json:"last_full_audit_date"`
	PreviousRun          string `json:"previous_run"`
	CurrentRunSuccessful *bool  `json:"current_run_successful,omitempty"`
	LastError            string `json:"last_error,omitempty"`
	LastRunID            string `json:"last_run_id,omitempty"`
}

// Tracker loads and saves run state at the boundaries of a run.
type Tracker struct {
	store Store
}

// NewTracker creates a tracker over store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Load reads the run context. A missing or unreadable audit date yields
// EpochAnchor and a missing previous run yields the zero time.
func (t *Tracker) Load(ctx context.Context) (Context, error) {
	var rc Context

	audit, err := t.store.Get(ctx, KeyWeeklyAuditRun)
	if err != nil {
		return rc, fmt.Errorf("failed to read %s: %w", KeyWeeklyAuditRun, err)
	}
	rc.LastFullAuditDate = EpochAnchor
	if audit != "" {
		if parsed, err := time.ParseInLocation(auditDateLayout, audit, time.Local); err == nil {
			rc.LastFullAuditDate = parsed
		}
	} else if err := t.store.Set(ctx, KeyWeeklyAuditRun, EpochAnchor.Format(auditDateLayout)); err != nil {
		return rc, fmt.Errorf("failed to initialize %s: %w", KeyWeeklyAuditRun, err)
	}

	previous, err := t.store.Get(ctx, KeyPreviousRun)
	if err != nil {
		return rc, fmt.Errorf("failed to read %s: %w", KeyPreviousRun, err)
	}
	if previous != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, previous); err == nil {
			rc.PreviousRunTimestamp = parsed
		}
	}
	return rc, nil
}

// SaveSuccess records a completed run. The audit date moves to today only
// after a full audit that found it older than AuditInterval.
func (t *Tracker) SaveSuccess(ctx context.Context, rc Context, runID string, mode Mode, started, now time.Time) error {
	if mode == ModeFullAudit && ShouldResetAuditDate(rc.LastFullAuditDate, now) {
		if err := t.store.Set(ctx, KeyWeeklyAuditRun, Today(now).Format(auditDateLayout)); err != nil {
			return fmt.Errorf("failed to save %s: %w", KeyWeeklyAuditRun, err)
		}
	}
	values := []struct{ key, value string }{
		{KeyPreviousRun, started.Format(time.RFC3339Nano)},
		{KeyCurrentRunSuccessful, strconv.FormatBool(true)},
		{KeyLastRunID, runID},
	}
	for _, v := range values {
		if err := t.store.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	if err := t.store.Delete(ctx, KeyLastError); err != nil {
		return fmt.Errorf("failed to clear %s: %w", KeyLastError, err)
	}
	return nil
}

// RecordFailure records a failed run. The audit date and the previous run
// timestamp are left untouched so the next run retries the same window.
func (t *Tracker) RecordFailure(ctx context.Context, runID string, runErr error) error {
	values := []struct{ key, value string }{
		{KeyCurrentRunSuccessful, strconv.FormatBool(false)},
		{KeyLastError, runErr.Error()},
		{KeyLastRunID, runID},
	}
	for _, v := range values {
		if err := t.store.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return nil
}

// Snapshot returns the raw persisted state.
func (t *Tracker) Snapshot(ctx context.Context) (*Snapshot, error) {
	get := func(key string) (string, error) {
		v, err := t.store.Get(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", key, err)
		}
		return v, nil
	}

	var (
		s   Snapshot
		err error
	)
	if s.LastFullAuditDate, err = get(KeyWeeklyAuditRun); err != nil {
		return nil, err
	}
	if s.PreviousRun, err = get(KeyPreviousRun); err != nil {
		return nil, err
	}
	if s.LastError, err = get(KeyLastError); err != nil {
		return nil, err
	}
	if s.LastRunID, err = get(KeyLastRunID); err != nil {
		return nil, err
	}
	success, err := get(KeyCurrentRunSuccessful)
	if err != nil {
		return nil, err
	}
	if success != "" {
		ok, _ := strconv.ParseBool(success)
		s.CurrentRunSuccessful = &ok
	}
	return &s, nil
}
