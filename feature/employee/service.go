package employee

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"employee-sync/core/database"
	"employee-sync/core/logger"
	"employee-sync/core/reconcile"
	"employee-sync/feature/employee/report"
	"employee-sync/feature/employee/runstate"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner executes the two kinds of reconciliation.
type Runner interface {
	FullAudit(ctx context.Context) (*reconcile.Summary, error)
	Incremental(ctx context.Context, since time.Time) (*reconcile.Summary, error)
}

// SchemaSource exposes the directory table schema.
type SchemaSource interface {
	Table() string
	Columns(ctx context.Context) (map[string]database.ColumnInfo, error)
}

// Archiver keeps run reports outside the process.
type Archiver interface {
	Archive(ctx context.Context, r *report.Report) error
	Latest(ctx context.Context) (*report.Report, error)
}

// Status is the operator view of the sync.
type Status struct {
	Running   bool               `json:"running"`
	State     *runstate.Snapshot `json:"state"`
	LastRun   *report.Report     `json:"last_run,omitempty"`
	NextRunAt *time.Time         `json:"next_run_at,omitempty"`
}

// Service coordinates sync runs.
type Service struct {
	runner   Runner
	tracker  *runstate.Tracker
	schema   SchemaSource
	archiver Archiver
	logger   *zap.Logger

	now   func() time.Time
	newID func() string

	group   singleflight.Group
	running atomic.Bool

	mu      sync.RWMutex
	lastRun *report.Report
	nextRun time.Time
}

// NewService creates a coordinator. archiver may be nil.
func NewService(runner Runner, tracker *runstate.Tracker, schema SchemaSource, archiver Archiver, logger *zap.Logger) *Service {
	return &Service{
		runner:   runner,
		tracker:  tracker,
		schema:   schema,
		archiver: archiver,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run performs one sync run. A reconciliation failure is recorded in the run
// state and the returned report; the error result is reserved for failures
// to read or write the run state itself.
func (s *Service) Run(ctx context.Context, forceFull bool) (*report.Report, error) {
	rc, err := s.tracker.Load(ctx)
	if err != nil {
		return nil, err
	}

	started := s.now()
	rep := &report.Report{
		RunID:     s.newID(),
		Mode:      runstate.Decide(forceFull, rc.LastFullAuditDate, started),
		Forced:    forceFull,
		StartedAt: started,
	}
	l := logger.WithRun(s.logger, rep.RunID, string(rep.Mode))
	l.Info("Starting sync run",
		zap.Time("last_full_audit", rc.LastFullAuditDate),
		zap.Time("previous_run", rc.PreviousRunTimestamp))

	var (
		summary *reconcile.Summary
		runErr  error
	)
	switch rep.Mode {
	case runstate.ModeFullAudit:
		summary, runErr = s.runner.FullAudit(ctx)
	default:
		since := rc.PreviousRunTimestamp
		rep.Since = &since
		summary, runErr = s.runner.Incremental(ctx, since)
	}
	if summary != nil {
		rep.Summary = *summary
	}
	rep.FinishedAt = s.now()

	if runErr != nil {
		rep.Error = runErr.Error()
		l.Error("Sync run failed", zap.Error(runErr), zap.Int("writes", rep.Summary.Writes()))
		if err := s.tracker.RecordFailure(ctx, rep.RunID, runErr); err != nil {
			return rep, err
		}
	} else {
		rep.Successful = true
		if err := s.tracker.SaveSuccess(ctx, rc, rep.RunID, rep.Mode, started, rep.FinishedAt); err != nil {
			return rep, err
		}
		l.Info("Sync run completed",
			zap.Int("external", rep.Summary.External),
			zap.Int("joined", rep.Summary.Joined),
			zap.Int("terminated", rep.Summary.Terminated),
			zap.Int("left", rep.Summary.Left),
			zap.Int("checked", rep.Summary.Checked),
			zap.Int("updated", rep.Summary.Updated),
			zap.Duration("duration", rep.Duration()))
	}

	s.mu.Lock()
	s.lastRun = rep
	s.mu.Unlock()

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, rep); err != nil {
			l.Warn("Failed to archive run report", zap.Error(err))
		}
	}
	return rep, nil
}

// Trigger runs a sync unless one is already in flight, in which case the
// caller waits for and shares that run's report. shared reports the latter.
// The run is detached from ctx cancellation so a departing caller cannot
// abort a run others are waiting on.
func (s *Service) Trigger(ctx context.Context, forceFull bool) (rep *report.Report, shared bool, err error) {
	v, err, shared := s.group.Do("run", func() (interface{}, error) {
		s.running.Store(true)
		defer s.running.Store(false)
		return s.Run(context.WithoutCancel(ctx), forceFull)
	})
	if v != nil {
		rep = v.(*report.Report)
	}
	return rep, shared, err
}

// Running reports whether a triggered run is in flight.
func (s *Service) Running() bool {
	return s.running.Load()
}

// Status returns the persisted state and the latest report.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	snap, err := s.tracker.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	last := s.lastRun
	next := s.nextRun
	s.mu.RUnlock()

	if last == nil && s.archiver != nil {
		if archived, err := s.archiver.Latest(ctx); err != nil {
			s.logger.Warn("Failed to load archived run report", zap.Error(err))
		} else {
			last = archived
		}
	}

	status := &Status{Running: s.Running(), State: snap, LastRun: last}
	if !next.IsZero() {
		status.NextRunAt = &next
	}
	return status, nil
}

func (s *Service) setNextRun(t time.Time) {
	s.mu.Lock()
	s.nextRun = t
	s.mu.Unlock()
}
