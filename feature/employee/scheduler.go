package employee

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Schedule triggers an incremental-or-audit run every interval until ctx is
// done. Runs never overlap; a tick that fires during a run joins it.
func (s *Service) Schedule(ctx context.Context, interval time.Duration, runOnStart bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if runOnStart {
		s.scheduledRun(ctx)
	}
	s.setNextRun(s.now().Add(interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.scheduledRun(ctx)
			s.setNextRun(s.now().Add(interval))
		}
	}
}

func (s *Service) scheduledRun(ctx context.Context) {
	rep, shared, err := s.Trigger(ctx, false)
	if err != nil {
		s.logger.Error("Scheduled run could not record its state", zap.Error(err))
		return
	}
	if shared {
		s.logger.Debug("Scheduled run joined an in-flight run", zap.String("run_id", rep.RunID))
	}
}
