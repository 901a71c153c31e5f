// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log
// entry so that every line written while serving a request can be correlated.
// WithRun does the same for a sync run, tagging entries with run_id and mode.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
//
//	l := logger.WithRun(log, runID, "full_audit")
//	l.Error("Run failed", zap.Error(err))
package logger
