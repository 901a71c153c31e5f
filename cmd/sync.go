package cmd

import (
	"fmt"

	"employee-sync/feature/employee/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncAll bool

// syncCmd runs one reconciliation.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the directory with DataHub once",
	Long: `Runs one reconciliation of the local employee directory against DataHub.

The mode is chosen from the run state: a full audit when the last one is a day
old or more, otherwise an incremental run over the records changed since the
previous run. A failed run is recorded in the run state and the command still
exits 0; only configuration and connection errors fail the command.

Examples:
  # Let the run state decide
  sync

  # Force a full audit
  sync --all`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Force a full audit")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	rep, err := rt.service.Run(cmd.Context(), syncAll)
	if err != nil {
		return fmt.Errorf("failed to record run state: %w", err)
	}

	printRunReport(rt.logger, rep)
	return nil
}

// printRunReport prints a run report using logger.
func printRunReport(l *zap.Logger, rep *report.Report) {
	s := rep.Summary
	fields := []zap.Field{
		zap.String("run_id", rep.RunID),
		zap.String("mode", string(rep.Mode)),
		zap.Bool("forced", rep.Forced),
		zap.Duration("duration", rep.Duration()),
		zap.Int("external", s.External),
		zap.Int("local_active", s.LocalActive),
		zap.Int("joined", s.Joined),
		zap.Int("terminated", s.Terminated),
		zap.Int("left", s.Left),
		zap.Int("checked", s.Checked),
		zap.Int("updated", s.Updated),
	}

	if !rep.Successful {
		l.Error("Sync run failed", append(fields, zap.String("error", rep.Error))...)
		return
	}
	l.Info("Sync run completed", fields...)
}
