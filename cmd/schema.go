package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// schemaCmd checks the directory table.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the directory table against the field mapping",
	Long:  `Lists the mapped columns the directory table has, the ones it lacks (skipped during sync) and any required column that is missing. Outputs a summary by default or the full report with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		rep, err := rt.service.CheckSchema(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to check schema: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		rt.logger.Info("Schema report",
			zap.String("table", rep.Table),
			zap.Bool("matched", rep.Matched),
			zap.Int("present", len(rep.Present)),
			zap.Strings("missing", rep.Missing),
			zap.Strings("missing_required", rep.MissingRequired),
			zap.Strings("type_mismatches", rep.TypeMismatches),
		)
		if !rep.Matched {
			return fmt.Errorf("table %s misses required columns %v", rep.Table, rep.MissingRequired)
		}
		return nil
	},
}

func init() {
	schemaCmd.Flags().Bool("json", false, "Output the full report as JSON")
	RootCmd.AddCommand(schemaCmd)
}
