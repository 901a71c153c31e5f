package employee

import (
	"context"
	"fmt"
	"sort"

	"employee-sync/feature/employee/mapping"
	"employee-sync/feature/employee/models"
)

// SchemaReport compares the directory table with the mapped fields.
type SchemaReport struct {
	Table string `json:"table"`
	// Matched is false when a required column is missing.
	Matched bool `json:"matched"`
	// Present lists mapped columns the table has; they are kept in sync.
	Present []string `json:"present"`
	// Missing lists mapped columns the table lacks; they are skipped.
	Missing []string `json:"missing"`
	// MissingRequired lists columns reconciliation cannot work without.
	MissingRequired []string `json:"missing_required"`
	// TypeMismatches lists instant fields stored in non-temporal columns.
	TypeMismatches []string `json:"type_mismatches"`
}

var requiredColumns = []string{models.FieldTitle, models.FieldStatus}

// CheckSchema inspects the directory table against the field table.
func (s *Service) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	if s.schema == nil {
		return nil, fmt.Errorf("directory schema source is not configured")
	}
	cols, err := s.schema.Columns(ctx)
	if err != nil {
		return nil, err
	}

	report := &SchemaReport{
		Table:           s.schema.Table(),
		Matched:         true,
		Present:         []string{},
		Missing:         []string{},
		MissingRequired: []string{},
		TypeMismatches:  []string{},
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			report.MissingRequired = append(report.MissingRequired, name)
			report.Matched = false
		}
	}

	for _, d := range mapping.Descriptors() {
		col, ok := cols[d.Target]
		if !ok {
			report.Missing = append(report.Missing, d.Target)
			continue
		}
		report.Present = append(report.Present, d.Target)
		if d.Kind == mapping.KindTime && !col.IsTemporal() {
			report.TypeMismatches = append(report.TypeMismatches, fmt.Sprintf("%s: expected a date/time column, found %s", d.Target, col.Type))
		}
	}

	sort.Strings(report.Present)
	sort.Strings(report.Missing)
	return report, nil
}
