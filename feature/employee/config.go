package employee

import (
	"strings"
	"time"

	"employee-sync/core/filter"
)

// Config holds the sync settings.
type Config struct {
	// Table is the local directory table.
	Table string `mapstructure:"table" default:"Employees"`
	// KeyColumn is the row key column of Table.
	KeyColumn string `mapstructure:"key_column" default:"ID"`
	// StateTable holds the run state between runs.
	StateTable string `mapstructure:"state_table" default:"run_state"`
	// Scope selects the in-scope population, as filters joined by '&'.
	Scope string `mapstructure:"scope" default:"department.functionCode=060"`
	// IntervalMinutes is the scheduler period of the start command.
	IntervalMinutes int `mapstructure:"interval_minutes" default:"60"`
	// RunOnStart triggers a run as soon as the scheduler starts.
	RunOnStart bool `mapstructure:"run_on_start" default:"true"`
	// SchemaCacheSeconds is how long the directory column set is cached.
	SchemaCacheSeconds int `mapstructure:"schema_cache_seconds" default:"300"`
	// ReportPrefix is the object prefix of archived run reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
	// ReportRetention is the number of archived reports kept, 0 keeps all.
	ReportRetention int `mapstructure:"report_retention" default:"30"`
}

// ScopeFilters parses Scope.
func (c Config) ScopeFilters() ([]filter.Expression, error) {
	var raws []string
	for _, part := range strings.Split(c.Scope, "&") {
		if part = strings.TrimSpace(part); part != "" {
			raws = append(raws, part)
		}
	}
	return filter.ParseAll(raws)
}

// Interval returns the scheduler period.
func (c Config) Interval() time.Duration {
	if c.IntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// SchemaTTL returns the schema cache lifetime.
func (c Config) SchemaTTL() time.Duration {
	return time.Duration(c.SchemaCacheSeconds) * time.Second
}
