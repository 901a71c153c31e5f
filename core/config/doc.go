// Package config loads the employee-sync configuration.
//
// Values come from environment variables, optionally seeded from a .env file.
// Defaults are declared with `default:"..."` struct tags next to the
// `mapstructure` key, and nested keys map to upper-case env names with
// underscores (sync.interval_minutes -> SYNC_INTERVAL_MINUTES).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and shutdown budget
//   - Log: level and encoding
//   - Database: directory database driver and connection
//   - Storage: MinIO settings of the run report archive
//   - Source: DataHub endpoint, credentials and retry policy
//   - Sync: directory table, scope filters and scheduler settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Table)
package config
