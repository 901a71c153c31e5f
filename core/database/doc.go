// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and
// tests) connections from the application's configuration.
//
// # Schema Inspection
//
// The directory table is schema tolerant: a mapped field is only written when
// a column of that name exists. GetTableColumns reads the live column list and
// SchemaCache keeps it for a TTL so that the per-field existence checks made
// during a sync run do not each hit the database.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	cache := database.NewSchemaCache(time.Minute)
//	cols, err := cache.Columns(ctx, db, "Employees")
package database
