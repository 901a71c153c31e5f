package cmd

import (
	"context"
	"fmt"

	"employee-sync/core/config"
	"employee-sync/core/database"
	"employee-sync/core/logger"
	"employee-sync/core/storage"
	"employee-sync/feature/employee"
	"employee-sync/feature/employee/directory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is what every sync command works with.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	service   *employee.Service
	directory *directory.Store
}

// bootstrap loads the configuration and connects the directory database.
// Storage is optional: a failing client only disables report archiving.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l = l.With(zap.String("table", cfg.Sync.Table))

	deps := employee.Deps{
		DB:     db,
		Source: cfg.Source,
		Sync:   cfg.Sync,
		Logger: l,
	}
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Warn("Storage client unavailable, run reports will not be archived", zap.Error(err))
		} else {
			deps.Storage = client
			deps.StorageBucket = cfg.Storage.Bucket
			deps.StorageRegion = cfg.Storage.Region
		}
	}

	svc, dir, err := employee.Build(ctx, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync service: %w", err)
	}

	return &runtime{cfg: cfg, logger: l, db: db, service: svc, directory: dir}, nil
}

// close releases the database pool and flushes the logger.
func (r *runtime) close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = r.logger.Sync()
}
