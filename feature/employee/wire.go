package employee

import (
	"context"
	"fmt"

	"employee-sync/core/database"
	"employee-sync/core/storage"
	"employee-sync/feature/employee/datahub"
	"employee-sync/feature/employee/directory"
	"employee-sync/feature/employee/mapping"
	"employee-sync/feature/employee/reconcile"
	"employee-sync/feature/employee/report"
	"employee-sync/feature/employee/runstate"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the connections a service is built from.
type Deps struct {
	DB     *gorm.DB
	Source datahub.Config
	Sync   Config
	// Storage is optional; without it run reports are only logged.
	Storage       storage.Client
	StorageBucket string
	StorageRegion string
	Logger        *zap.Logger
}

// Build wires the record source, directory store, run state and report
// archive into a service, creating the run state table when needed.
func Build(ctx context.Context, deps Deps) (*Service, *directory.Store, error) {
	if deps.DB == nil {
		return nil, nil, fmt.Errorf("database connection is nil")
	}

	scope, err := deps.Sync.ScopeFilters()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sync scope: %w", err)
	}

	source, err := datahub.NewClient(deps.Source, deps.Logger)
	if err != nil {
		return nil, nil, err
	}

	store := directory.NewStore(deps.DB, deps.Sync.Table, deps.Sync.KeyColumn, database.NewSchemaCache(deps.Sync.SchemaTTL()))
	mapper := mapping.NewMapper(store, deps.Logger)
	reconciler := reconcile.New(source, store, mapper, scope, deps.Logger)

	stateStore := runstate.NewGormStore(deps.DB, deps.Sync.StateTable)
	if err := stateStore.EnsureSchema(ctx); err != nil {
		return nil, nil, err
	}

	var archiver Archiver
	if deps.Storage != nil {
		archiver = report.NewArchiver(deps.Storage, deps.StorageBucket, deps.StorageRegion, deps.Sync.ReportPrefix, deps.Sync.ReportRetention, deps.Logger)
	}

	return NewService(reconciler, runstate.NewTracker(stateStore), store, archiver, deps.Logger), store, nil
}
