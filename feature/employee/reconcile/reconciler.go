package reconcile

import (
	"context"
	"fmt"
	"time"

	"employee-sync/core/filter"
	"employee-sync/core/reconcile"
	"employee-sync/feature/employee/models"

	"go.uber.org/zap"
)

// employeeIDField is the source attribute holding the employee id.
const employeeIDField = "employeeId"

// RecordSource is the authoritative personnel record source.
type RecordSource interface {
	// QueryAll returns every record matching all filters.
	QueryAll(ctx context.Context, filters []filter.Expression) ([]models.ExternalRecord, error)
	// QueryIDs returns the ids of the records matching all filters.
	QueryIDs(ctx context.Context, filters []filter.Expression) ([]string, error)
}

// LocalStore is the local directory table.
type LocalStore interface {
	ListAll(ctx context.Context) ([]*models.LocalRecord, error)
	Update(ctx context.Context, record *models.LocalRecord) error
}

// FieldSyncer copies external attributes onto local rows.
type FieldSyncer interface {
	SyncFields(ctx context.Context, local *models.LocalRecord, external *models.ExternalRecord) (bool, error)
	CreateFromExternal(ctx context.Context, external *models.ExternalRecord) (*models.LocalRecord, error)
}

// Reconciler applies joins, departures and field changes from the record
// source to the local directory.
type Reconciler struct {
	source RecordSource
	store  LocalStore
	fields FieldSyncer
	scope  []filter.Expression
	logger *zap.Logger
}

// New creates a reconciler. scope selects the in-scope population and is
// added to every population query.
func New(source RecordSource, store LocalStore, fields FieldSyncer, scope []filter.Expression, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		source: source,
		store:  store,
		fields: fields,
		scope:  filter.With(scope),
		logger: logger,
	}
}

// FullAudit reconciles the whole in-scope population: join/leave, then a
// field sync of every matched record.
func (r *Reconciler) FullAudit(ctx context.Context) (*reconcile.Summary, error) {
	external, err := r.source.QueryAll(ctx, r.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query in-scope records: %w", err)
	}

	ids := make([]string, 0, len(external))
	for _, rec := range external {
		ids = append(ids, rec.EmployeeID)
	}

	active, err := r.ActiveRecords(ctx)
	if err != nil {
		return nil, err
	}

	summary := &reconcile.Summary{}
	if err := r.JoinedOrLeft(ctx, ids, active, summary); err != nil {
		return summary, err
	}
	if err := r.syncMatched(ctx, external, active, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// Incremental reconciles join/leave against the in-scope id list, then syncs
// the records whose attribute families changed at or after since.
func (r *Reconciler) Incremental(ctx context.Context, since time.Time) (*reconcile.Summary, error) {
	ids, err := r.source.QueryIDs(ctx, r.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to query in-scope ids: %w", err)
	}

	active, err := r.ActiveRecords(ctx)
	if err != nil {
		return nil, err
	}

	summary := &reconcile.Summary{}
	if err := r.JoinedOrLeft(ctx, ids, active, summary); err != nil {
		return summary, err
	}

	changed, err := r.ChangedSince(ctx, since)
	if err != nil {
		return summary, err
	}
	if err := r.syncMatched(ctx, changed, active, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// ChangedSince queries every family for in-scope records updated at or after
// since and returns their union, one record per employee id.
func (r *Reconciler) ChangedSince(ctx context.Context, since time.Time) ([]models.ExternalRecord, error) {
	groups := make([][]models.ExternalRecord, 0, len(Families))
	for _, family := range Families {
		changedFilter, err := filter.SinceTime(family.Field(), since)
		if err != nil {
			return nil, err
		}
		records, err := r.source.QueryAll(ctx, filter.With(r.scope, changedFilter))
		if err != nil {
			return nil, fmt.Errorf("failed to query %s changes: %w", family, err)
		}
		r.logger.Debug("Queried family changes",
			zap.String("family", string(family)),
			zap.Int("records", len(records)))
		groups = append(groups, records)
	}

	return reconcile.UnionBy(func(rec models.ExternalRecord) string { return rec.EmployeeID }, groups...), nil
}

// ActiveRecords returns the local records that are neither terminated nor left.
func (r *Reconciler) ActiveRecords(ctx context.Context) ([]*models.LocalRecord, error) {
	all, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local records: %w", err)
	}
	active := make([]*models.LocalRecord, 0, len(all))
	for _, rec := range all {
		if rec.IsActive() {
			active = append(active, rec)
		}
	}
	return active, nil
}

// JoinedOrLeft creates local records for ids only the source has in scope and
// retires active local records the scope no longer contains.
func (r *Reconciler) JoinedOrLeft(ctx context.Context, externalIDs []string, active []*models.LocalRecord, summary *reconcile.Summary) error {
	byTitle := indexByTitle(active)
	localIDs := reconcile.NewKeySet()
	for title := range byTitle {
		localIDs.Add(title)
	}
	externalSet := reconcile.NewKeySet(externalIDs...)

	summary.External = len(externalSet)
	summary.LocalActive = len(active)

	p := reconcile.Diff(externalSet, localIDs)

	for _, id := range p.TargetOnly {
		action, err := r.retire(ctx, byTitle[id])
		if err != nil {
			return err
		}
		summary.Record(action)
	}

	if len(p.SourceOnly) == 0 {
		return nil
	}

	byID, err := filter.In(employeeIDField, p.SourceOnly...)
	if err != nil {
		return err
	}
	joiners, err := r.source.QueryAll(ctx, []filter.Expression{byID})
	if err != nil {
		return fmt.Errorf("failed to query joiners: %w", err)
	}
	for i := range joiners {
		if _, err := r.fields.CreateFromExternal(ctx, &joiners[i]); err != nil {
			return err
		}
		r.logger.Info("Employee joined", zap.String("employee_id", joiners[i].EmployeeID))
		summary.Record(reconcile.ActionJoin)
	}
	return nil
}

// retire looks the record up without the scope filter. A record the source no
// longer knows is terminated; one that still exists has left the scope.
func (r *Reconciler) retire(ctx context.Context, local *models.LocalRecord) (reconcile.ActionType, error) {
	id := local.Title()
	byID, err := filter.Eq(employeeIDField, id)
	if err != nil {
		return "", err
	}
	found, err := r.source.QueryAll(ctx, []filter.Expression{byID})
	if err != nil {
		return "", fmt.Errorf("failed to look up %s: %w", id, err)
	}

	if len(found) == 0 {
		local.Set(models.FieldStatus, models.StatusTerminated)
		if err := r.store.Update(ctx, local); err != nil {
			return "", fmt.Errorf("failed to terminate %s: %w", id, err)
		}
		r.logger.Info("Employee terminated", zap.String("employee_id", id))
		return reconcile.ActionTerminate, nil
	}

	departed := found[0]
	departed.Status = models.StatusLeft
	if _, err := r.fields.SyncFields(ctx, local, &departed); err != nil {
		return "", err
	}
	r.logger.Info("Employee left scope", zap.String("employee_id", id))
	return reconcile.ActionLeave, nil
}

func (r *Reconciler) syncMatched(ctx context.Context, external []models.ExternalRecord, active []*models.LocalRecord, summary *reconcile.Summary) error {
	byTitle := indexByTitle(active)
	for i := range external {
		local, ok := byTitle[external[i].EmployeeID]
		if !ok || !local.IsActive() {
			continue
		}
		summary.Checked++
		wrote, err := r.fields.SyncFields(ctx, local, &external[i])
		if err != nil {
			return err
		}
		if wrote {
			summary.Record(reconcile.ActionUpdate)
		}
	}
	return nil
}

// indexByTitle maps employee ids to records. Records without a Title are not
// reconcilable and are skipped; the first record wins on duplicates.
func indexByTitle(records []*models.LocalRecord) map[string]*models.LocalRecord {
	out := make(map[string]*models.LocalRecord, len(records))
	for _, rec := range records {
		title := rec.Title()
		if title == "" {
			continue
		}
		if _, seen := out[title]; !seen {
			out[title] = rec
		}
	}
	return out
}
