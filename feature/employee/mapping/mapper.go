package mapping

import (
	"context"
	"fmt"
	"time"

	"employee-sync/core/utils"
	"employee-sync/feature/employee/models"

	"go.uber.org/zap"
)

// Store is the slice of the local directory the mapper writes through.
type Store interface {
	// HasField reports whether the directory schema exposes a column.
	HasField(ctx context.Context, name string) (bool, error)
	// Create inserts a row built from fields and returns it.
	Create(ctx context.Context, fields map[string]any) (*models.LocalRecord, error)
	// Update persists the pending changes of a record.
	Update(ctx context.Context, record *models.LocalRecord) error
}

// Mapper copies and diffs external records onto local rows.
type Mapper struct {
	store       Store
	descriptors []Descriptor
	logger      *zap.Logger
}

// NewMapper creates a mapper over the static field table.
func NewMapper(store Store, logger *zap.Logger) *Mapper {
	return &Mapper{store: store, descriptors: descriptors, logger: logger}
}

// SyncFields brings every schema-present mapped column of local in line with
// external and persists once if anything changed.
func (m *Mapper) SyncFields(ctx context.Context, local *models.LocalRecord, external *models.ExternalRecord) (bool, error) {
	for _, d := range m.descriptors {
		present, err := m.store.HasField(ctx, d.Target)
		if err != nil {
			return false, err
		}
		if !present {
			continue
		}

		want := d.Value(external)
		if Equal(local.Get(d.Target), want) {
			continue
		}
		local.Set(d.Target, want)
	}

	if local.Title() != external.EmployeeID {
		local.Set(models.FieldTitle, external.EmployeeID)
	}

	changed := local.ChangedFields()
	if len(changed) == 0 {
		return false, nil
	}

	m.logger.Debug("Updating directory record",
		zap.String("employee_id", external.EmployeeID),
		zap.Strings("fields", changed))
	if err := m.store.Update(ctx, local); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", external.EmployeeID, err)
	}
	return true, nil
}

// CreateFromExternal builds a new row from every schema-present mapped column
// plus Title, and persists it once.
func (m *Mapper) CreateFromExternal(ctx context.Context, external *models.ExternalRecord) (*models.LocalRecord, error) {
	fields := make(map[string]any, len(m.descriptors)+1)
	for _, d := range m.descriptors {
		present, err := m.store.HasField(ctx, d.Target)
		if err != nil {
			return nil, err
		}
		if present {
			fields[d.Target] = d.Value(external)
		}
	}
	fields[models.FieldTitle] = external.EmployeeID

	record, err := m.store.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", external.EmployeeID, err)
	}
	return record, nil
}

// Equal compares a stored column value with a source value.
// A temporal stored value is compared as an instant at second precision;
// everything else is compared as text with nil read as "".
// Drivers that return datetime columns as text are handled by parsing the
// stored text when the source value is an instant.
func Equal(stored, incoming any) bool {
	if storedTime, ok := stored.(time.Time); ok {
		incomingTime, ok := utils.ToTime(incoming)
		if !ok {
			return false
		}
		return sameInstant(storedTime, incomingTime)
	}
	if incomingTime, ok := incoming.(time.Time); ok {
		if storedTime, ok := utils.ToTime(stored); ok {
			return sameInstant(storedTime, incomingTime)
		}
	}
	return utils.ToString(stored) == utils.ToString(incoming)
}

func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}
