package directory

import (
	"context"
	"errors"
	"fmt"

	"employee-sync/core/database"
	"employee-sync/core/utils"
	"employee-sync/feature/employee/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownColumn is returned when a write names a column the table lacks.
var ErrUnknownColumn = errors.New("unknown directory column")

// Store is the local directory table backed by gorm.
// Rows are read as column maps so the table schema can vary per deployment.
type Store struct {
	db        *gorm.DB
	table     string
	keyColumn string
	schema    *database.SchemaCache
}

// NewStore creates a store over table whose row key lives in keyColumn.
func NewStore(db *gorm.DB, table, keyColumn string, schema *database.SchemaCache) *Store {
	return &Store{db: db, table: table, keyColumn: keyColumn, schema: schema}
}

// Table returns the directory table name.
func (s *Store) Table() string {
	return s.table
}

// Columns returns the current table columns.
func (s *Store) Columns(ctx context.Context) (map[string]database.ColumnInfo, error) {
	cols, err := s.schema.Columns(ctx, s.db, s.table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("table %s has no columns or does not exist", s.table)
	}
	return cols, nil
}

// HasField reports whether the table has a writable column called name.
func (s *Store) HasField(ctx context.Context, name string) (bool, error) {
	if name == s.keyColumn {
		return false, nil
	}
	cols, err := s.Columns(ctx)
	if err != nil {
		return false, err
	}
	_, ok := cols[name]
	return ok, nil
}

// ListAll loads every row ordered by key.
func (s *Store) ListAll(ctx context.Context) ([]*models.LocalRecord, error) {
	rows, err := s.db.WithContext(ctx).
		Table(s.table).
		Order(clause.OrderByColumn{Column: clause.Column{Name: s.keyColumn}}).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var records []*models.LocalRecord
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var id int64
		fields := make(map[string]any, len(columns))
		for i, col := range columns {
			if col == s.keyColumn {
				id = utils.ToInt64(values[i])
				continue
			}
			// Text columns may arrive as raw bytes depending on the driver.
			if b, ok := values[i].([]byte); ok {
				fields[col] = string(b)
				continue
			}
			fields[col] = values[i]
		}
		records = append(records, models.NewLocalRecord(id, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.table, err)
	}
	return records, nil
}

// Create inserts a row and returns it with its key.
func (s *Store) Create(ctx context.Context, fields map[string]any) (*models.LocalRecord, error) {
	if err := s.checkColumns(ctx, fields); err != nil {
		return nil, err
	}
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}

	if err := s.db.WithContext(ctx).Table(s.table).Create(values).Error; err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", s.table, err)
	}

	record := models.NewLocalRecord(0, fields)
	var id int64
	err := s.db.WithContext(ctx).
		Table(s.table).
		Select(s.keyColumn).
		Where(clause.Eq{Column: clause.Column{Name: models.FieldTitle}, Value: record.Title()}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: s.keyColumn}, Desc: true}).
		Limit(1).
		Row().
		Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to read key of %s: %w", record.Title(), err)
	}
	record.ID = id
	return record, nil
}

// Update writes the pending changes of record, then clears them.
func (s *Store) Update(ctx context.Context, record *models.LocalRecord) error {
	changes := record.Changes()
	if len(changes) == 0 {
		return nil
	}
	if err := s.checkColumns(ctx, changes); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).
		Table(s.table).
		Where(clause.Eq{Column: clause.Column{Name: s.keyColumn}, Value: record.ID}).
		Updates(changes).Error
	if err != nil {
		return fmt.Errorf("failed to update %s row %d: %w", s.table, record.ID, err)
	}
	record.ClearChanges()
	return nil
}

func (s *Store) checkColumns(ctx context.Context, fields map[string]any) error {
	for name := range fields {
		ok, err := s.HasField(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, s.table, name)
		}
	}
	return nil
}
