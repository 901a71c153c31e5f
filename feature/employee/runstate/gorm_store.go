package runstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTable is the run state table used when none is configured.
const DefaultTable = "run_state"

// Entry is one persisted state value.
type Entry struct {
	Name      string `gorm:"column:name;primaryKey;size:64"`
	Value     string `gorm:"column:value;type:text"`
	UpdatedAt time.Time
}

// GormStore keeps run state in a key/value table.
type GormStore struct {
	db    *gorm.DB
	table string
}

// NewGormStore creates a store over table, DefaultTable when empty.
func NewGormStore(db *gorm.DB, table string) *GormStore {
	if table == "" {
		table = DefaultTable
	}
	return &GormStore{db: db, table: table}
}

// EnsureSchema creates the state table when it does not exist.
func (s *GormStore) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Table(s.table).AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.table, err)
	}
	return nil
}

// Get returns the value stored under key, "" when unset.
func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := s.db.WithContext(ctx).
		Table(s.table).
		Where(clause.Eq{Column: clause.Column{Name: "name"}, Value: key}).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set upserts the value stored under key.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := Entry{Name: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Table(s.table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// Delete removes key. Deleting an unset key is not an error.
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Table(s.table).
		Where(clause.Eq{Column: clause.Column{Name: "name"}, Value: key}).
		Delete(&Entry{}).Error
}
