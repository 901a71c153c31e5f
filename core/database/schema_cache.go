package database

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// SchemaCache memoizes table column sets for a TTL.
// Concurrent misses for the same table share one introspection query.
type SchemaCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]schemaEntry
	sf      singleflight.Group
	now     func() time.Time
}

type schemaEntry struct {
	columns map[string]ColumnInfo
	built   time.Time
}

// NewSchemaCache creates a cache. A zero TTL disables caching.
func NewSchemaCache(ttl time.Duration) *SchemaCache {
	return &SchemaCache{
		ttl:     ttl,
		entries: make(map[string]schemaEntry),
		now:     time.Now,
	}
}

// Columns returns the indexed columns of a table, loading them on a miss.
func (c *SchemaCache) Columns(ctx context.Context, db *gorm.DB, table string) (map[string]ColumnInfo, error) {
	if cols, ok := c.lookup(table); ok {
		return cols, nil
	}

	result, err, _ := c.sf.Do(table, func() (interface{}, error) {
		if cols, ok := c.lookup(table); ok {
			return cols, nil
		}

		columns, err := GetTableColumns(db.WithContext(ctx), table)
		if err != nil {
			return nil, err
		}
		cols := IndexColumns(columns)

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[table] = schemaEntry{columns: cols, built: c.now()}
			c.mu.Unlock()
		}
		return cols, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]ColumnInfo), nil
}

// Invalidate drops the cached columns of a table.
func (c *SchemaCache) Invalidate(table string) {
	c.mu.Lock()
	delete(c.entries, table)
	c.mu.Unlock()
}

func (c *SchemaCache) lookup(table string) (map[string]ColumnInfo, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[table]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.columns, true
}
