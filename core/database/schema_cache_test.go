package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCache_Columns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE Employees (id INTEGER PRIMARY KEY, Title TEXT)`).Error)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewSchemaCache(time.Minute)
	cache.now = func() time.Time { return now }

	cols, err := cache.Columns(context.Background(), db, "Employees")
	require.NoError(t, err)
	assert.Contains(t, cols, "Title")

	// Schema change is not visible while the entry is fresh.
	require.NoError(t, db.Exec(`ALTER TABLE Employees ADD COLUMN Name TEXT`).Error)
	cols, err = cache.Columns(context.Background(), db, "Employees")
	require.NoError(t, err)
	assert.NotContains(t, cols, "Name")

	t.Run("Expired entry reloads", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		cols, err := cache.Columns(context.Background(), db, "Employees")
		require.NoError(t, err)
		assert.Contains(t, cols, "Name")
	})

	t.Run("Invalidate reloads", func(t *testing.T) {
		require.NoError(t, db.Exec(`ALTER TABLE Employees ADD COLUMN Email TEXT`).Error)
		cache.Invalidate("Employees")
		cols, err := cache.Columns(context.Background(), db, "Employees")
		require.NoError(t, err)
		assert.Contains(t, cols, "Email")
	})
}

func TestSchemaCache_ZeroTTLAlwaysLoads(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE Employees (id INTEGER PRIMARY KEY)`).Error)

	cache := NewSchemaCache(0)
	_, err = cache.Columns(context.Background(), db, "Employees")
	require.NoError(t, err)

	require.NoError(t, db.Exec(`ALTER TABLE Employees ADD COLUMN Title TEXT`).Error)
	cols, err := cache.Columns(context.Background(), db, "Employees")
	require.NoError(t, err)
	assert.Contains(t, cols, "Title")
}
