package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"employee-sync/feature/employee/models"
)

// Directory is an in-memory directory table.
// ListAll hands out copies, so only Create and Update change stored rows.
type Directory struct {
	mu      sync.Mutex
	columns map[string]bool
	rows    map[int64]map[string]any
	nextID  int64

	// Creates and Updates count persisted writes.
	Creates int
	Updates int

	// ListErr, CreateErr and UpdateErr are returned by the matching call when set.
	ListErr   error
	CreateErr error
	UpdateErr error
}

// NewDirectory creates a table with the given columns. Title and Status are always present.
func NewDirectory(columns ...string) *Directory {
	d := &Directory{
		columns: map[string]bool{models.FieldTitle: true, models.FieldStatus: true},
		rows:    make(map[int64]map[string]any),
	}
	for _, c := range columns {
		d.columns[c] = true
	}
	return d
}

// Seed inserts a row without counting it as a write.
func (d *Directory) Seed(fields map[string]any) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.rows[d.nextID] = copyFields(fields)
	return d.nextID
}

// Row returns a copy of the first row whose Title equals title.
func (d *Directory) Row(title string) map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range d.sortedIDs() {
		r := models.NewLocalRecord(id, d.rows[id])
		if r.Title() == title {
			return copyFields(d.rows[id])
		}
	}
	return nil
}

// Len returns the number of stored rows.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rows)
}

// HasField implements the schema check.
func (d *Directory) HasField(_ context.Context, name string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.columns[name], nil
}

// ListAll returns copies of every row in id order.
func (d *Directory) ListAll(_ context.Context) ([]*models.LocalRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ListErr != nil {
		return nil, d.ListErr
	}
	out := make([]*models.LocalRecord, 0, len(d.rows))
	for _, id := range d.sortedIDs() {
		out = append(out, models.NewLocalRecord(id, copyFields(d.rows[id])))
	}
	return out, nil
}

// Create stores a new row.
func (d *Directory) Create(_ context.Context, fields map[string]any) (*models.LocalRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	for name := range fields {
		if !d.columns[name] {
			return nil, fmt.Errorf("unknown column %s", name)
		}
	}
	d.nextID++
	d.rows[d.nextID] = copyFields(fields)
	d.Creates++
	return models.NewLocalRecord(d.nextID, copyFields(fields)), nil
}

// Update applies the record's pending changes.
func (d *Directory) Update(_ context.Context, record *models.LocalRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.UpdateErr != nil {
		return d.UpdateErr
	}
	row, ok := d.rows[record.ID]
	if !ok {
		return fmt.Errorf("row %d not found", record.ID)
	}
	for name, value := range record.Changes() {
		if !d.columns[name] {
			return fmt.Errorf("unknown column %s", name)
		}
		row[name] = value
	}
	record.ClearChanges()
	d.Updates++
	return nil
}

func (d *Directory) sortedIDs() []int64 {
	ids := make([]int64, 0, len(d.rows))
	for id := range d.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
