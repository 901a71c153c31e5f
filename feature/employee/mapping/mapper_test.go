package mapping

import (
	"context"
	"errors"
	"testing"
	"time"

	"employee-sync/feature/employee/mocks"
	"employee-sync/feature/employee/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var allColumns = func() []string {
	var cols []string
	for _, d := range Descriptors() {
		cols = append(cols, d.Target)
	}
	return cols
}()

func loadOne(t *testing.T, dir *mocks.Directory) *models.LocalRecord {
	t.Helper()
	rows, err := dir.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestSyncFields_UpdatesChangedField(t *testing.T) {
	dir := mocks.NewDirectory("Name")
	dir.Seed(map[string]any{"Title": "E1", "Status": nil, "Name": "Alice"})
	m := NewMapper(dir, zap.NewNop())

	wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), &models.ExternalRecord{EmployeeID: "E1", Name: "Bob"})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, 1, dir.Updates)
	assert.Equal(t, "Bob", dir.Row("E1")["Name"])
	// Status is mapped and present but empty on both sides.
	assert.Nil(t, dir.Row("E1")["Status"])
}

func TestSyncFields_NoChangeNoWrite(t *testing.T) {
	dir := mocks.NewDirectory("Name", "Email")
	dir.Seed(map[string]any{"Title": "E1", "Name": "Alice", "Email": nil})
	m := NewMapper(dir, zap.NewNop())

	wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), &models.ExternalRecord{EmployeeID: "E1", Name: "Alice"})
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 0, dir.Updates)
}

func TestSyncFields_SingleWriteForManyChanges(t *testing.T) {
	dir := mocks.NewDirectory(allColumns...)
	dir.Seed(map[string]any{"Title": "E1"})
	m := NewMapper(dir, zap.NewNop())

	ext := &models.ExternalRecord{
		EmployeeID: "E1",
		Name:       "Bob",
		Email:      "bob@example.com",
		JobCode:    "J42",
		Department: models.DepartmentInfo{ID: "D1", Name: "Finance", Code: "FIN", FunctionCode: "060"},
	}
	wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), ext)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, 1, dir.Updates)

	row := dir.Row("E1")
	assert.Equal(t, "D1", row["DepartmentId"])
	assert.Equal(t, "Finance", row["DepartmentName"])
	assert.Equal(t, "FIN", row["DepartmentCode"])
	assert.Equal(t, "060", row["FunctionCode"])
	assert.Equal(t, "E1", row["EmployeeId"])
}

func TestSyncFields_SkipsMissingColumns(t *testing.T) {
	dir := mocks.NewDirectory("Name")
	dir.Seed(map[string]any{"Title": "E1", "Name": "Alice"})
	m := NewMapper(dir, zap.NewNop())

	ext := &models.ExternalRecord{EmployeeID: "E1", Name: "Alice", Email: "a@example.com", Department: models.DepartmentInfo{Name: "Ops"}}
	wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), ext)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.NotContains(t, dir.Row("E1"), "Email")
	assert.NotContains(t, dir.Row("E1"), "DepartmentName")
}

func TestSyncFields_TitleMismatch(t *testing.T) {
	dir := mocks.NewDirectory("Name")
	dir.Seed(map[string]any{"Title": "e1", "Name": "Alice"})
	m := NewMapper(dir, zap.NewNop())

	wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), &models.ExternalRecord{EmployeeID: "E1", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.NotNil(t, dir.Row("E1"))
}

func TestSyncFields_TemporalComparison(t *testing.T) {
	stored := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		incoming  *time.Time
		wantWrite bool
	}{
		{"Same instant other zone", ptr(stored.In(time.FixedZone("CET", 3600))), false},
		{"Sub-second difference", ptr(stored.Add(300 * time.Millisecond)), false},
		{"Different instant", ptr(stored.Add(time.Hour)), true},
		{"Cleared upstream", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := mocks.NewDirectory("HireDate")
			dir.Seed(map[string]any{"Title": "E1", "HireDate": stored})
			m := NewMapper(dir, zap.NewNop())

			wrote, err := m.SyncFields(context.Background(), loadOne(t, dir), &models.ExternalRecord{EmployeeID: "E1", HireDate: tt.incoming})
			require.NoError(t, err)
			assert.Equal(t, tt.wantWrite, wrote)
		})
	}
}

func TestSyncFields_Converges(t *testing.T) {
	dir := mocks.NewDirectory(allColumns...)
	dir.Seed(map[string]any{"Title": "E1", "Name": "Old", "HireDate": time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), "Location": []byte("HQ")})
	m := NewMapper(dir, zap.NewNop())

	hire := time.Date(2019, 6, 3, 0, 0, 0, 0, time.UTC)
	ext := &models.ExternalRecord{
		EmployeeID: "E1", Name: "New", Location: "Remote", HireDate: &hire,
		Department: models.DepartmentInfo{ID: "7", Division: "North"},
	}

	_, err := m.SyncFields(context.Background(), loadOne(t, dir), ext)
	require.NoError(t, err)

	after := loadOne(t, dir)
	for _, d := range Descriptors() {
		assert.True(t, Equal(after.Get(d.Target), d.Value(ext)), "field %s did not converge", d.Target)
	}

	// A second pass is a no-op.
	wrote, err := m.SyncFields(context.Background(), after, ext)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 1, dir.Updates)
}

func TestSyncFields_UpdateError(t *testing.T) {
	dir := mocks.NewDirectory("Name")
	dir.Seed(map[string]any{"Title": "E1", "Name": "Alice"})
	dir.UpdateErr = errors.New("connection reset")
	m := NewMapper(dir, zap.NewNop())

	_, err := m.SyncFields(context.Background(), loadOne(t, dir), &models.ExternalRecord{EmployeeID: "E1", Name: "Bob"})
	assert.ErrorIs(t, err, dir.UpdateErr)
}

func TestCreateFromExternal(t *testing.T) {
	dir := mocks.NewDirectory("Name", "DepartmentCode")
	m := NewMapper(dir, zap.NewNop())

	rec, err := m.CreateFromExternal(context.Background(), &models.ExternalRecord{
		EmployeeID: "E2",
		Name:       "Carol",
		Email:      "carol@example.com",
		Department: models.DepartmentInfo{Code: "ENG"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dir.Creates)
	assert.Equal(t, "E2", rec.Title())

	row := dir.Row("E2")
	assert.Equal(t, "Carol", row["Name"])
	assert.Equal(t, "ENG", row["DepartmentCode"])
	assert.Equal(t, "", row["Status"])
	assert.NotContains(t, row, "Email")
}

func TestCreateFromExternal_Error(t *testing.T) {
	dir := mocks.NewDirectory("Name")
	dir.CreateErr = errors.New("duplicate key")
	m := NewMapper(dir, zap.NewNop())

	_, err := m.CreateFromExternal(context.Background(), &models.ExternalRecord{EmployeeID: "E2"})
	assert.ErrorIs(t, err, dir.CreateErr)
	assert.Contains(t, err.Error(), "E2")
}

func TestEqual(t *testing.T) {
	instant := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.True(t, Equal(nil, ""))
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal([]byte("abc"), "abc"))
	assert.True(t, Equal(int64(60), "60"))
	assert.False(t, Equal("abc", "abd"))
	assert.True(t, Equal(instant, instant.Local()))
	assert.False(t, Equal(instant, nil))
	assert.False(t, Equal(nil, instant))
	assert.True(t, Equal("2024-01-02T03:04:05Z", instant))
	assert.True(t, Equal("2024-01-02 03:04:05+00:00", instant))
}

func ptr(t time.Time) *time.Time { return &t }
