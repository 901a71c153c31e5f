package employee

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"employee-sync/core/database"
	"employee-sync/feature/employee/datahub"
	"employee-sync/feature/employee/runstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const directoryDDL = `CREATE TABLE Employees (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	Title TEXT,
	Status TEXT,
	Name TEXT,
	DepartmentName TEXT,
	DepartmentCode TEXT
)`

var dataHubRecords = map[string]string{
	"E1": `{"employeeId":"E1","name":"Alice Smith","status":"Active","department":{"name":"Engineering","code":"D60","functionCode":"060"}}`,
	"E2": `{"employeeId":"E2","name":"Carol Jones","status":"Active","department":{"name":"Engineering","code":"D60","functionCode":"060"}}`,
	"E8": `{"employeeId":"E8","name":"Bob Brown","status":"Active","department":{"name":"Sales","code":"D70","functionCode":"070"}}`,
}

var inScope = []string{"E1", "E2"}

// newDataHub serves the employee resource from dataHubRecords.
func newDataHub(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, ids []string, idsOnly bool) {
		var parts []string
		for _, id := range ids {
			rec, ok := dataHubRecords[id]
			if !ok {
				continue
			}
			if idsOnly {
				rec = `{"employeeId":"` + id + `"}`
			}
			parts = append(parts, rec)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recordCount":` + strconv.Itoa(len(parts)) + `,"employees":[` + strings.Join(parts, ",") + `]}`))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if id := q.Get("employeeId"); id != "" {
			if list, ok := strings.CutPrefix(id, "inList::"); ok {
				reply(w, strings.Split(list, ","), false)
				return
			}
			reply(w, []string{id}, false)
			return
		}
		for key := range q {
			if strings.HasSuffix(key, "LastUpdated") {
				reply(w, nil, false)
				return
			}
		}
		if q.Get("department.functionCode") != "060" {
			http.Error(w, "scope filter missing", http.StatusBadRequest)
			return
		}
		reply(w, inScope, q.Get("fields") == "employeeId")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupDirectory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(directoryDDL).Error)
	seed := [][]any{
		{"E1", "Active", "Alice Old", "Engineering", "D60"},
		{"E8", "Active", "Bob Brown", "Engineering", "D60"},
		{"E9", "Active", "Dan Gone", "Engineering", "D60"},
		{"E7", "Terminated", "Eve Past", "Engineering", "D60"},
	}
	for _, row := range seed {
		require.NoError(t, db.Exec("INSERT INTO Employees (Title, Status, Name, DepartmentName, DepartmentCode) VALUES (?, ?, ?, ?, ?)", row...).Error)
	}
	return db
}

func testDeps(db *gorm.DB, baseURL string) Deps {
	return Deps{
		DB:     db,
		Source: datahub.Config{BaseURL: baseURL, RequestURI: "hrdatahub/v1/employee"},
		Sync: Config{
			Table:              "Employees",
			KeyColumn:          "ID",
			StateTable:         "run_state",
			Scope:              "department.functionCode=060",
			SchemaCacheSeconds: 60,
		},
		Logger: zap.NewNop(),
	}
}

type directoryRow struct {
	Title          string
	Status         string
	Name           string
	DepartmentName string
	DepartmentCode string
}

func readDirectory(t *testing.T, db *gorm.DB) map[string]directoryRow {
	t.Helper()
	var rows []directoryRow
	require.NoError(t, db.Table("Employees").Select("Title, Status, Name, DepartmentName, DepartmentCode").Scan(&rows).Error)
	out := make(map[string]directoryRow, len(rows))
	for _, r := range rows {
		out[r.Title] = r
	}
	return out
}

func TestBuild_EndToEnd(t *testing.T) {
	ctx := context.Background()
	db := setupDirectory(t)
	srv := newDataHub(t)

	svc, store, err := Build(ctx, testDeps(db, srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "Employees", store.Table())

	rep, err := svc.Run(ctx, false)
	require.NoError(t, err)
	require.True(t, rep.Successful, rep.Error)
	assert.Equal(t, runstate.ModeFullAudit, rep.Mode)
	assert.Equal(t, 1, rep.Summary.Joined)
	assert.Equal(t, 1, rep.Summary.Terminated)
	assert.Equal(t, 1, rep.Summary.Left)
	assert.Equal(t, 1, rep.Summary.Updated)

	rows := readDirectory(t, db)
	require.Len(t, rows, 5)
	assert.Equal(t, "Alice Smith", rows["E1"].Name)
	assert.Equal(t, directoryRow{Title: "E2", Status: "Active", Name: "Carol Jones", DepartmentName: "Engineering", DepartmentCode: "D60"}, rows["E2"])
	assert.Equal(t, directoryRow{Title: "E8", Status: "Left ", Name: "Bob Brown", DepartmentName: "Sales", DepartmentCode: "D70"}, rows["E8"])
	assert.Equal(t, "Terminated", rows["E9"].Status)
	assert.Equal(t, "Dan Gone", rows["E9"].Name)
	assert.Equal(t, "Eve Past", rows["E7"].Name)

	rep, err = svc.Run(ctx, false)
	require.NoError(t, err)
	require.True(t, rep.Successful, rep.Error)
	assert.Equal(t, runstate.ModeIncremental, rep.Mode)
	assert.Zero(t, rep.Summary.Writes())
	assert.Equal(t, rows, readDirectory(t, db))

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.State.CurrentRunSuccessful)
	assert.True(t, *status.State.CurrentRunSuccessful)
	assert.Equal(t, rep.RunID, status.State.LastRunID)
}

func TestBuild_SourceFailureIsRecorded(t *testing.T) {
	ctx := context.Background()
	db := setupDirectory(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	svc, _, err := Build(ctx, testDeps(db, srv.URL))
	require.NoError(t, err)

	rep, err := svc.Run(ctx, true)
	require.NoError(t, err)
	assert.False(t, rep.Successful)
	assert.Contains(t, rep.Error, "403")

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.State.CurrentRunSuccessful)
	assert.False(t, *status.State.CurrentRunSuccessful)
	assert.Equal(t, "Active", readDirectory(t, db)["E9"].Status)
}

func TestBuild_Errors(t *testing.T) {
	ctx := context.Background()
	db := setupDirectory(t)

	_, _, err := Build(ctx, Deps{Logger: zap.NewNop()})
	assert.Error(t, err)

	deps := testDeps(db, "http://localhost:8443/")
	deps.Sync.Scope = "department.functionCode"
	_, _, err = Build(ctx, deps)
	assert.ErrorContains(t, err, "invalid sync scope")

	_, _, err = Build(ctx, testDeps(db, "not a url"))
	assert.Error(t, err)
}
