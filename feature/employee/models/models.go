package models

import (
	"sort"
	"time"
)

// Structural status values of a local record.
const (
	// StatusTerminated marks a record the source no longer knows.
	StatusTerminated = "Terminated"
	// StatusLeft marks a record that exists upstream but left the scope.
	// The trailing space is part of the stored value.
	StatusLeft = "Left "
)

// Local column names with reconciliation meaning.
const (
	FieldTitle  = "Title"
	FieldStatus = "Status"
)

// DepartmentInfo is the department sub-record owned by an ExternalRecord.
type DepartmentInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	FunctionCode string `json:"functionCode"`
	Division     string `json:"division"`
	CostCenter   string `json:"costCenter"`
}

// ExternalRecord is one employee as reported by the personnel record source.
type ExternalRecord struct {
	EmployeeID string     `json:"employeeId"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	JobCode    string     `json:"jobCode"`
	JobTitle   string     `json:"jobTitle"`
	Location   string     `json:"location"`
	WorkPhone  string     `json:"workPhone"`
	ManagerID  string     `json:"managerId"`
	HireDate   *time.Time `json:"hireDate"`

	JobCodeLastUpdated    *time.Time `json:"jobCodeLastUpdated"`
	DepartmentLastUpdated *time.Time `json:"departmentLastUpdated"`
	LocationLastUpdated   *time.Time `json:"locationLastUpdated"`
	NameLastUpdated       *time.Time `json:"nameLastUpdated"`
	WorkPhoneLastUpdated  *time.Time `json:"workPhoneLastUpdated"`
	JobDataLastUpdated    *time.Time `json:"jobDataLastUpdated"`

	Department DepartmentInfo `json:"department"`
}

// LocalRecord is a row of the local directory table.
// Fields is keyed by column name; the row key lives in ID.
type LocalRecord struct {
	ID      int64
	Fields  map[string]any
	changed map[string]struct{}
}

// NewLocalRecord wraps a loaded row.
func NewLocalRecord(id int64, fields map[string]any) *LocalRecord {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &LocalRecord{ID: id, Fields: fields}
}

// Get returns the value of a column, nil when unset.
func (r *LocalRecord) Get(field string) any {
	return r.Fields[field]
}

// Set writes a column value and remembers it as changed.
func (r *LocalRecord) Set(field string, value any) {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	if r.changed == nil {
		r.changed = make(map[string]struct{})
	}
	r.Fields[field] = value
	r.changed[field] = struct{}{}
}

// Changes returns the columns written since the last ClearChanges.
func (r *LocalRecord) Changes() map[string]any {
	out := make(map[string]any, len(r.changed))
	for field := range r.changed {
		out[field] = r.Fields[field]
	}
	return out
}

// ChangedFields returns the sorted names of changed columns.
func (r *LocalRecord) ChangedFields() []string {
	names := make([]string, 0, len(r.changed))
	for field := range r.changed {
		names = append(names, field)
	}
	sort.Strings(names)
	return names
}

// ClearChanges forgets pending changes after they were persisted.
func (r *LocalRecord) ClearChanges() {
	r.changed = nil
}

// Title returns the employee id held by the record, "" when unset.
func (r *LocalRecord) Title() string {
	return stringValue(r.Fields[FieldTitle])
}

// Status returns the lifecycle status, "" when unset.
func (r *LocalRecord) Status() string {
	return stringValue(r.Fields[FieldStatus])
}

// IsActive reports whether the record is neither terminated nor left.
func (r *LocalRecord) IsActive() bool {
	if r.Fields[FieldStatus] == nil {
		return true
	}
	status := r.Status()
	return status != StatusTerminated && status != StatusLeft
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}
