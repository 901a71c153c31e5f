package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"employee-sync/core/filter"
	"employee-sync/core/utils"
	"employee-sync/feature/employee/models"
)

// Source is an in-memory personnel record source that evaluates filters
// against a fixed set of records.
type Source struct {
	mu      sync.Mutex
	records []models.ExternalRecord

	// Queries records every request in wire form, one entry per call.
	Queries []string

	// Err, when set, is returned by every call.
	Err error
	// FailOn, when set, returns an error for matching requests.
	FailOn func(filters []filter.Expression) error
}

// NewSource creates a source holding records in the given order.
func NewSource(records ...models.ExternalRecord) *Source {
	return &Source{records: records}
}

// QueryAll returns the records matching every filter.
func (s *Source) QueryAll(_ context.Context, filters []filter.Expression) ([]models.ExternalRecord, error) {
	if err := s.record("all", filters); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ExternalRecord
	for _, rec := range s.records {
		if matchesAll(rec, filters) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// QueryIDs returns the ids of the records matching every filter.
func (s *Source) QueryIDs(ctx context.Context, filters []filter.Expression) ([]string, error) {
	if err := s.record("ids", filters); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, rec := range s.records {
		if matchesAll(rec, filters) {
			ids = append(ids, rec.EmployeeID)
		}
	}
	return ids, nil
}

// CountQueries returns how many requests contained fragment.
func (s *Source) CountQueries(fragment string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, q := range s.Queries {
		if strings.Contains(q, fragment) {
			n++
		}
	}
	return n
}

func (s *Source) record(kind string, filters []filter.Expression) error {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.String())
	}
	s.mu.Lock()
	s.Queries = append(s.Queries, kind+"?"+strings.Join(parts, "&"))
	s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	if s.FailOn != nil {
		return s.FailOn(filters)
	}
	return nil
}

func matchesAll(rec models.ExternalRecord, filters []filter.Expression) bool {
	for _, f := range filters {
		if !matches(rec, f) {
			return false
		}
	}
	return true
}

func matches(rec models.ExternalRecord, f filter.Expression) bool {
	values := f.Values()
	switch f.Operator() {
	case filter.Equal:
		v, ok := textField(rec, f.Field())
		return ok && v == values[0]
	case filter.InList:
		v, ok := textField(rec, f.Field())
		if !ok {
			return false
		}
		for _, candidate := range values {
			if v == candidate {
				return true
			}
		}
		return false
	case filter.GreaterOrEqual, filter.LessOrEqual:
		t := timeField(rec, f.Field())
		bound, ok := utils.ToTime(values[0])
		if t == nil || !ok {
			return false
		}
		if f.Operator() == filter.GreaterOrEqual {
			return !t.Before(bound)
		}
		return !t.After(bound)
	}
	return false
}

func textField(rec models.ExternalRecord, field string) (string, bool) {
	switch field {
	case "employeeId":
		return rec.EmployeeID, true
	case "department.functionCode":
		return rec.Department.FunctionCode, true
	case "department.code":
		return rec.Department.Code, true
	case "status":
		return rec.Status, true
	}
	return "", false
}

func timeField(rec models.ExternalRecord, field string) *time.Time {
	switch field {
	case "jobCodeLastUpdated":
		return rec.JobCodeLastUpdated
	case "departmentLastUpdated":
		return rec.DepartmentLastUpdated
	case "locationLastUpdated":
		return rec.LocationLastUpdated
	case "nameLastUpdated":
		return rec.NameLastUpdated
	case "workPhoneLastUpdated":
		return rec.WorkPhoneLastUpdated
	case "jobDataLastUpdated":
		return rec.JobDataLastUpdated
	case "hireDate":
		return rec.HireDate
	}
	return nil
}
