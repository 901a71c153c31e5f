package mapping

import (
	"time"

	"employee-sync/feature/employee/models"
)

// Kind is the value kind of a mapped field.
type Kind string

const (
	KindString Kind = "string"
	KindTime   Kind = "time"
)

// Descriptor maps one external attribute onto one local column.
type Descriptor struct {
	// Source is the attribute path in the record source payload.
	Source string `yaml:"source"`
	// Target is the local column name.
	Target string `yaml:"target"`
	// Kind is the value kind.
	Kind Kind `yaml:"kind"`

	value func(*models.ExternalRecord) any
}

// Value extracts the attribute from a record. Missing instants yield nil.
func (d Descriptor) Value(rec *models.ExternalRecord) any {
	return d.value(rec)
}

// renamedDepartmentFields are written as Department<Field>; other department
// attributes keep their own name.
var renamedDepartmentFields = map[string]bool{
	"Id":   true,
	"Name": true,
	"Code": true,
}

// DepartmentTarget returns the local column for a department attribute.
func DepartmentTarget(field string) string {
	if renamedDepartmentFields[field] {
		return "Department" + field
	}
	return field
}

var descriptors = buildDescriptors()

// Descriptors returns the static field table.
func Descriptors() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

func buildDescriptors() []Descriptor {
	scalar := func(source, target string, get func(*models.ExternalRecord) string) Descriptor {
		return Descriptor{Source: source, Target: target, Kind: KindString, value: func(r *models.ExternalRecord) any { return get(r) }}
	}
	instant := func(source, target string, get func(*models.ExternalRecord) *time.Time) Descriptor {
		return Descriptor{Source: source, Target: target, Kind: KindTime, value: func(r *models.ExternalRecord) any { return timeValue(get(r)) }}
	}
	department := func(field, source string, get func(*models.DepartmentInfo) string) Descriptor {
		return Descriptor{
			Source: "department." + source,
			Target: DepartmentTarget(field),
			Kind:   KindString,
			value:  func(r *models.ExternalRecord) any { return get(&r.Department) },
		}
	}

	return []Descriptor{
		scalar("employeeId", "EmployeeId", func(r *models.ExternalRecord) string { return r.EmployeeID }),
		scalar("firstName", "FirstName", func(r *models.ExternalRecord) string { return r.FirstName }),
		scalar("lastName", "LastName", func(r *models.ExternalRecord) string { return r.LastName }),
		scalar("name", "Name", func(r *models.ExternalRecord) string { return r.Name }),
		scalar("email", "Email", func(r *models.ExternalRecord) string { return r.Email }),
		scalar("status", "Status", func(r *models.ExternalRecord) string { return r.Status }),
		scalar("jobCode", "JobCode", func(r *models.ExternalRecord) string { return r.JobCode }),
		scalar("jobTitle", "JobTitle", func(r *models.ExternalRecord) string { return r.JobTitle }),
		scalar("location", "Location", func(r *models.ExternalRecord) string { return r.Location }),
		scalar("workPhone", "WorkPhone", func(r *models.ExternalRecord) string { return r.WorkPhone }),
		scalar("managerId", "ManagerId", func(r *models.ExternalRecord) string { return r.ManagerID }),
		instant("hireDate", "HireDate", func(r *models.ExternalRecord) *time.Time { return r.HireDate }),
		instant("jobCodeLastUpdated", "JobCodeLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.JobCodeLastUpdated }),
		instant("departmentLastUpdated", "DepartmentLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.DepartmentLastUpdated }),
		instant("locationLastUpdated", "LocationLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.LocationLastUpdated }),
		instant("nameLastUpdated", "NameLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.NameLastUpdated }),
		instant("workPhoneLastUpdated", "WorkPhoneLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.WorkPhoneLastUpdated }),
		instant("jobDataLastUpdated", "JobDataLastUpdated", func(r *models.ExternalRecord) *time.Time { return r.JobDataLastUpdated }),

		department("Id", "id", func(d *models.DepartmentInfo) string { return d.ID }),
		department("Name", "name", func(d *models.DepartmentInfo) string { return d.Name }),
		department("Code", "code", func(d *models.DepartmentInfo) string { return d.Code }),
		department("FunctionCode", "functionCode", func(d *models.DepartmentInfo) string { return d.FunctionCode }),
		department("Division", "division", func(d *models.DepartmentInfo) string { return d.Division }),
		department("CostCenter", "costCenter", func(d *models.DepartmentInfo) string { return d.CostCenter }),
	}
}

func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
