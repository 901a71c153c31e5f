// Package mapping holds the field table between the record source and the
// local directory, and the diff/copy logic built on it.
//
// Every scalar employee attribute maps onto the column of the same name.
// Department attributes map the same way except id, name and code, which are
// written as DepartmentId, DepartmentName and DepartmentCode. The table is
// declared once; nothing is discovered by reflection.
//
// A column is only read or written when the directory schema has it, so a
// deployment can carry any subset of the mapped columns.
package mapping
