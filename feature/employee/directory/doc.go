// Package directory stores employee rows in the local directory table.
//
// The table is read and written as column maps: only the Title, Status and
// key columns are required, every other column is optional and discovered
// through schema introspection.
package directory
