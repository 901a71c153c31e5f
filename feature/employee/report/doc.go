// Package report describes the outcome of a sync run and archives it as JSON
// in object storage, keeping a bounded number of past reports.
package report
