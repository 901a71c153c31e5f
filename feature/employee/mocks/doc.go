// Package mocks provides in-memory stand-ins for the personnel record source
// and the directory table, for use in tests of the sync pipeline.
package mocks
