// Package runstate decides the mode of a run and persists the state that
// carries over between runs: the date of the last full audit, the start of
// the previous successful run and the outcome of the latest run.
package runstate
