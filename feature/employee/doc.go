// Package employee keeps the local employee directory in line with the
// personnel record source.
//
// # Runs
//
// Each run loads the run state, picks a mode and reconciles:
//
//   - Full audit: when forced (--all, ?all=true) or when the last audit is at
//     least 24h old. Every in-scope record is compared with its local row.
//   - Incremental: only records whose attribute families changed since the
//     previous successful run are compared.
//
// Both modes first settle membership: joiners are created, and active rows
// missing from the scope are marked "Terminated" or "Left " depending on
// whether the source still knows them.
//
// A failed run records CurrentRunSuccessful=false and LastError and leaves the
// previous run timestamp alone, so the next run covers the same window.
//
// # HTTP
//
//   - GET  /sync/status  run state and latest report
//   - POST /sync/run     trigger a run (?all=true forces a full audit)
//   - GET  /sync/schema  mapped fields present or missing in the directory table
//
// Sub-packages hold the pieces: datahub (record source client), directory
// (local table), mapping (field table and diff), reconcile (join/leave and
// update passes), runstate (mode selection and state) and report (run
// reports archived to object storage).
package employee
