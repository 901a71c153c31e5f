// Package reconcile applies the personnel record source to the local
// directory table.
//
// A run first settles membership: employees the source has in scope but the
// directory lacks are created, and active directory rows the scope no longer
// contains are looked up again without the scope filter to tell a
// termination from a departure. Matched rows are then field-synced, either
// for the whole population (FullAudit) or only for the records whose
// attribute families changed since the previous run (Incremental).
package reconcile
