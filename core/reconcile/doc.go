// Package reconcile provides the generic building blocks of a keyed
// reconciliation between an authoritative source and a local target.
//
// # Key sets
//
// Both sides are reduced to sets of entity keys. Diff splits their union into
// source-only keys (joins), target-only keys (departure candidates) and
// matched keys (field-level diff). The partitions are sorted so the outcome
// never depends on the order in which either side was listed.
//
// # Union by identity
//
// Incremental runs ask the source several independent questions ("what
// changed in family X since T") and act once per entity. UnionBy merges the
// answers, keeping the first occurrence of each key.
//
// # Summary
//
// Summary counts the actions a run applied (join, terminate, leave, update)
// and is carried into the run report.
//
// # Usage Example
//
//	p := reconcile.Diff(reconcile.NewKeySet(externalIDs...), reconcile.NewKeySet(localIDs...))
//	for _, id := range p.SourceOnly {
//	    // create
//	}
//	for _, id := range p.TargetOnly {
//	    // re-check upstream
//	}
package reconcile
