package reconcile

import "sort"

// KeySet is a set of entity keys.
type KeySet map[string]struct{}

// NewKeySet builds a set from keys. Empty keys are skipped.
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set.Add(k)
	}
	return set
}

// Add inserts a key.
func (s KeySet) Add(key string) {
	if key == "" {
		return
	}
	s[key] = struct{}{}
}

// Has reports membership.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Sorted returns the keys in ascending order for deterministic processing.
func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Partition is the outcome of comparing two key sets.
type Partition struct {
	// SourceOnly holds keys present only in the source set.
	SourceOnly []string
	// TargetOnly holds keys present only in the target set.
	TargetOnly []string
	// Matched holds keys present in both.
	Matched []string
}

// Diff splits the union of source and target keys by presence.
// Each slice is sorted, so the result does not depend on input iteration order.
func Diff(source, target KeySet) Partition {
	var p Partition
	for key := range source {
		if target.Has(key) {
			p.Matched = append(p.Matched, key)
		} else {
			p.SourceOnly = append(p.SourceOnly, key)
		}
	}
	for key := range target {
		if !source.Has(key) {
			p.TargetOnly = append(p.TargetOnly, key)
		}
	}
	sort.Strings(p.SourceOnly)
	sort.Strings(p.TargetOnly)
	sort.Strings(p.Matched)
	return p
}

// UnionBy merges groups of items, keeping the first item seen for each key.
// Items with an empty key are dropped. Output order is first-seen order.
func UnionBy[T any](key func(T) string, groups ...[]T) []T {
	seen := make(KeySet)
	var out []T
	for _, group := range groups {
		for _, item := range group {
			k := key(item)
			if k == "" || seen.Has(k) {
				continue
			}
			seen.Add(k)
			out = append(out, item)
		}
	}
	return out
}
