package fold

import "fmt"

// NoTransitionsError signals that a command set produced no transitions
// for the requested state keys (spec.md §7).
type NoTransitionsError struct {
	Keys []string
}

func (e *NoTransitionsError) Error() string {
	return fmt.Sprintf("fold: no transitions for state keys %v in cmds", e.Keys)
}

// InsertionOrderingError signals an attempt to insert a transition dated
// before the fold's current position — a fatal programming error per
// spec.md §4.7/§7.
type InsertionOrderingError struct {
	New     string
	Current string
}

func (e *InsertionOrderingError) Error() string {
	return fmt.Sprintf("fold: cannot insert transition at %s before current fold position %s", e.New, e.Current)
}

// MissingStateError signals that GetState0 exhausted every lookback
// without resolving some requested keys (spec.md §4.8/§7).
type MissingStateError struct {
	Keys            []string
	MaxLookbackDays float64
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("fold: did not find transitions for state key(s) %v within %g days", e.Keys, e.MaxLookbackDays)
}

// UnknownState0KeyError is a non-fatal warning: state0 carried a key
// outside the requested state_keys (spec.md §7).
type UnknownState0KeyError struct {
	Key string
}

func (e *UnknownState0KeyError) Error() string {
	return fmt.Sprintf("fold: state0 key %q is not in state_keys, ignoring it", e.Key)
}

// IllegalIndexError signals table indexing with an unsupported selector
// (spec.md §7) — fatal for callers of IntervalTable accessors.
type IllegalIndexError struct {
	Index int
}

func (e *IllegalIndexError) Error() string {
	return fmt.Sprintf("fold: illegal row index %d", e.Index)
}
