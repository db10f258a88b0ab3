// Package fold implements the transition-list builder (C5), the state
// folder (C6), the initial-state resolver (C7), and sun-vector sampling
// (§4.5) — the core of the commanded-state reconstruction pipeline.
package fold

import "github.com/orbops/cmdstate/value"

// IntervalTable is an ordered sequence of (datestart, datestop, state...)
// rows covering a time range with no gaps: datestop[i] == datestart[i+1],
// and the final datestop is the far-future sentinel (spec.md §3).
type IntervalTable struct {
	Keys      []string
	Datestart []string
	Datestop  []string
	States    []map[string]value.Value
}

// Len returns the number of rows.
func (t *IntervalTable) Len() int { return len(t.Datestart) }

// Get returns the value of key at row i.
func (t *IntervalTable) Get(i int, key string) (value.Value, error) {
	if i < 0 || i >= len(t.States) {
		return value.None(), &IllegalIndexError{Index: i}
	}
	return t.States[i][key], nil
}

func copyState(s map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func uniquePreserveOrder(seq []string) []string {
	seen := make(map[string]bool, len(seq))
	out := make([]string, 0, len(seq))
	for _, s := range seq {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
