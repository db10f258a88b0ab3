// Package reduce implements the Reducer (C8, spec.md §4.9): collapsing an
// interval table down to the rows where a caller-selected subset of state
// keys actually changes.
package reduce

import (
	"github.com/orbops/cmdstate/fold"
	"github.com/orbops/cmdstate/value"
	"github.com/orbops/cmdstate/xtime"
)

// Reduce returns table restricted to keys, keeping row 0 and any row where
// at least one of keys differs from the previous row. Row 0 is always
// kept regardless of whether any key in it ever changes — this resolves
// the open question left by the source's reduce_states TODO for columns
// with zero transitions (see DESIGN.md).
func Reduce(table *fold.IntervalTable, keys []string) *fold.IntervalTable {
	n := table.Len()
	if n == 0 {
		return &fold.IntervalTable{Keys: keys}
	}

	keep := make([]bool, n)
	keep[0] = true
	for i := 1; i < n; i++ {
		for _, key := range keys {
			if !table.States[i][key].Equal(table.States[i-1][key]) {
				keep[i] = true
				break
			}
		}
	}

	var datestart []string
	var states []map[string]value.Value
	for i := 0; i < n; i++ {
		if keep[i] {
			datestart = append(datestart, table.Datestart[i])
			states = append(states, table.States[i])
		}
	}

	datestop := make([]string, len(datestart))
	for i := 0; i < len(datestop)-1; i++ {
		datestop[i] = datestart[i+1]
	}
	if len(datestop) > 0 {
		datestop[len(datestop)-1] = xtime.FarFuture
	}

	return &fold.IntervalTable{Keys: keys, Datestart: datestart, Datestop: datestop, States: states}
}
