// Package cmdstate is the commanded-state reconstruction engine: given an
// archive of spacecraft commands, it reconstructs the intervals of
// commanded state (attitude, mechanism positions, science-instrument
// configuration) those commands imply over time.
//
// The outward surface mirrors the collaborators named in spec.md §6:
// Filter opens the command archive, GetStatesForCmds and GetState0 run the
// fold, and ReduceStates collapses a table down to the columns a caller
// cares about.
package cmdstate

import (
	"errors"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/fold"
	"github.com/orbops/cmdstate/reduce"
	"github.com/orbops/cmdstate/transition"
	"github.com/orbops/cmdstate/value"
)

// Engine ties together a command archive and the default transition
// registry. Open builds one that uses the default rule set.
type Engine struct {
	Store    *archive.Store
	Registry *transition.Registry
}

// Open returns an Engine backed by the sqlite command archive at dsn,
// using the default (package-level) transition registry.
func Open(dsn string) *Engine {
	return &Engine{Store: archive.Open(dsn), Registry: transition.Default}
}

// Filter returns the commands in [start, stop) matching attrs, delegating
// to the underlying Store (C2, spec.md §4.1).
func (e *Engine) Filter(start, stop string, attrs map[string]string) ([]*archive.Command, error) {
	return e.Store.Filter(start, stop, attrs)
}

// GetStatesForCmds runs the fold (C6, spec.md §4.6) over cmds for the
// given state keys, seeded by state0 (nil means "start absent").
func (e *Engine) GetStatesForCmds(cmds []*archive.Command, stateKeys []string, state0 map[string]value.Value) (*fold.IntervalTable, []error, error) {
	return fold.GetStatesForCmds(e.Registry, cmds, stateKeys, state0)
}

// GetState0 resolves the initial state as of date for stateKeys, using the
// default expanding lookback ladder unless lookbacks is non-nil (C7,
// spec.md §4.8).
func (e *Engine) GetState0(date string, stateKeys []string, lookbacks []float64) (map[string]value.Value, error) {
	return fold.GetState0(e.Registry, e.Store, date, stateKeys, lookbacks)
}

// States is the end-to-end convenience path: filter the archive over
// [start, stop), resolve state0 as of start, fold the matching commands,
// and return the resulting interval table. Keys that GetState0 cannot
// resolve (a MissingStateError) start absent rather than failing the call.
func (e *Engine) States(start, stop string, stateKeys []string) (*fold.IntervalTable, []error, error) {
	state0, err := e.GetState0(start, stateKeys, nil)
	if err != nil {
		var missing *fold.MissingStateError
		if !errors.As(err, &missing) {
			return nil, nil, err
		}
	}
	cmds, err := e.Filter(start, stop, nil)
	if err != nil {
		return nil, nil, err
	}
	return e.GetStatesForCmds(cmds, stateKeys, state0)
}

// ReduceStates collapses table to keys, keeping only rows where at least
// one of keys changes from the previous row (C8, spec.md §4.9).
func ReduceStates(table *fold.IntervalTable, keys []string) *fold.IntervalTable {
	return reduce.Reduce(table, keys)
}
