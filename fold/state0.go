package fold

import (
	"errors"
	"sort"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/transition"
	"github.com/orbops/cmdstate/value"
	"github.com/orbops/cmdstate/xtime"
)

// DefaultLookbacks is the default expanding-window sequence used by
// GetState0 (spec.md §4.8).
var DefaultLookbacks = []float64{7, 30, 180, 1000}

// GetState0 is the initial-state resolver (C7, spec.md §4.8): it searches
// an expanding sequence of lookback windows for the most recent transition
// of every requested key, falling back to each rule's declared default
// value, and finally failing with MissingStateError naming what could not
// be resolved.
func GetState0(reg *transition.Registry, store *archive.Store, date string, stateKeys []string, lookbacks []float64) (map[string]value.Value, error) {
	if lookbacks == nil {
		lookbacks = DefaultLookbacks
	}
	sorted := append([]float64(nil), lookbacks...)
	sort.Float64s(sorted)

	if stateKeys == nil {
		stateKeys = reg.StateKeys()
	}

	stop := xtime.Now()
	if date != "" {
		stop = xtime.MustParse(date)
	}

	state0 := make(map[string]value.Value)
	var lastLookback float64
	filled := false

	for _, lookback := range sorted {
		lastLookback = lookback
		start := stop.AddDays(-lookback)

		cmds, err := store.Filter(start.Date(), stop.Date(), nil)
		if err != nil {
			return nil, err
		}

		for _, key := range stateKeys {
			if _, ok := state0[key]; ok {
				continue
			}
			if len(cmds) == 0 {
				continue
			}

			table, _, err := GetStatesForCmds(reg, cmds, []string{key}, nil)
			if err != nil {
				var noTrans *NoTransitionsError
				if errors.As(err, &noTrans) {
					continue
				}
				return nil, err
			}

			last := table.Len() - 1
			for _, col := range table.Keys {
				v := table.States[last][col]
				if !v.IsAbsent() {
					state0[col] = v
				}
			}
		}

		if allPresent(state0, stateKeys) {
			filled = true
			break
		}
	}

	if filled {
		return state0, nil
	}

	missing := missingKeys(state0, stateKeys)
	for _, key := range missing {
		for _, rule := range reg.TransitionClasses([]string{key}) {
			dv, ok := rule.(transition.DefaultValuer)
			if !ok {
				continue
			}
			if v, has := dv.DefaultValue(key); has {
				state0[key] = v
			}
		}
	}

	stillMissing := missingKeys(state0, stateKeys)
	if len(stillMissing) > 0 {
		return state0, &MissingStateError{Keys: stillMissing, MaxLookbackDays: lastLookback}
	}
	return state0, nil
}

func allPresent(state0 map[string]value.Value, keys []string) bool {
	for _, k := range keys {
		if _, ok := state0[k]; !ok {
			return false
		}
	}
	return true
}

func missingKeys(state0 map[string]value.Value, keys []string) []string {
	var out []string
	for _, k := range keys {
		if _, ok := state0[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
