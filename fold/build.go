package fold

import (
	"math"
	"sort"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/transition"
)

// SampleIntervalSecs is the sun-vector sampling period (spec.md §4.5).
const SampleIntervalSecs = 10000.0

// ExpandKeys turns a caller's requested state keys into the full set every
// matching rule touches (spec.md §4.6's "Define complete list of column
// names" step), deduplicated in first-seen order. A nil keys returns
// every key the registry knows about.
func ExpandKeys(reg *transition.Registry, keys []string) []string {
	if keys == nil {
		return reg.StateKeys()
	}
	all := reg.TransitionClasses(nil)
	var expanded []string
	for _, want := range keys {
		for _, rule := range all {
			for _, rk := range rule.StateKeys() {
				if rk == want {
					expanded = append(expanded, rule.StateKeys()...)
					break
				}
			}
		}
	}
	return uniquePreserveOrder(expanded)
}

// BuildTransitions is the transition-list builder (C5, spec.md §4.4): it
// fans commands out to every matching rule in registration order,
// flattens the per-date accumulator into a sorted list, and appends
// sun-vector sample transitions when pitch or off_nom_roll is requested.
func BuildTransitions(reg *transition.Registry, cmds []*archive.Command, stateKeys []string) []*transition.Transition {
	keys := ExpandKeys(reg, stateKeys)

	acc := transition.NewAccumulator()
	for _, rule := range reg.TransitionClasses(keys) {
		rule.SetTransitions(acc, cmds)
	}
	transitions := acc.Flatten()

	if wantsSunVector(keys) && len(cmds) > 0 {
		transitions = addSunVectorTransitions(cmds, transitions)
	}
	return transitions
}

func wantsSunVector(keys []string) bool {
	for _, k := range keys {
		if k == "pitch" || k == "off_nom_roll" {
			return true
		}
	}
	return false
}

// addSunVectorTransitions samples pitch/off_nom_roll every
// SampleIntervalSecs, anchored at floor(start/sample)*sample so
// independent windows agree on the grid (spec.md §4.5, testable property 4).
func addSunVectorTransitions(cmds []*archive.Command, transitions []*transition.Transition) []*transition.Transition {
	start := mustSecs(cmds[0].Date)
	stop := mustSecs(cmds[len(cmds)-1].Date)
	tstart := math.Floor(start/SampleIntervalSecs) * SampleIntervalSecs

	for t := tstart; t < stop; t += SampleIntervalSecs {
		date := secsToDate(t)
		tr := transition.NewTransition(date)
		tr.SetDeferred("update_pitch", transition.SunVectorSample, nil)
		transitions = append(transitions, tr)
	}

	sort.Slice(transitions, func(i, j int) bool { return transitions[i].Date < transitions[j].Date })
	return transitions
}
