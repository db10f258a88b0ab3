package fold

import (
	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/attitude"
	"github.com/orbops/cmdstate/transition"
	"github.com/orbops/cmdstate/value"
	"github.com/orbops/cmdstate/xtime"
)

// GetStatesForCmds is the state folder (C6, spec.md §4.6): a single linear
// pass over a sorted transition list that produces the interval table,
// executing deferred closures that may insert later transitions as they
// run. Warnings (non-fatal UnknownState0KeyError) are returned alongside
// a fatal error, matching the "recoverable vs. fatal" split of spec.md §7.
func GetStatesForCmds(reg *transition.Registry, cmds []*archive.Command, stateKeys []string, state0 map[string]value.Value) (*IntervalTable, []error, error) {
	keys := ExpandKeys(reg, stateKeys)
	transitions := BuildTransitions(reg, cmds, stateKeys)

	if len(transitions) == 0 {
		return nil, nil, &NoTransitionsError{Keys: keys}
	}

	state := make(map[string]value.Value, len(keys))
	for _, k := range keys {
		state[k] = value.None()
	}

	var warnings []error
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	for k, v := range state0 {
		if known[k] {
			state[k] = v
		} else {
			warnings = append(warnings, &UnknownState0KeyError{Key: k})
		}
	}

	states := []map[string]value.Value{state}
	datestarts := []string{transitions[0].Date}

	for idx := 0; idx < len(transitions); idx++ {
		t := transitions[idx]

		if t.Date != datestarts[len(datestarts)-1] {
			state = copyState(state)
			states = append(states, state)
			datestarts = append(datestarts, t.Date)
		}

		for _, key := range t.Keys() {
			upd, _ := t.At(key)
			switch upd.Kind {
			case transition.SetValue:
				state[key] = upd.Value
			case transition.Maneuver:
				if err := applyManeuverClosure(&transitions, idx, t.Date, state, upd.Cmd); err != nil {
					return nil, warnings, err
				}
			case transition.NormalSun:
				if err := applyNormalSunClosure(&transitions, idx, t.Date, state, upd.Cmd); err != nil {
					return nil, warnings, err
				}
			case transition.SunVectorSample:
				applySunVectorSample(t.Date, state)
			}
		}
	}

	datestops := make([]string, len(datestarts))
	for i := 0; i < len(datestarts)-1; i++ {
		datestops[i] = datestarts[i+1]
	}
	datestops[len(datestarts)-1] = xtime.FarFuture

	return &IntervalTable{Keys: keys, Datestart: datestarts, Datestop: datestops, States: states}, warnings, nil
}

// addTransition inserts t into *list at the first position after idx
// whose date is strictly greater than t's date, matching spec.md §4.7. It
// rejects a transition dated before the fold's current position; one dated
// the same as the current position is accepted.
func addTransition(list *[]*transition.Transition, idx int, t *transition.Transition) error {
	cur := (*list)[idx]
	if t.Date < cur.Date {
		return &InsertionOrderingError{New: t.Date, Current: cur.Date}
	}
	for j := idx + 1; j < len(*list); j++ {
		if t.Date < (*list)[j].Date {
			*list = append(*list, nil)
			copy((*list)[j+1:], (*list)[j:len(*list)-1])
			(*list)[j] = t
			return nil
		}
	}
	*list = append(*list, t)
	return nil
}

func quatFromState(state map[string]value.Value, prefix string) attitude.Quat {
	get := func(k string) float64 {
		v, ok := state[prefix+k]
		if !ok {
			return 0
		}
		f, _ := v.Float()
		return f
	}
	return attitude.NewQuat(get("q1"), get("q2"), get("q3"), get("q4"))
}

// addManeuverTransitions samples the trajectory from the current attitude
// to the target attitude and inserts one transition per sample, matching
// spec.md §4.6's maneuver-closure behavior. It returns the date of the
// final sample (end of maneuver).
func addManeuverTransitions(list *[]*transition.Transition, idx int, state map[string]value.Value, cmd *archive.Command) (string, error) {
	if state["q1"].IsAbsent() {
		for _, qc := range transition.QuatComponents {
			state[qc] = state["targ_"+qc]
		}
	}

	curr := quatFromState(state, "")
	targ := quatFromState(state, "targ_")
	tstart := xtime.MustParse(cmd.Date).Secs()
	samples := attitude.Attitudes(curr, targ, tstart)

	var lastDate string
	n := len(samples)
	for i, s := range samples {
		var pitch, offNomRoll float64
		if i < n-1 {
			pitch = (samples[i].Pitch + samples[i+1].Pitch) / 2
			offNomRoll = (samples[i].OffNomRoll + samples[i+1].OffNomRoll) / 2
		} else {
			pitch = s.Pitch
			offNomRoll = s.OffNomRoll
		}

		sampleDate := xtime.FromSecs(s.TimeSecs).Date()
		tr := transition.NewTransition(sampleDate)
		tr.Set("q1", value.Float(s.Q[0]))
		tr.Set("q2", value.Float(s.Q[1]))
		tr.Set("q3", value.Float(s.Q[2]))
		tr.Set("q4", value.Float(s.Q[3]))
		tr.Set("pitch", value.Float(pitch))
		tr.Set("off_nom_roll", value.Float(offNomRoll))
		tr.Set("ra", value.Float(s.Q.RA()))
		tr.Set("dec", value.Float(s.Q.Dec()))
		tr.Set("roll", value.Float(s.Q.Roll()))

		if err := addTransition(list, idx, tr); err != nil {
			return "", err
		}
		lastDate = sampleDate
	}
	return lastDate, nil
}

// applyManeuverClosure runs addManeuverTransitions and, when auto_npnt is
// enabled, inserts one further transition at the end date setting
// pcad_mode='NPNT' (spec.md §4.6).
func applyManeuverClosure(list *[]*transition.Transition, idx int, date string, state map[string]value.Value, cmd *archive.Command) error {
	endDate, err := addManeuverTransitions(list, idx, state, cmd)
	if err != nil {
		return err
	}
	if s, ok := state["auto_npnt"].Str(); ok && s == "ENAB" {
		tr := transition.NewTransition(endDate)
		tr.Set("pcad_mode", value.Str("NPNT"))
		if err := addTransition(list, idx, tr); err != nil {
			return err
		}
	}
	return nil
}

// applyNormalSunClosure transitions pcad_mode to NSUN, computes a
// sun-pointed target attitude from the current attitude, then runs the
// same maneuver expansion as applyManeuverClosure — without the
// auto_npnt follow-up (spec.md §4.3 "Normal-sun maneuver").
func applyNormalSunClosure(list *[]*transition.Transition, idx int, date string, state map[string]value.Value, cmd *archive.Command) error {
	state["pcad_mode"] = value.Str("NSUN")

	curr := quatFromState(state, "")
	nsmDate := xtime.MustParse(cmd.Date)
	targ := attitude.NSMAttitude(curr, nsmDate)
	state["targ_q1"] = value.Float(targ[0])
	state["targ_q2"] = value.Float(targ[1])
	state["targ_q3"] = value.Float(targ[2])
	state["targ_q4"] = value.Float(targ[3])

	_, err := addManeuverTransitions(list, idx, state, cmd)
	return err
}

// applySunVectorSample recomputes pitch/off_nom_roll from the current
// attitude when pcad_mode is NPNT; otherwise it is a no-op (spec.md §4.5).
func applySunVectorSample(date string, state map[string]value.Value) {
	pcadMode, _ := state["pcad_mode"].Str()
	if pcadMode != "NPNT" {
		return
	}
	q := quatFromState(state, "")
	d := xtime.MustParse(date)
	state["pitch"] = value.Float(attitude.SunPitch(q.RA(), q.Dec(), d))
	state["off_nom_roll"] = value.Float(attitude.SunOffNominalRoll(q, d))
}
