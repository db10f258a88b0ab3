package transition

import (
	"testing"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

func TestRegistryCompleteness(t *testing.T) {
	keys := Default.StateKeys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, rule := range Default.TransitionClasses(nil) {
		for _, k := range rule.StateKeys() {
			if !seen[k] {
				t.Errorf("state key %q used by a rule but missing from StateKeys()", k)
			}
		}
	}
}

func TestTransitionClassesFiltersByKey(t *testing.T) {
	rules := Default.TransitionClasses([]string{"hetg"})
	if len(rules) != 2 {
		t.Fatalf("expected exactly 2 rules for hetg, got %d", len(rules))
	}
	for _, r := range rules {
		if r != Rule(hetgInsert) && r != Rule(hetgRetract) {
			t.Errorf("unexpected rule %#v for hetg", r)
		}
	}
}

func TestDitherParamsConversion(t *testing.T) {
	cmd := &archive.Command{
		Date:  "2020:001:00:00:00.000",
		Type:  "MP_DITHER",
		Tlmsid: "AODITPAR",
		Angp:  value.Float(3.141592653589793),
		Angy:  value.Float(3.141592653589793),
		Coefp: value.Float(1.0 / 3600 * 3.141592653589793 / 180),
		Coefy: value.Float(1.0 / 3600 * 3.141592653589793 / 180),
		Ratep: value.Float(2 * 3.141592653589793),
		Ratey: value.Float(2 * 3.141592653589793),
	}
	acc := NewAccumulator()
	ditherParams.SetTransitions(acc, []*archive.Command{cmd})

	transitions := acc.Flatten()
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}

	check := func(key string, want float64) {
		t.Helper()
		upd, ok := transitions[0].At(key)
		if !ok {
			t.Fatalf("missing key %q", key)
		}
		got, _ := upd.Value.Float()
		if diff := got - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("%s = %v, want %v", key, got, want)
		}
	}
	check("dither_phase_pitch", 180)
	check("dither_ampl_pitch", 1)
	check("dither_period_pitch", 1)
}

func TestACISDecodeAndDispatch(t *testing.T) {
	cmd := &archive.Command{Date: "2020:001:00:00:00.000", Type: "ACISPKT", Tlmsid: "WT00C62A"}
	acc := NewAccumulator()
	acis.SetTransitions(acc, []*archive.Command{cmd})

	transitions := acc.Flatten()
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}
	upd, ok := transitions[0].At("si_mode")
	if !ok {
		t.Fatalf("missing si_mode")
	}
	if got, _ := upd.Value.Str(); got != "TE_00C62" {
		t.Errorf("si_mode = %q, want TE_00C62", got)
	}
}

func TestSPMEclipseEnableSchedulesAfterQuickConnect(t *testing.T) {
	t1 := "2020:001:00:00:00.000"
	cmds := []*archive.Command{
		{Date: t1, Tlmsid: "EOESTECN"},
		{Date: "2020:001:00:01:00.000", Type: "ORBPOINT", EventType: value.Str("PENTRY")},
		{Date: "2020:001:00:33:20.000", Type: "ORBPOINT", EventType: value.Str("PEXIT")},
	}
	acc := NewAccumulator()
	spmEclipse.SetTransitions(acc, cmds)

	transitions := acc.Flatten()
	if len(transitions) != 1 {
		t.Fatalf("expected 1 scheduled transition, got %d", len(transitions))
	}
	upd, ok := transitions[0].At("sun_pos_mon")
	if !ok {
		t.Fatalf("missing sun_pos_mon")
	}
	if got, _ := upd.Value.Str(); got != "ENAB" {
		t.Errorf("sun_pos_mon = %q, want ENAB", got)
	}
}

func TestSPMEclipseEnableSkippedOnSlowConnect(t *testing.T) {
	cmds := []*archive.Command{
		{Date: "2020:001:00:00:00.000", Tlmsid: "EOESTECN"},
		{Date: "2020:001:00:02:10.000", Type: "ORBPOINT", EventType: value.Str("PENTRY")},
		{Date: "2020:001:00:33:20.000", Type: "ORBPOINT", EventType: value.Str("PEXIT")},
	}
	acc := NewAccumulator()
	spmEclipse.SetTransitions(acc, cmds)

	if transitions := acc.Flatten(); len(transitions) != 0 {
		t.Fatalf("expected no transitions, got %d", len(transitions))
	}
}
