package transition

import (
	"sort"

	"github.com/iancoleman/orderedmap"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

// Kind identifies what an Update does to the fold: assign a value directly,
// or defer to one of the fold's closure bodies (spec.md §9 DESIGN NOTES:
// "Deferred closures ... become a tagged-union update").
type Kind int

const (
	// SetValue assigns Value to the state key directly.
	SetValue Kind = iota
	// Maneuver dispatches to the fold's maneuver closure, carrying the
	// triggering AOMANUVR command.
	Maneuver
	// NormalSun dispatches to the fold's normal-sun-maneuver closure,
	// carrying the triggering AONSMSAF command.
	NormalSun
	// SunVectorSample dispatches to the fold's pitch/off-nominal-roll
	// resample closure. It carries no command.
	SunVectorSample
)

// Update is one state-key entry within a Transition: either a value to
// assign directly, or a deferred closure kind plus the command (if any)
// that triggered it.
type Update struct {
	Kind  Kind
	Value value.Value
	Cmd   *archive.Command
}

// Transition is a dated partial state update: a date plus an order-preserving
// mapping from state key to Update. Key order matters — per spec.md §9, the
// fold visits keys in the insertion order of the per-date mapping.
type Transition struct {
	Date    string
	Updates *orderedmap.OrderedMap
}

// Accumulator collects partial updates keyed by date while transition rules
// run, matching the defaultdict(dict) in get_transitions_list. Missing
// dates auto-create an empty ordered map on first write.
type Accumulator struct {
	byDate map[string]*orderedmap.OrderedMap
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{byDate: make(map[string]*orderedmap.OrderedMap)}
}

func (a *Accumulator) dateMap(date string) *orderedmap.OrderedMap {
	om, ok := a.byDate[date]
	if !ok {
		om = orderedmap.New()
		a.byDate[date] = om
	}
	return om
}

// Set records a direct value assignment for key at date.
func (a *Accumulator) Set(date, key string, v value.Value) {
	a.dateMap(date).Set(key, Update{Kind: SetValue, Value: v})
}

// SetDeferred records a deferred closure for key at date.
func (a *Accumulator) SetDeferred(date, key string, kind Kind, cmd *archive.Command) {
	a.dateMap(date).Set(key, Update{Kind: kind, Cmd: cmd})
}

// Flatten produces the sorted transition list (spec.md §4.4 step 3).
func (a *Accumulator) Flatten() []*Transition {
	dates := make([]string, 0, len(a.byDate))
	for d := range a.byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]*Transition, len(dates))
	for i, d := range dates {
		out[i] = &Transition{Date: d, Updates: a.byDate[d]}
	}
	return out
}

// NewTransition returns an empty Transition at date, for use by the fold
// when a closure inserts a brand-new transition (spec.md §4.6/§4.7).
func NewTransition(date string) *Transition {
	return &Transition{Date: date, Updates: orderedmap.New()}
}

// Set records a direct value assignment on t.
func (t *Transition) Set(key string, v value.Value) {
	t.Updates.Set(key, Update{Kind: SetValue, Value: v})
}

// SetDeferred records a deferred closure on t.
func (t *Transition) SetDeferred(key string, kind Kind, cmd *archive.Command) {
	t.Updates.Set(key, Update{Kind: kind, Cmd: cmd})
}

// At returns the Update stored under key in t, if any.
func (t *Transition) At(key string) (Update, bool) {
	v, ok := t.Updates.Get(key)
	if !ok {
		return Update{}, false
	}
	return v.(Update), true
}

// Keys returns t's state keys in insertion order.
func (t *Transition) Keys() []string {
	return t.Updates.Keys()
}
