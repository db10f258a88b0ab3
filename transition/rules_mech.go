package transition

import (
	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

// fixedRule writes a single fixed (key, value) pair at the date of every
// matching command — the SingleFixedTransition shape of spec.md §4.3.
type fixedRule struct {
	baseRule
	key string
	val value.Value
}

func (r *fixedRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		acc.Set(c.Date, r.key, r.val)
	}
}

// paramRule copies a named command parameter into a state key — the
// ParamTransition shape of spec.md §4.3.
type paramRule struct {
	baseRule
	key      string
	paramKey string
}

func (r *paramRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		v, ok := c.Param(r.paramKey)
		if !ok {
			continue
		}
		acc.Set(c.Date, r.key, v)
	}
}

var hetgInsert = &fixedRule{
	baseRule: baseRule{keys: []string{"hetg"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "4OHETGIN"}},
	key:      "hetg",
	val:      value.Str("INSR"),
}

var hetgRetract = &fixedRule{
	baseRule: baseRule{keys: []string{"hetg"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "4OHETGRE"}},
	key:      "hetg",
	val:      value.Str("RETR"),
}

var letgInsert = &fixedRule{
	baseRule: baseRule{keys: []string{"letg"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "4OLETGIN"}},
	key:      "letg",
	val:      value.Str("INSR"),
}

var letgRetract = &fixedRule{
	baseRule: baseRule{keys: []string{"letg"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "4OLETGRE"}},
	key:      "letg",
	val:      value.Str("RETR"),
}

var simTsc = &paramRule{
	baseRule: baseRule{keys: []string{"simpos"}, commandAttrs: map[string]string{"type": "SIMTRANS"}},
	key:      "simpos",
	paramKey: "pos",
}

var simFocus = &paramRule{
	baseRule: baseRule{keys: []string{"simfa_pos"}, commandAttrs: map[string]string{"type": "SIMFOCUS"}},
	key:      "simfa_pos",
	paramKey: "pos",
}

func init() {
	Default.Register(hetgInsert)
	Default.Register(hetgRetract)
	Default.Register(letgInsert)
	Default.Register(letgRetract)
	Default.Register(simTsc)
	Default.Register(simFocus)
}
