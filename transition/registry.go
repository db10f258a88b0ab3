// Package transition holds the transition registry (spec.md §4.2, C3) and
// the rule catalog (§4.3, C4): each rule maps a subset of commands to
// partial state updates, or to a deferred closure the fold (package fold)
// dispatches later.
package transition

import (
	"strings"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

// QuatComponents names the four quaternion state keys in canonical order.
var QuatComponents = []string{"q1", "q2", "q3", "q4"}

// PCADStateKeys is the state-key cluster that must be processed jointly
// whenever any one of them is requested — pointing mode, attitude, and
// target attitude are coupled through the maneuver machinery.
var PCADStateKeys = buildPCADStateKeys()

func buildPCADStateKeys() []string {
	keys := append([]string{}, QuatComponents...)
	for _, qc := range QuatComponents {
		keys = append(keys, "targ_"+qc)
	}
	keys = append(keys, "ra", "dec", "roll", "auto_npnt", "pcad_mode", "pitch", "off_nom_roll")
	return keys
}

// Rule is a transition rule: it declares the state keys it affects and
// knows how to turn a command stream into partial updates recorded in an
// Accumulator.
type Rule interface {
	StateKeys() []string
	SetTransitions(acc *Accumulator, cmds []*archive.Command)
}

// DefaultValuer is implemented by rules that declare a fallback value for
// a state key when no lookback search finds a transition (spec.md §4.8).
type DefaultValuer interface {
	DefaultValue(key string) (value.Value, bool)
}

// Registry is the process-wide, ordered catalog of rules. It is built once
// at startup by Register calls from each rule's package-level init, then
// read-only for the remainder of the process.
type Registry struct {
	keys  []string
	byKey map[string][]Rule
	all   []Rule
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string][]Rule)}
}

// Register adds rule to the registry, appending any newly-seen state key
// to the ordered STATE_KEYS list in first-seen order.
func (r *Registry) Register(rule Rule) {
	for _, key := range rule.StateKeys() {
		if _, ok := r.byKey[key]; !ok {
			r.keys = append(r.keys, key)
		}
		r.byKey[key] = append(r.byKey[key], rule)
	}
	r.all = append(r.all, rule)
}

// StateKeys returns every registered state key, in first-seen order.
func (r *Registry) StateKeys() []string {
	return append([]string(nil), r.keys...)
}

// TransitionClasses returns the rules touching any of keys, in
// registration order. A nil keys returns every registered rule.
func (r *Registry) TransitionClasses(keys []string) []Rule {
	if keys == nil {
		return append([]Rule(nil), r.all...)
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []Rule
	for _, rule := range r.all {
		for _, k := range rule.StateKeys() {
			if want[k] {
				out = append(out, rule)
				break
			}
		}
	}
	return out
}

// Default is the registry every built-in rule in this package registers
// itself with via init().
var Default = NewRegistry()

// baseRule implements the common flat-column / parameter equality filter
// shared by most rule shapes (spec.md's BaseTransition.get_state_changing_commands).
type baseRule struct {
	keys          []string
	commandAttrs  map[string]string
	commandParams map[string]string
}

func (b *baseRule) StateKeys() []string { return b.keys }

func (b *baseRule) matches(cmd *archive.Command) bool {
	for k, want := range b.commandAttrs {
		var got string
		switch strings.ToLower(k) {
		case "type":
			got = cmd.Type
		case "tlmsid":
			got = cmd.Tlmsid
		}
		if got != want {
			return false
		}
	}
	for k, want := range b.commandParams {
		v, ok := cmd.Param(k)
		if !ok || v.String() != want {
			return false
		}
	}
	return true
}

func (b *baseRule) stateChangingCommands(cmds []*archive.Command) []*archive.Command {
	var out []*archive.Command
	for _, c := range cmds {
		if b.matches(c) {
			out = append(out, c)
		}
	}
	return out
}
