// Package value holds the tagged scalar used for command parameters and
// state-key values throughout the engine: string, integer, float, or
// absent. Absent is distinct from "set to zero" — the fold (package fold)
// depends on that distinction to tell "never commanded" from "commanded to
// a falsy value".
package value

import "fmt"

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	Absent Kind = iota
	StringKind
	IntKind
	FloatKind
)

// Value is a nullable tagged scalar. The zero Value is Absent.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
}

// None returns the absent value.
func None() Value { return Value{} }

// Str wraps a string.
func Str(s string) Value { return Value{kind: StringKind, str: s} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: IntKind, i: i} }

// Float wraps a float.
func Float(f float64) Value { return Value{kind: FloatKind, f: f} }

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return v.kind == Absent }

// Kind returns the populated alternative.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string alternative and whether v held one.
func (v Value) Str() (string, bool) { return v.str, v.kind == StringKind }

// Int returns the integer alternative and whether v held one.
func (v Value) Int() (int64, bool) { return v.i, v.kind == IntKind }

// Float returns the float alternative, also accepting an Int-kind Value
// (commands frequently carry integral quantities that feed float formulas).
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case FloatKind:
		return v.f, true
	case IntKind:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Equal compares two values by kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case StringKind:
		return v.str == other.str
	case IntKind:
		return v.i == other.i
	case FloatKind:
		return v.f == other.f
	default:
		return true // both Absent
	}
}

// String renders v for logs and test failure messages.
func (v Value) String() string {
	switch v.kind {
	case StringKind:
		return v.str
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	case FloatKind:
		return fmt.Sprintf("%g", v.f)
	default:
		return "<absent>"
	}
}
