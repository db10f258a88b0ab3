// Package archive is the Command Store collaborator of spec.md §4.1/§6: a
// queryable, time-ordered, immutable table of commands with an idx-indexed
// parameter dictionary. It is loaded once, lazily, from a sqlite database
// and never mutated afterward.
package archive

import "github.com/orbops/cmdstate/value"

// Command is one row of the command archive: the flat typed columns plus
// an idx into the parameter dictionary. Commands are read-only views into
// the Store that loaded them.
type Command struct {
	Date     string
	Type     string
	Tlmsid   string
	Scs      value.Value
	Step     value.Value
	Q1       value.Value
	Q2       value.Value
	Q3       value.Value
	Q4       value.Value
	Angp     value.Value
	Angy     value.Value
	Coefp    value.Value
	Coefy    value.Value
	Ratep    value.Value
	Ratey    value.Value
	EventType value.Value
	Aopcadse value.Value
	Aopcadsd value.Value
	ID       value.Value
	Pos      value.Value

	idx    int64
	store  *Store
	params map[string]value.Value
}

// Param returns the named parameter, resolving the parameter dictionary
// lazily from the command's idx on first access — matching CommandRow's
// `self['params'][item]` fallback.
func (c *Command) Param(key string) (value.Value, bool) {
	if c.params == nil {
		c.params = c.store.paramsFor(c.idx)
	}
	v, ok := c.params[key]
	return v, ok
}

// Params materializes and returns the full parameter mapping for c.
func (c *Command) Params() map[string]value.Value {
	if c.params == nil {
		c.params = c.store.paramsFor(c.idx)
	}
	return c.params
}

// WithParams returns a copy of c with its parameter map pre-populated,
// bypassing lazy store resolution. Callers that build commands directly
// (tests, fixtures) use this instead of going through a Store.
func (c Command) WithParams(params map[string]value.Value) *Command {
	c.params = params
	return &c
}
