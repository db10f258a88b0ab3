// Package xtime provides the date/time collaborator named in spec.md §6: a
// parse/format/arithmetic/ordering contract over the mission date string
// format "YYYY:DDD:HH:MM:SS.sss" (four-digit year, three-digit day of year,
// zero-padded clock, millisecond fraction). The format is lexicographically
// sortable by construction, matching the Command.Date ordering invariant.
package xtime

import (
	"fmt"
	"time"
)

// Layout is the mission date string format. It sorts lexicographically in
// the same order as chronologically, within the range of years it supports.
const Layout = "2006:002:15:04:05.000"

// FarFuture is the sentinel datestop value used to close the last row of an
// interval table (§3 "State").
const FarFuture = "2099:365:00:00:00.000"

// Time is an instant wrapping a UTC time.Time; Date formats it on each
// call.
type Time struct {
	t time.Time
}

// Zero reports whether t is the zero Time.
func (t Time) Zero() bool { return t.t.IsZero() }

// Parse reads a mission date string. An empty string parses to the zero
// Time rather than an error, since callers routinely pass an absent bound
// through Parse on the way to Store.Filter.
func Parse(s string) (Time, error) {
	if s == "" {
		return Time{}, nil
	}
	tt, err := time.Parse(Layout, s)
	if err != nil {
		return Time{}, fmt.Errorf("xtime: parse %q: %w", s, err)
	}
	return Time{t: tt.UTC()}, nil
}

// MustParse is Parse that panics on error, for test fixtures and literal
// constants in rule tables.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FromTime wraps a time.Time, converted to UTC. Its full precision is kept;
// only the string from Date is limited to milliseconds.
func FromTime(t time.Time) Time { return Time{t: t.UTC()} }

// Now returns the current instant.
func Now() Time { return Time{t: time.Now().UTC()} }

// Date renders t in the mission date string format.
func (t Time) Date() string {
	if t.t.IsZero() {
		return ""
	}
	return t.t.Format(Layout)
}

// Secs returns seconds since the Unix epoch.
func (t Time) Secs() float64 {
	return float64(t.t.UnixNano()) / 1e9
}

// AddDays returns t shifted by n days (n may be negative or fractional).
func (t Time) AddDays(n float64) Time {
	return Time{t: t.t.Add(time.Duration(n * 24 * float64(time.Hour)))}
}

// AddSecs returns t shifted by n seconds.
func (t Time) AddSecs(n float64) Time {
	return Time{t: t.t.Add(time.Duration(n * float64(time.Second)))}
}

// Before reports t < u.
func (t Time) Before(u Time) bool { return t.t.Before(u.t) }

// After reports t > u.
func (t Time) After(u Time) bool { return t.t.After(u.t) }

// Equal reports t == u at full precision.
func (t Time) Equal(u Time) bool { return t.t.Equal(u.t) }

// Compare returns -1, 0 or 1 as t is before, equal to, or after u —
// matching the total ordering invariant of §6's Time collaborator.
func (t Time) Compare(u Time) int {
	switch {
	case t.t.Before(u.t):
		return -1
	case t.t.After(u.t):
		return 1
	default:
		return 0
	}
}

// FromSecs builds a Time from Unix epoch seconds, the unit the maneuver and
// sun-vector sampling math (package attitude) operates in.
func FromSecs(secs float64) Time {
	return Time{t: time.Unix(0, int64(secs*1e9)).UTC()}
}
