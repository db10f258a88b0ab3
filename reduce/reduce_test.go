package reduce

import (
	"testing"

	"github.com/orbops/cmdstate/fold"
	"github.com/orbops/cmdstate/value"
)

func buildTable(obsids []string, dates []string) *fold.IntervalTable {
	n := len(obsids)
	datestart := append([]string(nil), dates...)
	datestop := make([]string, n)
	for i := 0; i < n-1; i++ {
		datestop[i] = dates[i+1]
	}
	datestop[n-1] = "2099:365:00:00:00.000"

	states := make([]map[string]value.Value, n)
	for i := range states {
		states[i] = map[string]value.Value{
			"obsid": value.Str(obsids[i]),
			"hetg":  value.Str("INSR"),
		}
	}
	return &fold.IntervalTable{Keys: []string{"obsid", "hetg"}, Datestart: datestart, Datestop: datestop, States: states}
}

func TestReducerScenarioS5(t *testing.T) {
	dates := []string{
		"2020:001:00:00:00.000", "2020:002:00:00:00.000", "2020:003:00:00:00.000",
		"2020:004:00:00:00.000", "2020:005:00:00:00.000",
	}
	table := buildTable([]string{"A", "A", "B", "B", "C"}, dates)

	reduced := Reduce(table, []string{"obsid"})
	if reduced.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", reduced.Len())
	}
	want := []string{"A", "B", "C"}
	for i, w := range want {
		v, _ := reduced.Get(i, "obsid")
		if got, _ := v.Str(); got != w {
			t.Errorf("row %d obsid = %q, want %q", i, got, w)
		}
	}
	if reduced.Datestop[0] != dates[2] {
		t.Errorf("row0 datestop = %q, want %q", reduced.Datestop[0], dates[2])
	}
	if reduced.Datestop[2] != "2099:365:00:00:00.000" {
		t.Errorf("last datestop = %q", reduced.Datestop[2])
	}
}

func TestReducerIdempotence(t *testing.T) {
	dates := []string{
		"2020:001:00:00:00.000", "2020:002:00:00:00.000", "2020:003:00:00:00.000",
	}
	table := buildTable([]string{"A", "A", "B"}, dates)

	once := Reduce(table, []string{"obsid"})
	twice := Reduce(once, []string{"obsid"})

	if once.Len() != twice.Len() {
		t.Fatalf("reduce is not idempotent: %d rows vs %d rows", once.Len(), twice.Len())
	}
	for i := 0; i < once.Len(); i++ {
		a, _ := once.Get(i, "obsid")
		b, _ := twice.Get(i, "obsid")
		if !a.Equal(b) {
			t.Errorf("row %d differs after second reduce: %v vs %v", i, a, b)
		}
		if once.Datestart[i] != twice.Datestart[i] || once.Datestop[i] != twice.Datestop[i] {
			t.Errorf("row %d bounds differ after second reduce", i)
		}
	}
}

func TestReducerKeepsRowZeroEvenWithoutChange(t *testing.T) {
	dates := []string{"2020:001:00:00:00.000", "2020:002:00:00:00.000"}
	table := buildTable([]string{"A", "A"}, dates)

	reduced := Reduce(table, []string{"obsid"})
	if reduced.Len() != 1 {
		t.Fatalf("expected row 0 to survive even with zero transitions, got %d rows", reduced.Len())
	}
}
