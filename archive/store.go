package archive

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/orbops/cmdstate/value"
)

// Store is a lazily-loaded command archive backed by a sqlite database. A
// Store is safe for concurrent Filter calls once loaded; the load itself is
// guarded by sync.Once, matching the LazyVal one-shot pattern: first access
// triggers the load, later accesses observe the loaded value without
// further synchronization.
type Store struct {
	dsn string

	once    sync.Once
	loadErr error
	cmds    []*Command
	params  map[int64][]paramEntry // idx -> ordered (key, value) pairs
}

type paramEntry struct {
	key string
	val value.Value
}

// Open returns a Store reading from the sqlite database at dsn. No I/O
// happens until the first Filter call.
func Open(dsn string) *Store {
	return &Store{dsn: dsn}
}

func (s *Store) load() {
	s.once.Do(func() {
		db, err := sql.Open("sqlite", s.dsn)
		if err != nil {
			s.loadErr = fmt.Errorf("archive: open %q: %w", s.dsn, err)
			return
		}
		defer db.Close()

		if err := s.loadCommands(db); err != nil {
			s.loadErr = err
			return
		}
		if err := s.loadParams(db); err != nil {
			s.loadErr = err
			return
		}
	})
}

func (s *Store) loadCommands(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT date, type, tlmsid, scs, step, idx,
		       q1, q2, q3, q4, angp, angy, coefp, coefy, ratep, ratey,
		       event_type, aopcadse, aopcadsd, id, pos
		FROM commands ORDER BY date ASC`)
	if err != nil {
		return fmt.Errorf("archive: query commands: %w", err)
	}
	defer rows.Close()

	var cmds []*Command
	for rows.Next() {
		var (
			date, typ                                      string
			tlmsid                                         sql.NullString
			scs, step                                       sql.NullInt64
			idx                                            int64
			q1, q2, q3, q4, angp, angy, coefp, coefy, ratep, ratey sql.NullFloat64
			eventType, aopcadse, aopcadsd                  sql.NullString
			id                                              sql.NullInt64
			pos                                             sql.NullString
		)
		if err := rows.Scan(&date, &typ, &tlmsid, &scs, &step, &idx,
			&q1, &q2, &q3, &q4, &angp, &angy, &coefp, &coefy, &ratep, &ratey,
			&eventType, &aopcadse, &aopcadsd, &id, &pos); err != nil {
			return fmt.Errorf("archive: scan command row: %w", err)
		}
		c := &Command{
			Date:      date,
			Type:      typ,
			Tlmsid:    nullStringVal(tlmsid),
			Scs:       nullIntVal(scs),
			Step:      nullIntVal(step),
			Q1:        nullFloatVal(q1),
			Q2:        nullFloatVal(q2),
			Q3:        nullFloatVal(q3),
			Q4:        nullFloatVal(q4),
			Angp:      nullFloatVal(angp),
			Angy:      nullFloatVal(angy),
			Coefp:     nullFloatVal(coefp),
			Coefy:     nullFloatVal(coefy),
			Ratep:     nullFloatVal(ratep),
			Ratey:     nullFloatVal(ratey),
			EventType: nullStringValV(eventType),
			Aopcadse:  nullStringValV(aopcadse),
			Aopcadsd:  nullStringValV(aopcadsd),
			ID:        nullIntVal(id),
			Pos:       nullStringValV(pos),
			idx:       idx,
			store:     s,
		}
		cmds = append(cmds, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("archive: iterate commands: %w", err)
	}
	s.cmds = cmds
	return nil
}

func (s *Store) loadParams(db *sql.DB) error {
	rows, err := db.Query(`SELECT idx, key, value, value_kind FROM params ORDER BY idx ASC, seq ASC`)
	if err != nil {
		return fmt.Errorf("archive: query params: %w", err)
	}
	defer rows.Close()

	params := make(map[int64][]paramEntry)
	for rows.Next() {
		var idx int64
		var key, kind string
		var raw string
		if err := rows.Scan(&idx, &key, &raw, &kind); err != nil {
			return fmt.Errorf("archive: scan param row: %w", err)
		}
		params[idx] = append(params[idx], paramEntry{key: key, val: decodeParamValue(raw, kind)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("archive: iterate params: %w", err)
	}
	s.params = params
	return nil
}

func decodeParamValue(raw, kind string) value.Value {
	switch kind {
	case "int":
		var i int64
		fmt.Sscanf(raw, "%d", &i)
		return value.Int(i)
	case "float":
		var f float64
		fmt.Sscanf(raw, "%g", &f)
		return value.Float(f)
	default:
		return value.Str(raw)
	}
}

// paramsFor materializes the idx -> params map for one command, matching
// CommandRow's lazy `dict(rev_pars_dict[idx])` construction.
func (s *Store) paramsFor(idx int64) map[string]value.Value {
	s.load()
	entries := s.params[idx]
	out := make(map[string]value.Value, len(entries))
	for _, e := range entries {
		out[e.key] = e.val
	}
	return out
}

// Filter returns commands with start <= date < stop, further restricted by
// case-insensitive attr equality predicates, matching the flat-column /
// parameter-tuple two-phase predicate of spec.md §4.1/§9. An attrs key not
// found among the flat columns falls back to scanning the parameter
// dictionary for idx values whose parameter tuple satisfies it.
func (s *Store) Filter(start, stop string, attrs map[string]string) ([]*Command, error) {
	s.load()
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	matchingIdx := make(map[int64]bool)
	var paramKeys []string
	for key := range attrs {
		if !isFlatColumn(key) {
			paramKeys = append(paramKeys, key)
		}
	}
	for _, key := range paramKeys {
		want := strings.ToUpper(attrs[key])
		for idx, entries := range s.params {
			for _, e := range entries {
				if !strings.EqualFold(e.key, key) {
					continue
				}
				if valueUpper(e.val) == want {
					matchingIdx[idx] = true
				}
			}
		}
	}

	var out []*Command
	for _, c := range s.cmds {
		if start != "" && c.Date < start {
			continue
		}
		if stop != "" && c.Date >= stop {
			continue
		}
		if !matchesFlatAttrs(c, attrs) {
			continue
		}
		if len(paramKeys) > 0 && !matchingIdx[c.idx] {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func valueUpper(v value.Value) string {
	switch v.Kind() {
	case value.StringKind:
		s, _ := v.Str()
		return strings.ToUpper(s)
	default:
		return strings.ToUpper(v.String())
	}
}

func isFlatColumn(key string) bool {
	switch strings.ToLower(key) {
	case "type", "tlmsid", "scs", "step", "q1", "q2", "q3", "q4",
		"angp", "angy", "coefp", "coefy", "ratep", "ratey",
		"event_type", "aopcadse", "aopcadsd", "id", "pos":
		return true
	default:
		return false
	}
}

func matchesFlatAttrs(c *Command, attrs map[string]string) bool {
	for key, want := range attrs {
		if !isFlatColumn(key) {
			continue
		}
		want = strings.ToUpper(want)
		var got string
		switch strings.ToLower(key) {
		case "type":
			got = strings.ToUpper(c.Type)
		case "tlmsid":
			got = strings.ToUpper(c.Tlmsid)
		case "scs":
			got = valueUpper(c.Scs)
		case "step":
			got = valueUpper(c.Step)
		case "q1":
			got = valueUpper(c.Q1)
		case "q2":
			got = valueUpper(c.Q2)
		case "q3":
			got = valueUpper(c.Q3)
		case "q4":
			got = valueUpper(c.Q4)
		case "angp":
			got = valueUpper(c.Angp)
		case "angy":
			got = valueUpper(c.Angy)
		case "coefp":
			got = valueUpper(c.Coefp)
		case "coefy":
			got = valueUpper(c.Coefy)
		case "ratep":
			got = valueUpper(c.Ratep)
		case "ratey":
			got = valueUpper(c.Ratey)
		case "event_type":
			got = valueUpper(c.EventType)
		case "aopcadse":
			got = valueUpper(c.Aopcadse)
		case "aopcadsd":
			got = valueUpper(c.Aopcadsd)
		case "id":
			got = valueUpper(c.ID)
		case "pos":
			got = valueUpper(c.Pos)
		}
		if got != want {
			return false
		}
	}
	return true
}

func nullStringVal(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func nullStringValV(s sql.NullString) value.Value {
	if !s.Valid {
		return value.None()
	}
	return value.Str(s.String)
}

func nullIntVal(i sql.NullInt64) value.Value {
	if !i.Valid {
		return value.None()
	}
	return value.Int(i.Int64)
}

func nullFloatVal(f sql.NullFloat64) value.Value {
	if !f.Valid {
		return value.None()
	}
	return value.Float(f.Float64)
}
