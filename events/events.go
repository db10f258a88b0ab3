// Package events is the idempotent events-database updater collaborator
// named in spec.md §6: it iterates registered event models and writes
// newly-discovered events to persistent storage in a single transaction
// per model and update date, guaranteeing that re-running with an overlapping window
// never duplicates an event.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"

	"github.com/orbops/cmdstate/xtime"
)

// Event is one discovered occurrence: a natural key (Start) plus an
// arbitrary set of column values to persist.
type Event struct {
	Start  string
	Fields map[string]string
}

// EventModel supplies one event type's name, lookback window, and how to
// discover events over [start, stop), matching the original's
// EventModel.get_events/name/lookback contract.
type EventModel interface {
	Name() string
	Lookback() float64
	GetEvents(ctx context.Context, start, stop xtime.Time) ([]Event, error)
}

// Options configures one Run invocation.
type Options struct {
	DateNow   xtime.Time
	DateStart xtime.Time // zero means only DateNow is processed; else every 30-day step from DateStart, each resuming from the model's last recorded update
	Models    []string   // nil means every registered model
}

// Run updates every model in models (filtered by opts.Models, if set) up
// to opts.DateNow, stepping opts.DateStart forward in 30-day increments
// when it's set and earlier than opts.DateNow — porting the original
// CLI's --date-start/--date-now loop.
func Run(ctx context.Context, db *sql.DB, models []EventModel, opts Options) error {
	if err := initSchema(db); err != nil {
		return err
	}

	dateNow := opts.DateNow
	if dateNow.Zero() {
		dateNow = xtime.Now()
	}

	dateNows := []xtime.Time{dateNow}
	if !opts.DateStart.Zero() {
		dateNows = stepDates(opts.DateStart, dateNow, 30)
	}

	wanted := make(map[string]bool, len(opts.Models))
	for _, m := range opts.Models {
		wanted[m] = true
	}

	for _, model := range models {
		if len(wanted) > 0 && !wanted[model.Name()] {
			continue
		}
		for _, when := range dateNows {
			if err := update(ctx, db, model, when); err != nil {
				return fmt.Errorf("events: update %s to %s: %w", model.Name(), when.Date(), err)
			}
		}
	}
	return nil
}

func stepDates(start, stop xtime.Time, stepDays float64) []xtime.Time {
	var out []xtime.Time
	for t := start; t.Before(stop); t = t.AddDays(stepDays) {
		out = append(out, t)
	}
	out = append(out, stop)
	return out
}

// update is the per-model, per-date body of the original's update()
// function: resolve the last processed date, fetch events since then, and
// idempotently insert any not already present, all within one transaction.
func update(ctx context.Context, db *sql.DB, model EventModel, dateNow xtime.Time) error {
	name := model.Name()
	log.Printf("events: updating %s to %s", name, dateNow.Date())

	dateStart, err := lastUpdateDate(ctx, db, name)
	if err != nil {
		return err
	}
	if dateStart.Zero() {
		dateStart = dateNow
	}

	lookbackStart := dateStart.AddDays(-model.Lookback())
	found, err := model.GetEvents(ctx, lookbackStart, dateNow)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("events: begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range found {
		if err := insertEvent(tx, name, ev); err != nil {
			return err
		}
	}
	if err := recordUpdate(tx, name, dateNow); err != nil {
		return err
	}

	return tx.Commit()
}

func insertEvent(tx *sql.Tx, model string, ev Event) error {
	res, err := tx.Exec(`INSERT OR IGNORE INTO events (model, start) VALUES (?, ?)`, model, ev.Start)
	if err != nil {
		return fmt.Errorf("events: insert event %s@%s: %w", model, ev.Start, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("events: rows affected: %w", err)
	}
	if n == 0 {
		log.Printf("events: skipping %s at %s: already in database", model, ev.Start)
		return nil
	}

	var eventID int64
	row := tx.QueryRow(`SELECT id FROM events WHERE model = ? AND start = ?`, model, ev.Start)
	if err := row.Scan(&eventID); err != nil {
		return fmt.Errorf("events: read back event id: %w", err)
	}
	for key, val := range ev.Fields {
		if _, err := tx.Exec(`INSERT INTO event_fields (event_id, key, value) VALUES (?, ?, ?)`, eventID, key, val); err != nil {
			return fmt.Errorf("events: insert field %s for %s@%s: %w", key, model, ev.Start, err)
		}
	}
	log.Printf("events: added %s %s", model, ev.Start)
	return nil
}

func lastUpdateDate(ctx context.Context, db *sql.DB, model string) (xtime.Time, error) {
	var date string
	row := db.QueryRowContext(ctx, `SELECT date FROM updates WHERE model = ?`, model)
	switch err := row.Scan(&date); err {
	case nil:
		return xtime.Parse(date)
	case sql.ErrNoRows:
		return xtime.Time{}, nil
	default:
		return xtime.Time{}, fmt.Errorf("events: read last update for %s: %w", model, err)
	}
}

func recordUpdate(tx *sql.Tx, model string, date xtime.Time) error {
	_, err := tx.Exec(`INSERT INTO updates (model, date) VALUES (?, ?)
		ON CONFLICT(model) DO UPDATE SET date = excluded.date`, model, date.Date())
	if err != nil {
		return fmt.Errorf("events: record update for %s: %w", model, err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	model TEXT NOT NULL,
	start TEXT NOT NULL,
	UNIQUE(model, start)
);
CREATE TABLE IF NOT EXISTS event_fields (
	event_id INTEGER NOT NULL REFERENCES events(id),
	key      TEXT NOT NULL,
	value    TEXT
);
CREATE TABLE IF NOT EXISTS updates (
	model TEXT PRIMARY KEY,
	date  TEXT NOT NULL
);
`

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("events: init schema: %w", err)
	}
	return nil
}
