package archive

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure Go driver registered under the "sqlite" name
)

// Schema is the DDL for a fresh command archive database: a commands table
// and an idx-indexed params table standing in for the idx_cmds/pars_dict
// pair the original loads from a pickled HDF5/pickle pair.
const Schema = `
CREATE TABLE IF NOT EXISTS commands (
	date       TEXT NOT NULL,
	type       TEXT NOT NULL,
	tlmsid     TEXT,
	scs        INTEGER,
	step       INTEGER,
	idx        INTEGER NOT NULL,
	q1         REAL,
	q2         REAL,
	q3         REAL,
	q4         REAL,
	angp       REAL,
	angy       REAL,
	coefp      REAL,
	coefy      REAL,
	ratep      REAL,
	ratey      REAL,
	event_type TEXT,
	aopcadse   TEXT,
	aopcadsd   TEXT,
	id         INTEGER,
	pos        TEXT
);
CREATE INDEX IF NOT EXISTS commands_date_idx ON commands(date);

CREATE TABLE IF NOT EXISTS params (
	idx        INTEGER NOT NULL,
	seq        INTEGER NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	value_kind TEXT NOT NULL DEFAULT 'str'
);
CREATE INDEX IF NOT EXISTS params_idx_idx ON params(idx);
`

// InitSchema creates the archive tables in a fresh database, idempotently.
func InitSchema(dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("archive: open %q: %w", dsn, err)
	}
	defer db.Close()
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("archive: init schema: %w", err)
	}
	return nil
}
