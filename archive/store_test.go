package archive

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cmds.db")
	require.NoError(t, InitSchema(dsn))

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return Open(dsn), db
}

func insertCommand(t *testing.T, db *sql.DB, date, typ, tlmsid string, idx int64) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO commands (date, type, tlmsid, idx) VALUES (?, ?, ?, ?)`,
		date, typ, tlmsid, idx)
	require.NoError(t, err)
}

func insertParam(t *testing.T, db *sql.DB, idx, seq int64, key, val, kind string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO params (idx, seq, key, value, value_kind) VALUES (?, ?, ?, ?, ?)`,
		idx, seq, key, val, kind)
	require.NoError(t, err)
}

func TestFilterTimeWindowHalfOpen(t *testing.T) {
	store, db := newTestStore(t)
	insertCommand(t, db, "2020:001:00:00:00.000", "MP_OBSID", "", 1)
	insertCommand(t, db, "2020:002:00:00:00.000", "MP_OBSID", "", 1)
	insertCommand(t, db, "2020:003:00:00:00.000", "MP_OBSID", "", 1)

	cmds, err := store.Filter("2020:001:00:00:00.000", "2020:003:00:00:00.000", nil)
	require.NoError(t, err)
	assert.Len(t, cmds, 2)
	assert.Equal(t, "2020:001:00:00:00.000", cmds[0].Date)
	assert.Equal(t, "2020:002:00:00:00.000", cmds[1].Date)
}

func TestFilterFlatColumnCaseInsensitive(t *testing.T) {
	store, db := newTestStore(t)
	insertCommand(t, db, "2020:001:00:00:00.000", "MP_TARGQUAT", "AOUPTARQ", 1)
	insertCommand(t, db, "2020:002:00:00:00.000", "MP_OBSID", "", 2)

	cmds, err := store.Filter("", "", map[string]string{"type": "mp_targquat"})
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, "MP_TARGQUAT", cmds[0].Type)
}

func TestFilterParamFallback(t *testing.T) {
	store, db := newTestStore(t)
	insertCommand(t, db, "2020:001:00:00:00.000", "MP_OBSID", "", 42)
	insertParam(t, db, 42, 0, "target_id", "23456", "int")

	cmds, err := store.Filter("", "", map[string]string{"target_id": "23456"})
	require.NoError(t, err)
	require.Len(t, cmds, 1)

	v, ok := cmds[0].Param("target_id")
	require.True(t, ok)
	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(23456), i)
}

func TestParamsLazyLoadResolvesIdx(t *testing.T) {
	store, db := newTestStore(t)
	insertCommand(t, db, "2020:001:00:00:00.000", "MP_OBSID", "", 7)
	insertParam(t, db, 7, 0, "id", "99", "int")

	cmds, err := store.Filter("", "", nil)
	require.NoError(t, err)
	require.Len(t, cmds, 1)

	params := cmds[0].Params()
	assert.Contains(t, params, "id")

	_, err = os.Stat(store.dsn)
	require.NoError(t, err)
}
