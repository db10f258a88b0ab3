package events

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/xtime"
)

func TestObsidChangeModelFindsTransitions(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cmds.db")
	require.NoError(t, archive.InitSchema(dsn))

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`INSERT INTO commands (date, type, idx) VALUES
		('2020:001:00:00:00.000', 'MP_OBSID', 1),
		('2020:002:00:00:00.000', 'MP_OBSID', 2)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO params (idx, seq, key, value, value_kind) VALUES
		(1, 0, 'id', '100', 'int'),
		(2, 0, 'id', '200', 'int')`)
	require.NoError(t, err)

	model := &ObsidChangeModel{Store: archive.Open(dsn)}
	events, err := model.GetEvents(context.Background(),
		xtime.MustParse("2020:001:00:00:00.000"), xtime.MustParse("2020:003:00:00:00.000"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "100", events[0].Fields["obsid"])
	assert.Equal(t, "200", events[1].Fields["obsid"])
}

func TestObsidChangeModelEmptyWindowReturnsNoEvents(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cmds.db")
	require.NoError(t, archive.InitSchema(dsn))

	model := &ObsidChangeModel{Store: archive.Open(dsn)}
	events, err := model.GetEvents(context.Background(),
		xtime.MustParse("2020:001:00:00:00.000"), xtime.MustParse("2020:003:00:00:00.000"))
	require.NoError(t, err)
	assert.Empty(t, events)
}
