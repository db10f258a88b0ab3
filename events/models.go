package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/fold"
	"github.com/orbops/cmdstate/transition"
	"github.com/orbops/cmdstate/xtime"
)

// ObsidChangeModel discovers one event per commanded observation-ID
// change, the simplest event type the original events database tracks
// (an observation's start is a MP_OBSID command taking effect).
type ObsidChangeModel struct {
	Store    *archive.Store
	Registry *transition.Registry
}

func (m *ObsidChangeModel) Name() string      { return "obsid_change" }
func (m *ObsidChangeModel) Lookback() float64 { return 3 }

func (m *ObsidChangeModel) GetEvents(ctx context.Context, start, stop xtime.Time) ([]Event, error) {
	reg := m.Registry
	if reg == nil {
		reg = transition.Default
	}

	cmds, err := m.Store.Filter(start.Date(), stop.Date(), map[string]string{"type": "MP_OBSID"})
	if err != nil {
		return nil, fmt.Errorf("obsid_change: filter: %w", err)
	}
	if len(cmds) == 0 {
		return nil, nil
	}

	table, _, err := fold.GetStatesForCmds(reg, cmds, []string{"obsid"}, nil)
	if err != nil {
		var noTrans *fold.NoTransitionsError
		if errors.As(err, &noTrans) {
			return nil, nil
		}
		return nil, fmt.Errorf("obsid_change: fold: %w", err)
	}

	out := make([]Event, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		v, _ := table.Get(i, "obsid")
		obsid, _ := v.Int()
		out = append(out, Event{
			Start:  table.Datestart[i],
			Fields: map[string]string{"obsid": strconv.FormatInt(obsid, 10)},
		})
	}
	return out, nil
}

