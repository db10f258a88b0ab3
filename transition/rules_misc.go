package transition

import (
	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
	"github.com/orbops/cmdstate/xtime"
)

var obsidRule = &paramRule{
	baseRule: baseRule{keys: []string{"obsid"}, commandAttrs: map[string]string{"type": "MP_OBSID"}},
	key:      "obsid",
	paramKey: "id",
}

var spmEnable = &fixedRule{
	baseRule: baseRule{
		keys:          []string{"sun_pos_mon"},
		commandAttrs:  map[string]string{"type": "COMMAND_SW", "tlmsid": "AOFUNCEN"},
		commandParams: map[string]string{"aopcadse": "30"},
	},
	key: "sun_pos_mon",
	val: value.Str("ENAB"),
}

var spmDisable = &fixedRule{
	baseRule: baseRule{
		keys:          []string{"sun_pos_mon"},
		commandAttrs:  map[string]string{"type": "COMMAND_SW", "tlmsid": "AOFUNCDS"},
		commandParams: map[string]string{"aopcadsd": "30"},
	},
	key: "sun_pos_mon",
	val: value.Str("DISA"),
}

// spmEclipseRule is the stateful eclipse-driven sun-pos-mon auto-enable
// scan of spec.md §4.3: a battery-connect within 125s of eclipse entry
// arms a flag that, on eclipse exit, schedules SPM enable 11 minutes
// later.
type spmEclipseRule struct{}

func (spmEclipseRule) StateKeys() []string { return []string{"sun_pos_mon"} }

func (spmEclipseRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	var connectSecs float64
	var connectFlag bool

	for _, c := range cmds {
		switch {
		case c.Tlmsid == "EOESTECN":
			connectSecs = xtime.MustParse(c.Date).Secs()

		case c.Type == "ORBPOINT":
			eventType, _ := c.EventType.Str()
			switch eventType {
			case "PENTRY", "LSPENTRY":
				entrySecs := xtime.MustParse(c.Date).Secs()
				connectFlag = entrySecs-connectSecs < 125

			case "PEXIT", "LSPEXIT":
				if connectFlag {
					exit := xtime.MustParse(c.Date)
					target := exit.AddSecs(11 * 60)
					acc.Set(target.Date(), "sun_pos_mon", value.Str("ENAB"))
					connectFlag = false
				}
			}
		}
	}
}

var spmEclipse = spmEclipseRule{}

func init() {
	Default.Register(obsidRule)
	Default.Register(spmEnable)
	Default.Register(spmDisable)
	Default.Register(spmEclipse)
}
