package transition

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

// acisRule dispatches ACISPKT commands by tlmsid prefix/value, matching
// spec.md §4.3's ACIS table.
type acisRule struct{ baseRule }

func (r *acisRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		tlmsid := c.Tlmsid
		date := c.Date

		switch {
		case strings.HasPrefix(tlmsid, "WSPOW"):
			fepCount, ccdCount, vidBoard, clocking := DecodePower(tlmsid)
			acc.Set(date, "fep_count", value.Int(fepCount))
			acc.Set(date, "ccd_count", value.Int(ccdCount))
			acc.Set(date, "vid_board", value.Int(vidBoard))
			acc.Set(date, "clocking", value.Int(clocking))
			acc.Set(date, "power_cmd", value.Str(tlmsid))

		case tlmsid == "XCZ0000005" || tlmsid == "XTZ0000005":
			acc.Set(date, "clocking", value.Int(1))
			acc.Set(date, "power_cmd", value.Str(tlmsid))

		case tlmsid == "WSVIDALLDN":
			acc.Set(date, "vid_board", value.Int(0))
			acc.Set(date, "power_cmd", value.Str(tlmsid))

		case tlmsid == "AA00000000":
			acc.Set(date, "clocking", value.Int(0))
			acc.Set(date, "power_cmd", value.Str(tlmsid))

		case tlmsid == "WSFEPALLUP":
			acc.Set(date, "fep_count", value.Int(6))
			acc.Set(date, "power_cmd", value.Str(tlmsid))

		case strings.HasPrefix(tlmsid, "WC") && len(tlmsid) >= 7:
			acc.Set(date, "si_mode", value.Str("CC_"+tlmsid[2:7]))

		case strings.HasPrefix(tlmsid, "WT") && len(tlmsid) >= 7:
			acc.Set(date, "si_mode", value.Str("TE_"+tlmsid[2:7]))
		}
	}
}

var acis = &acisRule{baseRule: baseRule{
	keys:         []string{"clocking", "power_cmd", "vid_board", "fep_count", "si_mode", "ccd_count"},
	commandAttrs: map[string]string{"type": "ACISPKT"},
}}

func init() {
	Default.Register(acis)
}

// DecodePower decodes a WSPOW* tlmsid into its FEP/CCD power-up selection.
// The real decode is an external collaborator per spec.md §4.3 ("provided
// by external collaborator"); this stand-in treats the five hex digits
// following "WSPOW" as two bitmasks — the low 6 bits select FEPs 0-5, the
// next 10 bits select CCDs 0-9 — and reports their population counts.
func DecodePower(tlmsid string) (fepCount, ccdCount, vidBoard, clocking int64) {
	hexPart := strings.TrimPrefix(tlmsid, "WSPOW")
	mask, _ := strconv.ParseUint(hexPart, 16, 32)

	fepCount = int64(bits.OnesCount32(uint32(mask) & 0x3F))
	ccdCount = int64(bits.OnesCount32(uint32(mask>>6) & 0x3FF))
	vidBoard = 1
	clocking = 1
	return fepCount, ccdCount, vidBoard, clocking
}
