package transition

import (
	"math"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/value"
)

var ditherEnable = &fixedRule{
	baseRule: baseRule{keys: []string{"dither"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AOENDITH"}},
	key:      "dither",
	val:      value.Str("ENAB"),
}

var ditherDisable = &fixedRule{
	baseRule: baseRule{keys: []string{"dither"}, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AODSDITH"}},
	key:      "dither",
	val:      value.Str("DISA"),
}

// ditherParamsRule converts the six AODITPAR command fields into phase
// (degrees), amplitude (arcsec), and period (seconds) per axis — spec.md
// §4.3's documented semantic transforms.
type ditherParamsRule struct{ baseRule }

func (r *ditherParamsRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		angp, _ := c.Angp.Float()
		angy, _ := c.Angy.Float()
		coefp, _ := c.Coefp.Float()
		coefy, _ := c.Coefy.Float()
		ratep, _ := c.Ratep.Float()
		ratey, _ := c.Ratey.Float()

		acc.Set(c.Date, "dither_phase_pitch", value.Float(angp*180/math.Pi))
		acc.Set(c.Date, "dither_phase_yaw", value.Float(angy*180/math.Pi))
		acc.Set(c.Date, "dither_ampl_pitch", value.Float(coefp*180/math.Pi*3600))
		acc.Set(c.Date, "dither_ampl_yaw", value.Float(coefy*180/math.Pi*3600))
		acc.Set(c.Date, "dither_period_pitch", value.Float(2*math.Pi/ratep))
		acc.Set(c.Date, "dither_period_yaw", value.Float(2*math.Pi/ratey))
	}
}

var ditherParams = &ditherParamsRule{baseRule: baseRule{
	keys: []string{
		"dither_phase_pitch", "dither_phase_yaw",
		"dither_ampl_pitch", "dither_ampl_yaw",
		"dither_period_pitch", "dither_period_yaw",
	},
	commandAttrs: map[string]string{"type": "MP_DITHER", "tlmsid": "AODITPAR"},
}}

var nmmTransition = &fixedRule{
	baseRule: baseRule{keys: PCADStateKeys, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AONMMODE"}},
	key:      "pcad_mode",
	val:      value.Str("NMAN"),
}

var npmTransition = &fixedRule{
	baseRule: baseRule{keys: PCADStateKeys, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AONPMODE"}},
	key:      "pcad_mode",
	val:      value.Str("NPNT"),
}

var autoNPMEnable = &fixedRule{
	baseRule: baseRule{keys: PCADStateKeys, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AONM2NPE"}},
	key:      "auto_npnt",
	val:      value.Str("ENAB"),
}

var autoNPMDisable = &fixedRule{
	baseRule: baseRule{keys: PCADStateKeys, commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AONM2NPD"}},
	key:      "auto_npnt",
	val:      value.Str("DISA"),
}

// targQuatRule copies a MP_TARGQUAT command's q1..q4 into targ_q1..targ_q4.
type targQuatRule struct{ baseRule }

func (r *targQuatRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		acc.Set(c.Date, "targ_q1", c.Q1)
		acc.Set(c.Date, "targ_q2", c.Q2)
		acc.Set(c.Date, "targ_q3", c.Q3)
		acc.Set(c.Date, "targ_q4", c.Q4)
	}
}

var targQuat = &targQuatRule{baseRule: baseRule{
	keys:         PCADStateKeys,
	commandAttrs: map[string]string{"type": "MP_TARGQUAT"},
}}

// maneuverRule marks every AOMANUVR command as a deferred Maneuver
// closure; the fold expands it into sampled attitude transitions.
type maneuverRule struct{ baseRule }

func (r *maneuverRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		acc.SetDeferred(c.Date, "maneuver", Maneuver, c)
	}
}

var maneuver = &maneuverRule{baseRule: baseRule{
	keys:         PCADStateKeys,
	commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AOMANUVR"},
}}

// normalSunRule marks every AONSMSAF command as a deferred NormalSun
// closure: the fold first sets pcad_mode='NSUN', computes a sun-pointed
// target attitude, then runs the same maneuver expansion as maneuverRule.
type normalSunRule struct{ baseRule }

func (r *normalSunRule) SetTransitions(acc *Accumulator, cmds []*archive.Command) {
	for _, c := range r.stateChangingCommands(cmds) {
		acc.SetDeferred(c.Date, "maneuver", NormalSun, c)
	}
}

var normalSun = &normalSunRule{baseRule: baseRule{
	keys:         PCADStateKeys,
	commandAttrs: map[string]string{"type": "COMMAND_SW", "tlmsid": "AONSMSAF"},
}}

func init() {
	Default.Register(ditherEnable)
	Default.Register(ditherDisable)
	Default.Register(ditherParams)
	Default.Register(nmmTransition)
	Default.Register(npmTransition)
	Default.Register(autoNPMEnable)
	Default.Register(autoNPMDisable)
	Default.Register(targQuat)
	Default.Register(maneuver)
	Default.Register(normalSun)
}
