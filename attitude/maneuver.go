package attitude

import (
	"math"
	"time"

	"github.com/orbops/cmdstate/xtime"
)

// SampleInterval is the nominal spacing between maneuver trajectory samples,
// matching the "about 5-minute intervals" comment on the original
// Chandra.Maneuver.attitudes contract.
const SampleInterval = 300 * time.Second

// RatePerSec is the assumed single-axis slew rate used to size the sampled
// trajectory. Real spacecraft maneuver rates depend on the torque profile
// and moment of inertia; this stand-in is a reasonable constant since
// attitude is an out-of-scope external collaborator (spec.md §1).
const RatePerSec = 0.8 // degrees/second

// Sample is one point along a sampled maneuver trajectory.
type Sample struct {
	TimeSecs   float64
	Q          Quat
	Pitch      float64
	OffNomRoll float64
}

// Attitudes samples the great-circle slew from curr to targ starting at
// tstartSecs (Unix epoch seconds), matching the Maneuver helper contract of
// spec.md §6: "attitudes(curr_q, targ_q, tstart) → [sample]".
func Attitudes(curr, targ Quat, tstartSecs float64) []Sample {
	angle := angleBetweenDeg(curr, targ)
	duration := angle / RatePerSec

	n := int(math.Ceil(duration / SampleInterval.Seconds()))
	if n < 1 {
		n = 1
	}

	samples := make([]Sample, n+1)
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		t := tstartSecs + frac*duration
		q := slerp(curr, targ, frac)
		date := xtime.FromSecs(t)
		samples[i] = Sample{
			TimeSecs:   t,
			Q:          q,
			Pitch:      SunPitch(q.RA(), q.Dec(), date),
			OffNomRoll: SunOffNominalRoll(q, date),
		}
	}
	return samples
}

func angleBetweenDeg(a, b Quat) float64 {
	c := math.Abs(dot(a, b))
	if c > 1 {
		c = 1
	}
	return 2 * math.Acos(c) * 180 / math.Pi
}
