package attitude

import (
	"math"
	"testing"

	"github.com/orbops/cmdstate/xtime"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestQuatRADecRollRoundTrip(t *testing.T) {
	cases := []struct {
		ra, dec, roll float64
	}{
		{0, 0, 0},
		{90, 45, 180},
		{270, -30, 90},
		{359, 89, 10},
	}
	for _, c := range cases {
		q := QuatFromRADecRoll(c.ra, c.dec, c.roll)
		if got := q.RA(); !almostEqual(got, c.ra, 1e-6) {
			t.Errorf("RA() = %v, want %v", got, c.ra)
		}
		if got := q.Dec(); !almostEqual(got, c.dec, 1e-6) {
			t.Errorf("Dec() = %v, want %v", got, c.dec)
		}
		if got := q.Roll(); !almostEqual(got, c.roll, 1e-6) {
			t.Errorf("Roll() = %v, want %v", got, c.roll)
		}
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := QuatFromRADecRoll(10, 20, 0)
	b := QuatFromRADecRoll(100, -10, 90)
	if got := slerp(a, b, 0); !almostEqual(dot(got, a), 1, 1e-6) {
		t.Errorf("slerp at x=0 did not reproduce a")
	}
	if got := slerp(a, b, 1); !almostEqual(math.Abs(dot(got, b)), 1, 1e-6) {
		t.Errorf("slerp at x=1 did not reproduce b")
	}
}

func TestAttitudesSamplesBothEndpoints(t *testing.T) {
	curr := QuatFromRADecRoll(0, 0, 0)
	targ := QuatFromRADecRoll(30, 0, 0)
	samples := Attitudes(curr, targ, 1000)
	if len(samples) < 2 {
		t.Fatalf("expected at least 2 samples, got %d", len(samples))
	}
	first, last := samples[0], samples[len(samples)-1]
	if first.TimeSecs != 1000 {
		t.Errorf("first sample TimeSecs = %v, want 1000", first.TimeSecs)
	}
	if !almostEqual(dot(first.Q, curr), 1, 1e-6) {
		t.Errorf("first sample quat does not match curr")
	}
	if !almostEqual(math.Abs(dot(last.Q, targ)), 1, 1e-6) {
		t.Errorf("last sample quat does not match targ")
	}
	if last.TimeSecs <= first.TimeSecs {
		t.Errorf("last.TimeSecs = %v, want > first.TimeSecs %v", last.TimeSecs, first.TimeSecs)
	}
}

func TestSunPitchRangeAndSymmetry(t *testing.T) {
	date := xtime.MustParse("2020:100:00:00:00.000")
	sunRA, sunDec := sunRADec(date)
	if p := SunPitch(sunRA, sunDec, date); !almostEqual(p, 0, 1e-6) {
		t.Errorf("pitch looking straight at the sun = %v, want 0", p)
	}
	oppositeRA := math.Mod(sunRA+180, 360)
	if p := SunPitch(oppositeRA, -sunDec, date); !almostEqual(p, 180, 1e-4) {
		t.Errorf("pitch looking away from the sun = %v, want ~180", p)
	}
}

func TestSunOffNominalRollZeroForIdealAttitude(t *testing.T) {
	date := xtime.MustParse("2020:100:00:00:00.000")
	nsm := NSMAttitude(QuatFromRADecRoll(0, 0, 0), date)
	if got := SunOffNominalRoll(nsm, date); !almostEqual(got, 0, 1e-4) {
		t.Errorf("off-nominal roll of NSM attitude = %v, want ~0", got)
	}
}

func TestWrap180(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		179:  179,
		180:  -180,
		181:  -179,
		360:  0,
		-181: 179,
	}
	for in, want := range cases {
		if got := wrap180(in); !almostEqual(got, want, 1e-9) {
			t.Errorf("wrap180(%v) = %v, want %v", in, got, want)
		}
	}
}
