package attitude

import (
	"math"

	"github.com/orbops/cmdstate/xtime"
)

const obliquityDeg = 23.44

// sunRADec approximates the apparent solar right-ascension/declination for
// date using a circular-orbit ecliptic-longitude model. It is a stand-in
// for the real ephemeris lookup the external collaborator contract
// (spec.md §6 "Sun helper") hides from the core engine.
func sunRADec(date xtime.Time) (ra, dec float64) {
	// Days since a J2000-like epoch, used only to derive an ecliptic
	// longitude that advances 360 degrees per ~365.25 days.
	days := (date.Secs() - 946728000) / 86400
	meanLon := math.Mod(280.46+0.9856474*days, 360)
	if meanLon < 0 {
		meanLon += 360
	}
	lambda := meanLon * math.Pi / 180
	eps := obliquityDeg * math.Pi / 180

	raRad := math.Atan2(math.Cos(eps)*math.Sin(lambda), math.Cos(lambda))
	decRad := math.Asin(math.Sin(eps) * math.Sin(lambda))

	ra = raRad * 180 / math.Pi
	if ra < 0 {
		ra += 360
	}
	dec = decRad * 180 / math.Pi
	return ra, dec
}

// SunPitch returns the angle in degrees between the boresight (ra, dec) and
// the sun direction at date, matching "pitch(ra, dec, date) → float" from
// spec.md §6.
func SunPitch(ra, dec float64, date xtime.Time) float64 {
	sunRA, sunDec := sunRADec(date)
	return angularSeparationDeg(ra, dec, sunRA, sunDec)
}

// SunOffNominalRoll returns the residual roll, in degrees, between q's
// actual roll and the roll that would keep the spacecraft's solar-array
// axis edge-on to the sun line, matching "off_nominal_roll(quat, date) →
// float" from spec.md §6.
func SunOffNominalRoll(q Quat, date xtime.Time) float64 {
	ra, dec := q.RA(), q.Dec()
	sunRA, sunDec := sunRADec(date)
	ideal := idealSunRollDeg(ra, dec, sunRA, sunDec)
	return wrap180(q.Roll() - ideal)
}

// NSMAttitude returns the sun-pointed target attitude commanded by an
// AONSMSAF normal-sun maneuver, matching "NSM_attitude(curr_q, date) →
// quat" from spec.md §6. The target boresight points straight at the sun
// with zero off-nominal roll.
func NSMAttitude(curr Quat, date xtime.Time) Quat {
	sunRA, sunDec := sunRADec(date)
	ideal := idealSunRollDeg(sunRA, sunDec, sunRA, sunDec)
	return QuatFromRADecRoll(sunRA, sunDec, ideal)
}

func angularSeparationDeg(ra1, dec1, ra2, dec2 float64) float64 {
	r1, d1 := ra1*math.Pi/180, dec1*math.Pi/180
	r2, d2 := ra2*math.Pi/180, dec2*math.Pi/180
	cosSep := math.Sin(d1)*math.Sin(d2) + math.Cos(d1)*math.Cos(d2)*math.Cos(r1-r2)
	return math.Acos(clamp(cosSep, -1, 1)) * 180 / math.Pi
}

// idealSunRollDeg computes the parallactic-angle-style roll that keeps the
// sun in the boresight's local horizontal plane.
func idealSunRollDeg(ra, dec, sunRA, sunDec float64) float64 {
	d := dec * math.Pi / 180
	sd := sunDec * math.Pi / 180
	dRA := (sunRA - ra) * math.Pi / 180

	y := math.Sin(dRA) * math.Cos(sd)
	x := math.Cos(d)*math.Sin(sd) - math.Sin(d)*math.Cos(sd)*math.Cos(dRA)
	return math.Atan2(y, x) * 180 / math.Pi
}

func wrap180(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// QuatFromRADecRoll builds the attitude quaternion pointing the boresight
// at (ra, dec) with the given roll about the boresight, inverting the
// Quat.RA/Dec/Roll extraction.
func QuatFromRADecRoll(ra, dec, roll float64) Quat {
	yaw := ra * math.Pi / 180
	pitch := -dec * math.Pi / 180
	rollRad := roll * math.Pi / 180

	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cr, sr := math.Cos(rollRad/2), math.Sin(rollRad/2)

	q1 := sr*cp*cy - cr*sp*sy
	q2 := cr*sp*cy + sr*cp*sy
	q3 := cr*cp*sy - sr*sp*cy
	q4 := cr*cp*cy + sr*sp*sy
	return Quat{q1, q2, q3, q4}.normalize()
}
