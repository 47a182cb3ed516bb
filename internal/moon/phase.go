package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/solver"
	"github.com/thurmanmarka/nightglide/internal/sun"
	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// Phase angles (Moon minus Sun ecliptic longitude, degrees) of the four
// major lunar phases.
const (
	NewMoonAngle      = 0.0
	FirstQuarterAngle = 90.0
	FullMoonAngle     = 180.0
	LastQuarterAngle  = 270.0
)

// SynodicMonth is the mean length of a lunation, 29.530588853 days.
const SynodicMonth = 2551442876899200 * time.Nanosecond

// Illumination describes the sunlit part of the lunar disk at one instant.
type Illumination struct {
	Fraction   float64 // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64 // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool    // true if illumination is increasing
}

// PhaseAngle returns the Moon's ecliptic longitude minus the Sun's, in
// degrees [0, 360). 0 is new moon, 180 is full moon.
func PhaseAngle(t time.Time) float64 {
	return timeutil.Normalize360(EclipticLongitude(t) - sun.EclipticLongitude(t))
}

// IlluminationAt computes the Moon's illuminated fraction from the Sun-Moon
// elongation ψ: k = (1 - cos ψ) / 2. Phase is a global property (independent
// of observer location).
func IlluminationAt(t time.Time) Illumination {
	utc := t.UTC()

	mEq := GeocentricEquatorialApprox(utc)
	sEq := sun.GeocentricEquatorialApprox(utc)

	raSun := timeutil.Deg2Rad(sEq.RA)
	decSun := timeutil.Deg2Rad(sEq.Dec)
	raMoon := timeutil.Deg2Rad(mEq.RA)
	decMoon := timeutil.Deg2Rad(mEq.Dec)

	// cos ψ = sin δs sin δm + cos δs cos δm cos(αs - αm)
	cosPsi := math.Sin(decSun)*math.Sin(decMoon) +
		math.Cos(decSun)*math.Cos(decMoon)*math.Cos(raSun-raMoon)

	// Clamp to handle numerical noise
	cosPsi = math.Max(-1, math.Min(1, cosPsi))

	fraction := 0.5 * (1 - cosPsi)
	fraction = math.Max(0, math.Min(1, fraction))

	// Waxing vs waning: which side of the Sun is the Moon on?
	sepDeg := timeutil.Normalize360(mEq.RA - sEq.RA)

	return Illumination{
		Fraction:   fraction,
		Elongation: timeutil.Rad2Deg(math.Acos(cosPsi)),
		Waxing:     sepDeg < 180.0,
	}
}

// NextPhase returns the first instant strictly after `after` at which the
// phase angle equals angleDeg. ok is false if no crossing was found within a
// little more than one lunation, which only happens for invalid inputs.
func NextPhase(angleDeg float64, after time.Time) (time.Time, bool) {
	f := func(t time.Time) float64 {
		return timeutil.Normalize180(PhaseAngle(t) - angleDeg)
	}

	const (
		span = SynodicMonth + 5*24*time.Hour
		step = 6 * time.Hour
		tol  = time.Minute
	)

	// A crossing reported by a previous call lies within tol of the true
	// instant, so the search starts one tolerance later.
	start := after.Add(tol)

	// The wrap at ±180° is a downward jump, so only the upward zero
	// crossing matches the requested phase.
	res := solver.FindEvent(f, start, start.Add(span), 0, solver.CrossingUp, int(span/step)+1, tol)
	if !res.OK {
		return time.Time{}, false
	}
	return res.Time.UTC(), true
}
