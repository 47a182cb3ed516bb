package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees. RA is in degrees (0-360) instead of hours to stay consistent with
// internal math helpers.
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// ecliptic is the Moon's geocentric ecliptic position plus the obliquity used
// to rotate it, all in radians.
type ecliptic struct {
	lon, lat, eps float64
}

// geocentricEcliptic evaluates a truncated Meeus-style series:
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func geocentricEcliptic(t time.Time) ecliptic {
	d := timeutil.DaysSinceJ2000(t)

	// All linear coefficients here are in deg/day.
	Lprime := timeutil.Normalize360(218.3164477 + 13.17639648*d)
	M := timeutil.Normalize360(357.5291092 + 0.98560028*d)
	Mm := timeutil.Normalize360(134.9633964 + 13.06499295*d)
	D := timeutil.Normalize360(297.8501921 + 12.19074912*d)
	F := timeutil.Normalize360(93.2720950 + 13.22935024*d)

	Lr := timeutil.Deg2Rad(Lprime)
	Mr := timeutil.Deg2Rad(M)
	Mmr := timeutil.Deg2Rad(Mm)
	Dr := timeutil.Deg2Rad(D)
	Fr := timeutil.Deg2Rad(F)

	// λ ≈ L' + 6.289 sin(Mm) + 1.274 sin(2D − Mm)
	//      + 0.658 sin(2D) + 0.214 sin(2Mm) − 0.186 sin(M)
	//      − 0.114 sin(2F)
	lon := Lr +
		timeutil.Deg2Rad(6.289)*math.Sin(Mmr) +
		timeutil.Deg2Rad(1.274)*math.Sin(2*Dr-Mmr) +
		timeutil.Deg2Rad(0.658)*math.Sin(2*Dr) +
		timeutil.Deg2Rad(0.214)*math.Sin(2*Mmr) -
		timeutil.Deg2Rad(0.186)*math.Sin(Mr) -
		timeutil.Deg2Rad(0.114)*math.Sin(2*Fr)

	// β ≈ 5.128 sin(F) + 0.280 sin(Mm + F)
	//      + 0.277 sin(Mm − F) + 0.173 sin(2D − F)
	lat := timeutil.Deg2Rad(5.128)*math.Sin(Fr) +
		timeutil.Deg2Rad(0.280)*math.Sin(Mmr+Fr) +
		timeutil.Deg2Rad(0.277)*math.Sin(Mmr-Fr) +
		timeutil.Deg2Rad(0.173)*math.Sin(2*Dr-Fr)

	eps := timeutil.Deg2Rad(23.439291 - 0.0000137*d)

	return ecliptic{lon: lon, lat: lat, eps: eps}
}

// EclipticLongitude returns the Moon's geocentric ecliptic longitude in
// degrees [0, 360).
func EclipticLongitude(t time.Time) float64 {
	return timeutil.Normalize360(timeutil.Rad2Deg(geocentricEcliptic(t).lon))
}

// GeocentricEquatorialApprox returns an approximate geocentric RA/Dec for the Moon
// at the given time t.
//
// This is a medium-precision model using a small set of dominant periodic terms
// in ecliptic longitude and latitude. It is not ephemeris-grade.
func GeocentricEquatorialApprox(t time.Time) Equatorial {
	ec := geocentricEcliptic(t)

	x := math.Cos(ec.lat) * math.Cos(ec.lon)
	y := math.Cos(ec.lat) * math.Sin(ec.lon)
	z := math.Sin(ec.lat)

	xEq := x
	yEq := y*math.Cos(ec.eps) - z*math.Sin(ec.eps)
	zEq := y*math.Sin(ec.eps) + z*math.Cos(ec.eps)

	ra := math.Atan2(yEq, xEq)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(zEq)

	return Equatorial{
		RA:  timeutil.Rad2Deg(ra),
		Dec: timeutil.Rad2Deg(dec),
	}
}
