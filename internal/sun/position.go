package sun

import (
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees. RA is in degrees (0-360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// elements holds the mean anomaly, ecliptic longitude and obliquity of the
// Sun (radians) at one instant.
type elements struct {
	g, L, eps float64
}

// Based on a simplified NOAA / Meeus-style algorithm:
//
//	g  = mean anomaly of the Sun
//	q  = mean longitude of the Sun
//	L  = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
func solarElements(t time.Time) elements {
	d := timeutil.DaysSinceJ2000(t)

	g := timeutil.Deg2Rad(357.529 + 0.98560028*d)
	q := timeutil.Deg2Rad(280.459 + 0.98564736*d)

	// Ecliptic longitude with equation of center
	L := q +
		timeutil.Deg2Rad(1.915)*math.Sin(g) +
		timeutil.Deg2Rad(0.020)*math.Sin(2*g)

	eps := timeutil.Deg2Rad(23.439 - 0.00000036*d)

	return elements{g: g, L: L, eps: eps}
}

// EclipticLongitude returns the Sun's apparent geocentric ecliptic longitude
// in degrees [0, 360).
func EclipticLongitude(t time.Time) float64 {
	return timeutil.Normalize360(timeutil.Rad2Deg(solarElements(t).L))
}

// GeocentricEquatorialApprox returns an approximate geocentric RA/Dec for the Sun
// at the given time t.
//
// This is a standard low/medium-precision solar position model, good to
// arcminute-level accuracy in RA/Dec for many applications.
func GeocentricEquatorialApprox(t time.Time) Equatorial {
	el := solarElements(t)

	x := math.Cos(el.L)
	y := math.Cos(el.eps) * math.Sin(el.L)
	z := math.Sin(el.eps) * math.Sin(el.L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(z)

	return Equatorial{
		RA:  timeutil.Rad2Deg(ra),
		Dec: timeutil.Rad2Deg(dec),
	}
}
