package timeutil

import (
	"math"
	"time"
)

// -----------------------------
// Time relative to J2000
// -----------------------------

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
//
// This is an approximation suitable for low/medium-precision astronomy.
// UTC is used in place of TT; the ~70 s difference is well below the
// accuracy of the series that consume it.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := y / 100
	B := 2 - A + A/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hour/24.0

	return jd
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	jd := JulianDay(t)
	return (jd - 2451545.0) / 36525.0
}

// LocalSiderealDeg returns the local mean sidereal time in degrees [0, 360)
// for an observer at longitude lon (degrees, east positive).
func LocalSiderealDeg(t time.Time, lon float64) float64 {
	d := DaysSinceJ2000(t)
	gmst := 280.46061837 + 360.98564736629*d
	return Normalize360(gmst + lon)
}

// -----------------------------
// Civil (wall-clock) helpers
// -----------------------------

// HourOfDay returns the wall-clock hour of t as a fraction:
// hour + minute/60 + second/3600.
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		float64(t.Second())/3600.0
}

// Midnight returns 00:00 of t's calendar date in loc. The date is read in
// t's own location.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Civil returns a zone-less wall-clock time (carried in UTC so arithmetic
// never crosses a DST transition).
func Civil(year int, month time.Month, day, hour, minute, sec int) time.Time {
	return time.Date(year, month, day, hour, minute, sec, 0, time.UTC)
}

// InZone resolves a wall-clock time produced by Civil into loc. Ambiguous and
// nonexistent wall times are resolved the way time.Date does.
func InZone(wall time.Time, loc *time.Location) time.Time {
	return time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), loc)
}

// DaysBetween returns the number of calendar days from a's date to b's, each
// read in its own location.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return int(Civil(by, bm, bd, 0, 0, 0).Sub(Civil(ay, am, ad, 0, 0, 0)) / (24 * time.Hour))
}

// DateAfter reports whether a's calendar date is strictly after b's.
func DateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// Normalize180 wraps d into [-180, 180).
func Normalize180(d float64) float64 {
	d = Normalize360(d + 180.0)
	return d - 180.0
}

// NormalizePi wraps an angle in radians into [-π, π].
func NormalizePi(r float64) float64 {
	for r > math.Pi {
		r -= 2 * math.Pi
	}
	for r < -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// AltitudeFromEquatorial returns the geometric altitude (degrees) of a body at
// geocentric RA/Dec (degrees) for an observer at lat/lon at time t.
func AltitudeFromEquatorial(lat, lon, raDeg, decDeg float64, t time.Time) float64 {
	latRad := Deg2Rad(lat)
	decRad := Deg2Rad(decDeg)

	// Hour angle H = LST - RA, normalized
	H := NormalizePi(Deg2Rad(LocalSiderealDeg(t, lon) - raDeg))

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(H)
	return Rad2Deg(math.Asin(sinAlt))
}
