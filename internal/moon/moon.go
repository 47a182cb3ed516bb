package moon

import (
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

type EquatorialDistance struct {
	RA       float64 // degrees
	Dec      float64 // degrees
	Distance float64 // km
}

// Altitude computes the Moon's approximate topocentric altitude (in degrees)
// at geographic location (lat, lon) at time t, using the geocentric RA/Dec
// model, a basic sidereal time approximation and a horizontal parallax
// correction. No refraction is applied.
func Altitude(lat, lon float64, t time.Time) float64 {
	eq := GeocentricEquatorialWithDistanceApprox(t)

	raRad := timeutil.Deg2Rad(eq.RA)
	decRad := timeutil.Deg2Rad(eq.Dec)
	latRad := timeutil.Deg2Rad(lat)

	lstRad := timeutil.Deg2Rad(timeutil.LocalSiderealDeg(t, lon))

	// Geocentric hour angle H
	H := timeutil.NormalizePi(lstRad - raRad)

	// --- Topocentric correction via horizontal parallax ---
	pi := horizontalParallax(eq.Distance) // radians

	sinφ := math.Sin(latRad)
	cosφ := math.Cos(latRad)

	// Meeus approximate factors for observer at sea level.
	rhoSinφ := 0.99883 * sinφ
	rhoCosφ := 0.99883 * cosφ

	sinδ := math.Sin(decRad)
	cosδ := math.Cos(decRad)
	sinH := math.Sin(H)
	cosH := math.Cos(H)
	sinπ := math.Sin(pi)

	// Δα (correction to RA)
	deltaAlpha := math.Atan2(
		-rhoCosφ*sinπ*sinH,
		cosδ-rhoCosφ*sinπ*cosH,
	)

	raTopo := raRad + deltaAlpha
	decTopo := math.Atan2(
		sinδ-rhoSinφ*sinπ,
		cosδ-rhoCosφ*sinπ*cosH,
	)

	Ht := timeutil.NormalizePi(lstRad - raTopo)

	sinAlt := sinφ*math.Sin(decTopo) + cosφ*math.Cos(decTopo)*math.Cos(Ht)
	return timeutil.Rad2Deg(math.Asin(sinAlt))
}

func horizontalParallax(distanceKm float64) float64 {
	const earthRadiusKm = 6378.14
	if distanceKm <= earthRadiusKm {
		// ridiculously close / invalid, just clamp
		return timeutil.Deg2Rad(1.0)
	}
	return math.Asin(earthRadiusKm / distanceKm) // radians
}

func GeocentricEquatorialWithDistanceApprox(t time.Time) EquatorialDistance {
	eq := GeocentricEquatorialApprox(t)

	// Compute only lunar distance Δ (km) with a truncated Meeus-style series.
	T := timeutil.JulianCenturies(t)

	D := timeutil.Normalize360(297.8501921 + 445267.1114034*T)  // mean elongation
	M1 := timeutil.Normalize360(134.9633964 + 477198.8675055*T) // Moon mean anomaly

	Dr := timeutil.Deg2Rad(D)
	M1r := timeutil.Deg2Rad(M1)

	delta := 385000.56 -
		20905.0*math.Cos(M1r) -
		3699.0*math.Cos(2*Dr-M1r) -
		2956.0*math.Cos(2*Dr) -
		570.0*math.Cos(2*M1r) -
		246.0*math.Cos(2*Dr+M1r)

	return EquatorialDistance{
		RA:       eq.RA,
		Dec:      eq.Dec,
		Distance: delta,
	}
}
