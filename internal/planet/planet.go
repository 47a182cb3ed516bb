// Package planet computes approximate geocentric positions of the major
// planets (and Pluto) from mean Keplerian elements.
//
// The elements and their rates are the JPL "Approximate Positions of the
// Planets" set valid for 1800 AD - 2050 AD (E. M. Standish). Positions are
// referred to the J2000 ecliptic and equator; precession is not applied,
// which costs a fraction of a degree in the 21st century.
package planet

import (
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// j2000Obliquity is the obliquity of the ecliptic at J2000.0 (degrees).
const j2000Obliquity = 23.43928

// Equatorial represents geocentric equatorial coordinates in degrees.
type Equatorial struct {
	RA       float64 // right ascension, degrees [0, 360)
	Dec      float64 // declination, degrees
	Distance float64 // AU
}

// orbit holds one set of mean elements: value at J2000 and rate per
// Julian century.
type orbit struct {
	a, aDot       float64 // semi-major axis, AU
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination, deg
	L, LDot       float64 // mean longitude, deg
	peri, periDot float64 // longitude of perihelion, deg
	node, nodeDot float64 // longitude of ascending node, deg
}

var earthMoonBary = orbit{
	a: 1.00000261, aDot: 0.00000562,
	e: 0.01671123, eDot: -0.00004392,
	i: -0.00001531, iDot: -0.01294668,
	L: 100.46457166, LDot: 35999.37244981,
	peri: 102.93768193, periDot: 0.32327364,
	node: 0.0, nodeDot: 0.0,
}

var orbits = map[string]orbit{
	"mercury": {
		a: 0.38709927, aDot: 0.00000037,
		e: 0.20563593, eDot: 0.00001906,
		i: 7.00497902, iDot: -0.00594749,
		L: 252.25032350, LDot: 149472.67411175,
		peri: 77.45779628, periDot: 0.16047689,
		node: 48.33076593, nodeDot: -0.12534081,
	},
	"venus": {
		a: 0.72333566, aDot: 0.00000390,
		e: 0.00677672, eDot: -0.00004107,
		i: 3.39467605, iDot: -0.00078890,
		L: 181.97909950, LDot: 58517.81538729,
		peri: 131.60246718, periDot: 0.00268329,
		node: 76.67984255, nodeDot: -0.27769418,
	},
	"mars": {
		a: 1.52371034, aDot: 0.00001847,
		e: 0.09339410, eDot: 0.00007882,
		i: 1.84969142, iDot: -0.00813131,
		L: -4.55343205, LDot: 19140.30268499,
		peri: -23.94362959, periDot: 0.44441088,
		node: 49.55953891, nodeDot: -0.29257343,
	},
	"jupiter": {
		a: 5.20288700, aDot: -0.00011607,
		e: 0.04838624, eDot: -0.00013253,
		i: 1.30439695, iDot: -0.00183714,
		L: 34.39644051, LDot: 3034.74612775,
		peri: 14.72847983, periDot: 0.21252668,
		node: 100.47390909, nodeDot: 0.20469106,
	},
	"saturn": {
		a: 9.53667594, aDot: -0.00125060,
		e: 0.05386179, eDot: -0.00050991,
		i: 2.48599187, iDot: 0.00193609,
		L: 49.95424423, LDot: 1222.49362201,
		peri: 92.59887831, periDot: -0.41897216,
		node: 113.66242448, nodeDot: -0.28867794,
	},
	"uranus": {
		a: 19.18916464, aDot: -0.00196176,
		e: 0.04725744, eDot: -0.00004397,
		i: 0.77263783, iDot: -0.00242939,
		L: 313.23810451, LDot: 428.48202785,
		peri: 170.95427630, periDot: 0.40805281,
		node: 74.01692503, nodeDot: 0.04240589,
	},
	"neptune": {
		a: 30.06992276, aDot: 0.00026291,
		e: 0.00859048, eDot: 0.00005105,
		i: 1.77004347, iDot: 0.00035372,
		L: -55.12002969, LDot: 218.45945325,
		peri: 44.96476227, periDot: -0.32241464,
		node: 131.78422574, nodeDot: -0.00508664,
	},
	"pluto": {
		a: 39.48211675, aDot: -0.00031596,
		e: 0.24882730, eDot: 0.00005170,
		i: 17.14001206, iDot: 0.00004818,
		L: 238.92903833, LDot: 145.20780515,
		peri: 224.06891629, periDot: -0.04062942,
		node: 110.30393684, nodeDot: -0.01183482,
	},
}

// Known reports whether name (case-insensitive) is a planet this package
// can position.
func Known(name string) bool {
	_, ok := orbits[strings.ToLower(name)]
	return ok
}

// Names returns the supported planet names.
func Names() []string {
	return []string{"mercury", "venus", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"}
}

// GeocentricEquatorial returns the approximate geocentric RA/Dec of the named
// planet at t. ok is false for unknown names.
func GeocentricEquatorial(name string, t time.Time) (Equatorial, bool) {
	o, ok := orbits[strings.ToLower(name)]
	if !ok {
		return Equatorial{}, false
	}

	T := timeutil.JulianCenturies(t)

	px, py, pz := o.heliocentric(T)
	ex, ey, ez := earthMoonBary.heliocentric(T)

	// Geocentric ecliptic vector.
	x, y, z := px-ex, py-ey, pz-ez

	// Rotate ecliptic -> equatorial.
	eps := timeutil.Deg2Rad(j2000Obliquity)
	xEq := x
	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	dist := math.Sqrt(xEq*xEq + yEq*yEq + zEq*zEq)

	return Equatorial{
		RA:       timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(yEq, xEq))),
		Dec:      timeutil.Rad2Deg(math.Asin(zEq / dist)),
		Distance: dist,
	}, true
}

// Altitude returns the geometric altitude (degrees) of the named planet for
// an observer at lat/lon. ok is false for unknown names.
func Altitude(name string, lat, lon float64, t time.Time) (float64, bool) {
	eq, ok := GeocentricEquatorial(name, t)
	if !ok {
		return 0, false
	}
	return timeutil.AltitudeFromEquatorial(lat, lon, eq.RA, eq.Dec, t), true
}

// heliocentric returns J2000 ecliptic rectangular coordinates (AU) at T
// Julian centuries past J2000.
func (o orbit) heliocentric(T float64) (x, y, z float64) {
	a := o.a + o.aDot*T
	e := o.e + o.eDot*T
	incl := timeutil.Deg2Rad(o.i + o.iDot*T)
	L := o.L + o.LDot*T
	peri := o.peri + o.periDot*T
	node := o.node + o.nodeDot*T

	omega := timeutil.Deg2Rad(peri - node) // argument of perihelion
	Omega := timeutil.Deg2Rad(node)
	M := timeutil.Deg2Rad(timeutil.Normalize180(L - peri))

	E := solveKepler(M, e)

	// Position in the orbital plane.
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(omega), math.Sin(omega)
	cO, sO := math.Cos(Omega), math.Sin(Omega)
	ci, si := math.Cos(incl), math.Sin(incl)

	x = (cw*cO-sw*sO*ci)*xp + (-sw*cO-cw*sO*ci)*yp
	y = (cw*sO+sw*cO*ci)*xp + (-sw*sO+cw*cO*ci)*yp
	z = (sw*si)*xp + (cw*si)*yp
	return x, y, z
}

// solveKepler solves M = E - e sin E for E (radians) by Newton iteration.
func solveKepler(M, e float64) float64 {
	const (
		maxIter = 30
		tol     = 1e-10
	)

	E := M + e*math.Sin(M)
	for range maxIter {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < tol {
			break
		}
	}
	return E
}
