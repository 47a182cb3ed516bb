package sun

import (
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// Altitude computes the Sun's approximate geometric altitude (in degrees)
// at geographic location (lat, lon) at time t, using the solar RA/Dec model
// and a simple sidereal time approximation. No refraction is applied.
func Altitude(lat, lon float64, t time.Time) float64 {
	eq := GeocentricEquatorialApprox(t)
	return timeutil.AltitudeFromEquatorial(lat, lon, eq.RA, eq.Dec, t)
}
