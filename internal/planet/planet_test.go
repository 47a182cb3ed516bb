package planet

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocentricEquatorial_Jupiter2025(t *testing.T) {
	// Jupiter is stationary in Gemini in mid-November 2025, near
	// RA 7h50m, Dec +21°.
	eq, ok := GeocentricEquatorial("Jupiter", time.Date(2025, time.November, 11, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)

	assert.InDelta(t, 117.5, eq.RA, 3.0)
	assert.InDelta(t, 21.3, eq.Dec, 2.0)
	assert.InDelta(t, 4.6, eq.Distance, 0.4)
}

func TestGeocentricEquatorial_Unknown(t *testing.T) {
	_, ok := GeocentricEquatorial("vulcan", time.Now())
	assert.False(t, ok)
	assert.False(t, Known("vulcan"))
	assert.True(t, Known("SATURN"))
}

func TestGeocentricEquatorial_AllNamesFinite(t *testing.T) {
	when := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			eq, ok := GeocentricEquatorial(name, when)
			require.True(t, ok)
			assert.False(t, math.IsNaN(eq.RA))
			assert.GreaterOrEqual(t, eq.Dec, -90.0)
			assert.LessOrEqual(t, eq.Dec, 90.0)
			assert.Positive(t, eq.Distance)
		})
	}
}

func TestSolveKepler(t *testing.T) {
	for _, e := range []float64{0, 0.05, 0.25} {
		for _, M := range []float64{-3, -1, 0, 0.5, 2.5} {
			E := solveKepler(M, e)
			assert.InDelta(t, M, E-e*math.Sin(E), 1e-9)
		}
	}
}

func TestAltitude_JupiterKualaLumpur(t *testing.T) {
	lat, lon := 3.0, 101.6

	// 21:00 local (UTC+8) on 2025-11-11: Jupiter not yet risen.
	early, ok := Altitude("jupiter", lat, lon, time.Date(2025, time.November, 11, 13, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Less(t, early, 0.0)

	// 02:00 local the next morning: well up in the east.
	late, ok := Altitude("jupiter", lat, lon, time.Date(2025, time.November, 11, 18, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Greater(t, late, 20.0)
}
