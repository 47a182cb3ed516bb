package nightglide

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jupiter = Target{Kind: SolarSystemBody, Name: "jupiter"}

func testWindow(t *testing.T) Window {
	t.Helper()
	kl := mustLoadLocation(t, "Asia/Kuala_Lumpur")
	spec := WindowSpec{StartHour: 21, EndHour: 2, Step: 10 * time.Minute, Location: kl}
	w, err := spec.Window(time.Date(2025, time.November, 11, 0, 0, 0, 0, kl))
	require.NoError(t, err)
	return w
}

func TestEvaluate_Threshold(t *testing.T) {
	tests := []struct {
		name        string
		altitude    float64
		min         float64
		wantVisible bool
	}{
		{name: "equal is not visible", altitude: 5, min: 5, wantVisible: false},
		{name: "just above", altitude: 5.0001, min: 5, wantVisible: true},
		{name: "below", altitude: -10, min: 5, wantVisible: false},
		{name: "negative threshold", altitude: -1, min: -2, wantVisible: true},
	}

	w := testWindow(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eph := &fakeEphemeris{altitude: constantAltitude(tt.altitude)}

			v, err := Evaluate(context.Background(), eph, Coordinates{Lat: 3, Lon: 101.6}, jupiter, w, tt.min)
			require.NoError(t, err)

			assert.Equal(t, tt.wantVisible, v.Visible)
			assert.InDelta(t, tt.altitude, v.MaxAltitude, 1e-12)
			assert.Len(t, v.Altitudes, len(w.Samples))
			assert.Len(t, v.PlotHours, len(w.Samples))
		})
	}
}

func TestEvaluate_SingleSampleAbove(t *testing.T) {
	w := testWindow(t)
	peak := w.Samples[len(w.Samples)-1].Time

	eph := &fakeEphemeris{altitude: func(tm time.Time, _ Target) (float64, error) {
		if tm.Equal(peak) {
			return 12, nil
		}
		return 1, nil
	}}

	v, err := Evaluate(context.Background(), eph, Coordinates{}, jupiter, w, 5)
	require.NoError(t, err)

	assert.True(t, v.Visible)
	assert.InDelta(t, 12.0, v.MaxAltitude, 1e-12)

	at, hour := v.Peak()
	assert.True(t, at.Equal(peak))
	assert.InDelta(t, 26.0, hour, 1e-9)
}

func TestEvaluate_PlotHours(t *testing.T) {
	w := testWindow(t)
	eph := &fakeEphemeris{altitude: constantAltitude(0)}

	v, err := Evaluate(context.Background(), eph, Coordinates{}, jupiter, w, 5)
	require.NoError(t, err)

	assert.InDelta(t, 21.0, v.PlotHours[0], 1e-9)
	assert.InDelta(t, 26.0, v.PlotHours[len(v.PlotHours)-1], 1e-9)
	assert.IsNonDecreasing(t, v.PlotHours)
}

func TestEvaluate_QueryFailure(t *testing.T) {
	w := testWindow(t)
	bad := w.Samples[3].Time
	cause := errors.New("kernel file missing")

	eph := &fakeEphemeris{altitude: func(tm time.Time, _ Target) (float64, error) {
		if tm.Equal(bad) {
			return 0, cause
		}
		return 30, nil
	}}

	_, err := Evaluate(context.Background(), eph, Coordinates{}, jupiter, w, 5)
	require.ErrorIs(t, err, ErrEphemerisQuery)
	require.ErrorIs(t, err, cause)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.True(t, qe.Time.Equal(bad))
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eph := &fakeEphemeris{altitude: constantAltitude(30)}
	_, err := Evaluate(ctx, eph, Coordinates{}, jupiter, testWindow(t), 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, eph.queries.Load())
}

func TestPeak(t *testing.T) {
	w := testWindow(t)

	tests := []struct {
		name     string
		v        VisibilityWindow
		wantTime time.Time
		wantHour float64
	}{
		{name: "no altitudes", v: VisibilityWindow{Window: w}},
		{name: "empty", v: VisibilityWindow{}},
		{
			name: "highest sample",
			v: VisibilityWindow{
				Window:    Window{Samples: w.Samples[:3]},
				PlotHours: []float64{21, 21 + 1.0/6, 21 + 2.0/6},
				Altitudes: []float64{1, 7, 3},
			},
			wantTime: w.Samples[1].Time,
			wantHour: 21 + 1.0/6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				at   time.Time
				hour float64
			)
			require.NotPanics(t, func() { at, hour = tt.v.Peak() })
			assert.True(t, tt.wantTime.Equal(at))
			assert.InDelta(t, tt.wantHour, hour, 1e-9)
		})
	}
}
