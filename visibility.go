package nightglide

import (
	"context"
	"math"
	"time"
)

// VisibilityWindow is a Window with the target's altitude evaluated at
// every sample.
type VisibilityWindow struct {
	Window

	Target      string    `json:"target" yaml:"target"`
	Threshold   float64   `json:"threshold" yaml:"threshold"`
	PlotHours   []float64 `json:"plot_hours" yaml:"plot_hours"`
	Altitudes   []float64 `json:"altitudes" yaml:"altitudes"`
	MaxAltitude float64   `json:"max_altitude" yaml:"max_altitude"`

	// Visible is true when at least one altitude is strictly above the
	// threshold.
	Visible bool `json:"visible" yaml:"visible"`
}

// Peak returns the instant and plot hour of the highest sample.
func (v VisibilityWindow) Peak() (time.Time, float64) {
	if len(v.Altitudes) == 0 {
		return time.Time{}, 0
	}

	best := 0
	for i, a := range v.Altitudes {
		if a > v.Altitudes[best] {
			best = i
		}
	}
	if best >= len(v.Samples) || best >= len(v.PlotHours) {
		return time.Time{}, 0
	}
	return v.Samples[best].Time, v.PlotHours[best]
}

// Evaluate queries the altitude of target at every sample of w and decides
// visibility against minAltitude. Any failed query fails the whole window.
func Evaluate(
	ctx context.Context,
	eph AltitudeProvider,
	loc Coordinates,
	target Target,
	w Window,
	minAltitude float64,
) (VisibilityWindow, error) {
	if err := ctx.Err(); err != nil {
		return VisibilityWindow{}, err
	}

	v := VisibilityWindow{
		Window:      w,
		Target:      target.Name,
		Threshold:   minAltitude,
		PlotHours:   make([]float64, len(w.Samples)),
		Altitudes:   make([]float64, len(w.Samples)),
		MaxAltitude: math.Inf(-1),
	}

	for i, s := range w.Samples {
		alt, err := eph.Altitude(s.Time, loc, target)
		if err != nil {
			return VisibilityWindow{}, queryError(s.Time, err)
		}

		v.PlotHours[i] = w.PlotHour(s)
		v.Altitudes[i] = alt
		if alt > v.MaxAltitude {
			v.MaxAltitude = alt
		}
		if alt > minAltitude {
			v.Visible = true
		}
	}

	return v, nil
}
