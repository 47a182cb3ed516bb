package nightglide

import (
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/moon"
)

// PhaseKind identifies one of the four major lunar phases, the ones an
// ephemeris can search for.
type PhaseKind int

const (
	NewMoon PhaseKind = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

// MajorPhases lists the searchable phases in lunation order.
var MajorPhases = []PhaseKind{NewMoon, FirstQuarter, FullMoon, LastQuarter}

// Label returns the calendar label of the phase.
func (k PhaseKind) Label() PhaseLabel {
	switch k {
	case NewMoon:
		return LabelNewMoon
	case FirstQuarter:
		return LabelFirstQuarter
	case FullMoon:
		return LabelFullMoon
	case LastQuarter:
		return LabelLastQuarter
	default:
		return PhaseLabel(-1)
	}
}

// angle is the Moon-minus-Sun ecliptic longitude of the phase, in degrees.
func (k PhaseKind) angle() (float64, bool) {
	switch k {
	case NewMoon:
		return moon.NewMoonAngle, true
	case FirstQuarter:
		return moon.FirstQuarterAngle, true
	case FullMoon:
		return moon.FullMoonAngle, true
	case LastQuarter:
		return moon.LastQuarterAngle, true
	default:
		return 0, false
	}
}

func (k PhaseKind) String() string {
	if l := k.Label(); l >= 0 {
		return l.String()
	}
	return fmt.Sprintf("PhaseKind(%d)", int(k))
}

// PhaseLabel is one of the eight calendar labels, major and intermediate.
// The values are in lunation order.
type PhaseLabel int

const (
	LabelNewMoon PhaseLabel = iota
	LabelWaxingCrescent
	LabelFirstQuarter
	LabelWaxingGibbous
	LabelFullMoon
	LabelWaningGibbous
	LabelLastQuarter
	LabelWaningCrescent
)

var labelNames = [...]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// PhaseLabels lists all eight labels in lunation order.
var PhaseLabels = []PhaseLabel{
	LabelNewMoon, LabelWaxingCrescent, LabelFirstQuarter, LabelWaxingGibbous,
	LabelFullMoon, LabelWaningGibbous, LabelLastQuarter, LabelWaningCrescent,
}

func (l PhaseLabel) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("PhaseLabel(%d)", int(l))
	}
	return labelNames[l]
}

// MarshalText encodes the label by name.
func (l PhaseLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Intermediate reports whether the label is derived rather than searched.
func (l PhaseLabel) Intermediate() bool {
	return l%2 == 1
}

// intermediateBetween returns the label that lies between two consecutive
// major phases, or false when b does not follow a in the lunation cycle.
func intermediateBetween(a, b PhaseKind) (PhaseLabel, bool) {
	switch {
	case a == NewMoon && b == FirstQuarter:
		return LabelWaxingCrescent, true
	case a == FirstQuarter && b == FullMoon:
		return LabelWaxingGibbous, true
	case a == FullMoon && b == LastQuarter:
		return LabelWaningGibbous, true
	case a == LastQuarter && b == NewMoon:
		return LabelWaningCrescent, true
	default:
		return 0, false
	}
}

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time       time.Time  `json:"time" yaml:"time"`             // the instant this phase is evaluated at
	Fraction   float64    `json:"fraction" yaml:"fraction"`     // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64    `json:"elongation" yaml:"elongation"` // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool       `json:"waxing" yaml:"waxing"`         // true if waxing (illumination increasing), false if waning
	Label      PhaseLabel `json:"name" yaml:"name"`             // e.g. New Moon, Waxing Crescent, First Quarter...
}

// MoonPhaseAt computes the Moon's illuminated fraction and qualitative phase
// at the given time. Phase is a global property (independent of observer
// location), so we work in UTC internally and return the original time.
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	ill := moon.IlluminationAt(t.UTC())

	return MoonPhase{
		Time:       t,
		Fraction:   ill.Fraction,
		Elongation: ill.Elongation,
		Waxing:     ill.Waxing,
		Label:      classifyMoonPhase(ill.Fraction, ill.Waxing),
	}, nil
}

func classifyMoonPhase(f float64, waxing bool) PhaseLabel {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return LabelNewMoon
	case f > 1-eps:
		return LabelFullMoon
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return LabelFirstQuarter
		}
		return LabelLastQuarter
	case f < 0.5:
		if waxing {
			return LabelWaxingCrescent
		}
		return LabelWaningCrescent
	default: // f > 0.5 but not near 1
		if waxing {
			return LabelWaxingGibbous
		}
		return LabelWaningGibbous
	}
}
