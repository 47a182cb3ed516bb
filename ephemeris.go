package nightglide

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/nightglide/internal/catalog"
	"github.com/thurmanmarka/nightglide/internal/moon"
	"github.com/thurmanmarka/nightglide/internal/planet"
	"github.com/thurmanmarka/nightglide/internal/sun"
	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// TargetResolver turns a user-supplied body or object name into a Target.
type TargetResolver interface {
	Resolve(name string) (Target, error)
}

// AltitudeProvider returns the apparent altitude of a target, in degrees,
// for an observer at a given instant.
type AltitudeProvider interface {
	Altitude(t time.Time, loc Coordinates, target Target) (float64, error)
}

// PhaseFinder finds the next occurrence of a major lunar phase strictly
// after a given instant.
type PhaseFinder interface {
	NextPhase(kind PhaseKind, after time.Time) (time.Time, error)
}

// IlluminationProvider returns the Moon's illuminated fraction in [0, 1].
type IlluminationProvider interface {
	IlluminationFraction(t time.Time) (float64, error)
}

// PhaseProvider combines phase search and illumination.
type PhaseProvider interface {
	PhaseFinder
	IlluminationProvider
}

// Ephemeris is everything the planner needs from an astronomical model.
// Implementations must be safe for concurrent use when Planner.Workers > 1.
type Ephemeris interface {
	TargetResolver
	AltitudeProvider
	PhaseProvider
}

// Almanac is the built-in Ephemeris. It knows the Sun, the Moon, the
// planets and a small catalog of named stars and deep-sky objects.
//
// Accuracy is that of the underlying series: a few arc-minutes for the
// Sun, a fraction of a degree for the Moon and planets, and minutes of
// time for phase instants. Altitudes are geometric (no refraction);
// the Moon's is topocentric. Observer elevation is ignored.
//
// Almanac is stateless and safe for concurrent use.
type Almanac struct{}

var _ Ephemeris = Almanac{}

// NewAlmanac returns the built-in ephemeris.
func NewAlmanac() Almanac {
	return Almanac{}
}

// Resolve looks name up among solar-system bodies first, then in the
// catalog. Matching is case-insensitive.
func (Almanac) Resolve(name string) (Target, error) {
	key := catalog.Normalize(name)

	if key == "sun" || key == "moon" || planet.Known(key) {
		return Target{Kind: SolarSystemBody, Name: key}, nil
	}

	if e, ok := catalog.Lookup(key); ok {
		return Target{Kind: CatalogObject, Name: e.Name, RA: e.RA, Dec: e.Dec}, nil
	}

	return Target{}, &TargetError{Name: name}
}

// Altitude implements AltitudeProvider.
func (Almanac) Altitude(t time.Time, loc Coordinates, target Target) (float64, error) {
	utc := t.UTC()

	var alt float64
	switch target.Kind {
	case SolarSystemBody:
		switch target.Name {
		case "sun":
			alt = sun.Altitude(loc.Lat, loc.Lon, utc)
		case "moon":
			alt = moon.Altitude(loc.Lat, loc.Lon, utc)
		default:
			a, ok := planet.Altitude(target.Name, loc.Lat, loc.Lon, utc)
			if !ok {
				return 0, &QueryError{Time: utc, Err: &TargetError{Name: target.Name}}
			}
			alt = a
		}
	case CatalogObject:
		alt = timeutil.AltitudeFromEquatorial(loc.Lat, loc.Lon, target.RA, target.Dec, utc)
	default:
		return 0, &QueryError{Time: utc, Err: fmt.Errorf("unsupported target kind %v", target.Kind)}
	}

	if math.IsNaN(alt) || math.IsInf(alt, 0) {
		return 0, &QueryError{Time: utc, Err: errors.New("altitude is not finite")}
	}
	return alt, nil
}

// NextPhase implements PhaseFinder. The returned instant is in UTC.
func (Almanac) NextPhase(kind PhaseKind, after time.Time) (time.Time, error) {
	angle, ok := kind.angle()
	if !ok {
		return time.Time{}, &QueryError{Time: after, Err: fmt.Errorf("unknown phase kind %d", int(kind))}
	}

	t, ok := moon.NextPhase(angle, after)
	if !ok {
		return time.Time{}, &QueryError{Time: after, Err: fmt.Errorf("no %s found within one lunation", kind)}
	}
	return t, nil
}

// IlluminationFraction implements IlluminationProvider.
func (Almanac) IlluminationFraction(t time.Time) (float64, error) {
	return moon.IlluminationAt(t).Fraction, nil
}
