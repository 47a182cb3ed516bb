// Package nightglide plans observing nights: for an observer location and a
// date range it computes the nightly visibility window of a celestial target
// above a minimum altitude, and a lunar phase calendar (major phases,
// interpolated intermediate phases and an illumination-fraction calendar).
//
// Positions and phase instants come from an Ephemeris. The package ships a
// built-in one, Almanac, that uses approximate closed-form series for the
// Sun, Moon and planets plus a small star catalog; callers may plug in a
// more precise provider.
//
// The core is a batch calculator: every function takes its inputs as
// arguments and returns its results, nothing is kept in package state.
package nightglide

import (
	"errors"
	"fmt"
	"time"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 `json:"latitude" yaml:"latitude"`   // degrees, north positive
	Lon       float64 `json:"longitude" yaml:"longitude"` // degrees, east positive (west negative, e.g. -105 for 105°W)
	Elevation float64 `json:"elevation" yaml:"elevation"` // meters above sea level (reserved for future use)
}

// Validate checks that the coordinates are on Earth.
func (c Coordinates) Validate() error {
	switch {
	case c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("%w: latitude %.4f outside [-90, 90]", ErrConfiguration, c.Lat)
	case c.Lon < -180 || c.Lon > 180:
		return fmt.Errorf("%w: longitude %.4f outside [-180, 180]", ErrConfiguration, c.Lon)
	case c.Elevation < 0:
		return fmt.Errorf("%w: elevation %.1f m is negative", ErrConfiguration, c.Elevation)
	}
	return nil
}

// TargetKind tells how a target's position is obtained.
type TargetKind int

const (
	// SolarSystemBody is the Sun, the Moon or a planet: its position is
	// recomputed for every instant.
	SolarSystemBody TargetKind = iota

	// CatalogObject is a star or deep-sky object with fixed J2000
	// coordinates, looked up once.
	CatalogObject
)

func (k TargetKind) String() string {
	switch k {
	case SolarSystemBody:
		return "solar-system body"
	case CatalogObject:
		return "catalog object"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// Target is a resolved celestial object. Obtain one from
// TargetResolver.Resolve; the zero value is not a valid target.
type Target struct {
	Kind TargetKind `json:"-" yaml:"-"`
	Name string     `json:"name" yaml:"name"` // canonical lower-case name

	// RA and Dec (J2000, degrees) are set for catalog objects only.
	RA  float64 `json:"ra,omitempty" yaml:"ra,omitempty"`
	Dec float64 `json:"dec,omitempty" yaml:"dec,omitempty"`
}

func (t Target) String() string {
	return t.Name
}

var (
	// ErrConfiguration is returned for invalid input detected before any
	// ephemeris query: bad hours, non-positive step, reversed date range...
	ErrConfiguration = errors.New("invalid configuration")

	// ErrTargetResolution is returned when a target name cannot be resolved.
	ErrTargetResolution = errors.New("target not resolvable")

	// ErrEphemerisQuery is returned when the ephemeris fails to answer.
	ErrEphemerisQuery = errors.New("ephemeris query failed")
)

// TargetError reports an unknown body or catalog name.
type TargetError struct {
	Name string
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("unknown target %q", e.Name)
}

func (e *TargetError) Unwrap() error {
	return ErrTargetResolution
}

// QueryError reports an ephemeris failure at a specific instant.
type QueryError struct {
	Time time.Time
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("ephemeris query at %s: %v", e.Time.UTC().Format(time.RFC3339), e.Err)
}

// Unwrap exposes both ErrEphemerisQuery and the underlying cause to
// errors.Is / errors.As.
func (e *QueryError) Unwrap() []error {
	return []error{ErrEphemerisQuery, e.Err}
}

// queryError wraps err as a *QueryError at t unless it already is one.
func queryError(t time.Time, err error) error {
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Time: t, Err: err}
}
