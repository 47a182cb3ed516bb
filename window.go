package nightglide

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// WindowSpec describes the nightly observation window: local start and end
// hours, the sampling step and the zone the hours are read in.
//
// When EndHour <= StartHour the window crosses midnight and ends on the
// following date; StartHour == EndHour is a full 24-hour window.
type WindowSpec struct {
	StartHour int            `json:"start_hour" yaml:"start_hour"`
	EndHour   int            `json:"end_hour" yaml:"end_hour"`
	Step      time.Duration  `json:"step" yaml:"step"`
	Location  *time.Location `json:"-" yaml:"-"`

	// Strict turns a window that collapses under a DST transition into an
	// error instead of a corrected window.
	Strict bool `json:"strict" yaml:"strict"`
}

// Validate checks hours, step and zone.
func (s WindowSpec) Validate() error {
	switch {
	case s.StartHour < 0 || s.StartHour > 23:
		return fmt.Errorf("%w: start hour %d outside [0, 23]", ErrConfiguration, s.StartHour)
	case s.EndHour < 0 || s.EndHour > 23:
		return fmt.Errorf("%w: end hour %d outside [0, 23]", ErrConfiguration, s.EndHour)
	case s.Step <= 0:
		return fmt.Errorf("%w: sampling step %s is not positive", ErrConfiguration, s.Step)
	case s.Location == nil:
		return fmt.Errorf("%w: window has no time zone", ErrConfiguration)
	}
	return nil
}

// CrossesMidnight reports whether the window ends on the following date.
func (s WindowSpec) CrossesMidnight() bool {
	return s.EndHour <= s.StartHour
}

// Span is the nominal wall-clock length of the window.
func (s WindowSpec) Span() time.Duration {
	hours := s.EndHour - s.StartHour
	if s.CrossesMidnight() {
		hours += 24
	}
	return time.Duration(hours) * time.Hour
}

// Sample is one instant at which the target is evaluated.
type Sample struct {
	Wall time.Time `json:"-" yaml:"-"`       // nominal local wall clock, zone-less (carried in UTC)
	Time time.Time `json:"time" yaml:"time"` // resolved instant, UTC
	Hour float64   `json:"hour" yaml:"hour"` // raw wall hour of day
}

// Window is the concrete sampling window for one local date.
type Window struct {
	Date            time.Time `json:"date" yaml:"date"` // local midnight of the evening the window starts on
	Start           time.Time `json:"start" yaml:"start"`
	End             time.Time `json:"end" yaml:"end"`
	StartHour       int       `json:"start_hour" yaml:"start_hour"`
	EndHour         int       `json:"end_hour" yaml:"end_hour"`
	CrossesMidnight bool      `json:"crosses_midnight" yaml:"crosses_midnight"`

	// Corrected is set when the wall-clock end resolved to an instant not
	// after the start and was forced to start + (EndHour - StartHour) hours.
	Corrected bool `json:"corrected,omitempty" yaml:"corrected,omitempty"`

	Samples []Sample `json:"-" yaml:"-"`
}

// Window generates the sampling window for the calendar date of date (read
// in date's own location).
//
// Samples are laid out on the wall clock from StartHour:00 every Step, and
// a final sample exactly at the end is appended when the stride misses it,
// so there are always at least two samples and the last one is the end.
// Each wall-clock sample is resolved in Location with time.Date; wall times
// that a DST transition skips or repeats resolve the way time.Date does.
func (s WindowSpec) Window(date time.Time) (Window, error) {
	if err := s.Validate(); err != nil {
		return Window{}, err
	}

	y, m, d := date.Date()
	startWall := timeutil.Civil(y, m, d, s.StartHour, 0, 0)
	endWall := startWall.Add(s.Span())

	start := timeutil.InZone(startWall, s.Location)
	end := timeutil.InZone(endWall, s.Location)

	w := Window{
		Date:            time.Date(y, m, d, 0, 0, 0, 0, s.Location),
		StartHour:       s.StartHour,
		EndHour:         s.EndHour,
		CrossesMidnight: s.CrossesMidnight(),
	}

	if !end.After(start) {
		if s.Strict {
			return Window{}, fmt.Errorf("%w: window %02d:00-%02d:00 on %s collapses to %s in %s",
				ErrConfiguration, s.StartHour, s.EndHour, date.Format(DateLayout), end.Sub(start), s.Location)
		}

		end = start.Add(time.Duration(s.EndHour-s.StartHour) * time.Hour)
		if !end.After(start) {
			return Window{}, fmt.Errorf("%w: window %02d:00-%02d:00 on %s cannot be corrected",
				ErrConfiguration, s.StartHour, s.EndHour, date.Format(DateLayout))
		}

		local := end.In(s.Location)
		endWall = timeutil.Civil(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second())
		w.Corrected = true
	}

	w.Start = start.UTC()
	w.End = end.UTC()

	for wall := startWall; wall.Before(endWall); wall = wall.Add(s.Step) {
		w.Samples = append(w.Samples, Sample{
			Wall: wall,
			Time: timeutil.InZone(wall, s.Location).UTC(),
			Hour: timeutil.HourOfDay(wall),
		})
	}
	w.Samples = append(w.Samples, Sample{
		Wall: endWall,
		Time: w.End,
		Hour: timeutil.HourOfDay(endWall),
	})

	return w, nil
}

// dayOffset is the number of wall-clock dates between the window's date and
// the sample's.
func (w Window) dayOffset(s Sample) int {
	y, m, d := w.Date.Date()
	base := timeutil.Civil(y, m, d, 0, 0, 0)
	sy, sm, sd := s.Wall.Date()
	day := timeutil.Civil(sy, sm, sd, 0, 0, 0)
	return int(day.Sub(base) / (24 * time.Hour))
}

// PlotHour maps a sample onto a continuous hour axis: samples that fall on
// a later wall date than the window's get +24 per day, so a 21:00-02:00
// window plots over [21, 26].
func (w Window) PlotHour(s Sample) float64 {
	return s.Hour + 24*float64(w.dayOffset(s))
}
