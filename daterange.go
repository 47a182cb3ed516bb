package nightglide

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// DateLayout is the calendar-date format used for range bounds.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of local calendar dates. Start and End
// are local midnights in Location.
type DateRange struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// NewDateRange builds a range from the calendar dates of start and end (each
// read in its own location) interpreted in loc.
func NewDateRange(start, end time.Time, loc *time.Location) (DateRange, error) {
	if loc == nil {
		return DateRange{}, fmt.Errorf("%w: date range has no time zone", ErrConfiguration)
	}

	r := DateRange{
		Start:    timeutil.Midnight(start, loc),
		End:      timeutil.Midnight(end, loc),
		Location: loc,
	}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDateRange parses two YYYY-MM-DD dates into a range in loc.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start date: %w", ErrConfiguration, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date: %w", ErrConfiguration, err)
	}
	return NewDateRange(s, e, loc)
}

// Validate reports a zero zone or a start date after the end date.
func (r DateRange) Validate() error {
	if r.Location == nil {
		return fmt.Errorf("%w: date range has no time zone", ErrConfiguration)
	}
	if timeutil.DateAfter(r.Start, r.End) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			ErrConfiguration, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Days returns the local midnight of every date in the range, in order.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !timeutil.DateAfter(d, r.End); {
		days = append(days, d)
		y, m, dd := d.Date()
		d = time.Date(y, m, dd+1, 0, 0, 0, 0, r.Location)
	}
	return days
}

// Contains reports whether t falls on a date of the range, read in the
// range's zone.
func (r DateRange) Contains(t time.Time) bool {
	local := t.In(r.Location)
	return !timeutil.DateAfter(r.Start, local) && !timeutil.DateAfter(local, r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
