package nightglide

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/thurmanmarka/nightglide/internal/timeutil"
)

// PhaseEvent is one exact major-phase instant.
type PhaseEvent struct {
	Kind PhaseKind `json:"-" yaml:"-"`
	Time time.Time `json:"time" yaml:"time"` // UTC
}

// PhaseDate is a calendar date carrying a phase label, annotated with the
// illuminated fraction at that date's local midnight.
type PhaseDate struct {
	Date         time.Time `json:"date" yaml:"date"`
	Illumination float64   `json:"illumination" yaml:"illumination"`
}

// PhaseCalendar maps each of the eight phase labels to the dates in a range
// that carry it.
type PhaseCalendar struct {
	Range  DateRange
	Events []PhaseEvent // major events in time order
	Dates  map[PhaseLabel][]PhaseDate
}

// PhaseEntry is one label and its dates.
type PhaseEntry struct {
	Label PhaseLabel  `json:"label" yaml:"label"`
	Dates []PhaseDate `json:"dates" yaml:"dates"`
}

// Entries returns all eight labels in lunation order, including those with
// no dates in range.
func (c *PhaseCalendar) Entries() []PhaseEntry {
	out := make([]PhaseEntry, 0, len(PhaseLabels))
	for _, l := range PhaseLabels {
		out = append(out, PhaseEntry{Label: l, Dates: c.Dates[l]})
	}
	return out
}

// BuildPhaseCalendar searches every major phase in r, derives the
// intermediate phases between consecutive major events and annotates each
// date with its illumination.
//
// An intermediate date is placed one third of the way from the earlier
// event's date to the later one's, so a new moon on day 0 followed by a first
// quarter on day 9 gives a waxing crescent on day 3. Gaps at the edges of the
// range, where a bracketing event falls outside it, produce no intermediate
// date.
func BuildPhaseCalendar(ctx context.Context, eph PhaseProvider, r DateRange) (*PhaseCalendar, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cal := &PhaseCalendar{
		Range: r,
		Dates: make(map[PhaseLabel][]PhaseDate, len(PhaseLabels)),
	}

	for _, kind := range MajorPhases {
		events, err := enumeratePhase(ctx, eph, kind, r)
		if err != nil {
			return nil, err
		}
		cal.Events = append(cal.Events, events...)
	}

	sort.SliceStable(cal.Events, func(i, j int) bool {
		return cal.Events[i].Time.Before(cal.Events[j].Time)
	})

	days := make(map[PhaseLabel][]time.Time, len(PhaseLabels))
	for _, e := range cal.Events {
		days[e.Kind.Label()] = append(days[e.Kind.Label()], timeutil.Midnight(e.Time.In(r.Location), r.Location))
	}

	for i := 0; i+1 < len(cal.Events); i++ {
		a, b := cal.Events[i], cal.Events[i+1]
		label, ok := intermediateBetween(a.Kind, b.Kind)
		if !ok {
			continue
		}
		d1 := timeutil.Midnight(a.Time.In(r.Location), r.Location)
		d2 := timeutil.Midnight(b.Time.In(r.Location), r.Location)
		days[label] = append(days[label], Trisect(d1, d2))
	}

	for _, label := range PhaseLabels {
		list := days[label]
		sort.Slice(list, func(i, j int) bool { return list[i].Before(list[j]) })

		dates := make([]PhaseDate, 0, len(list))
		for _, d := range list {
			f, err := eph.IlluminationFraction(d)
			if err != nil {
				return nil, queryError(d, err)
			}
			dates = append(dates, PhaseDate{Date: d, Illumination: f})
		}
		cal.Dates[label] = dates
	}

	return cal, nil
}

// Trisect returns the local midnight of the date one third of the way from
// d1 to d2, counted in calendar days so a clock change in between does not
// shift it.
func Trisect(d1, d2 time.Time) time.Time {
	y, m, d := d1.Date()
	return time.Date(y, m, d+timeutil.DaysBetween(d1, d2)/3, 0, 0, 0, 0, d1.Location())
}

// enumeratePhase lists every occurrence of kind whose local date falls in r.
func enumeratePhase(ctx context.Context, eph PhaseFinder, kind PhaseKind, r DateRange) ([]PhaseEvent, error) {
	var events []PhaseEvent

	seed := r.Start
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := eph.NextPhase(kind, seed)
		if err != nil {
			return nil, queryError(seed, err)
		}
		if !t.After(seed) {
			return nil, &QueryError{
				Time: seed,
				Err:  fmt.Errorf("%s search returned %s, not after the seed", kind, t.UTC().Format(time.RFC3339)),
			}
		}
		if timeutil.DateAfter(t.In(r.Location), r.End) {
			break
		}

		events = append(events, PhaseEvent{Kind: kind, Time: t.UTC()})
		seed = t.Add(24 * time.Hour)
	}

	return events, nil
}
