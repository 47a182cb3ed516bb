package nightglide

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

// fakeEphemeris is a scripted Ephemeris for tests.
type fakeEphemeris struct {
	targets      map[string]Target
	altitude     func(t time.Time, target Target) (float64, error)
	phases       map[PhaseKind][]time.Time
	illumination func(t time.Time) (float64, error)

	mu       sync.Mutex
	resolves atomic.Int32
	queries  atomic.Int32
}

var _ Ephemeris = (*fakeEphemeris)(nil)

func (f *fakeEphemeris) Resolve(name string) (Target, error) {
	f.resolves.Add(1)
	t, ok := f.targets[strings.ToLower(name)]
	if !ok {
		return Target{}, &TargetError{Name: name}
	}
	return t, nil
}

func (f *fakeEphemeris) Altitude(t time.Time, _ Coordinates, target Target) (float64, error) {
	f.queries.Add(1)
	if f.altitude == nil {
		return 0, errors.New("no altitude model")
	}
	return f.altitude(t, target)
}

func (f *fakeEphemeris) NextPhase(kind PhaseKind, after time.Time) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.phases[kind]
	sort.Slice(list, func(i, j int) bool { return list[i].Before(list[j]) })
	for _, t := range list {
		if t.After(after) {
			return t, nil
		}
	}
	return time.Time{}, errors.New("no scripted phase")
}

func (f *fakeEphemeris) IlluminationFraction(t time.Time) (float64, error) {
	if f.illumination == nil {
		return 0.5, nil
	}
	return f.illumination(t)
}

// constantAltitude returns an altitude model that always answers alt.
func constantAltitude(alt float64) func(time.Time, Target) (float64, error) {
	return func(time.Time, Target) (float64, error) { return alt, nil }
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func mustDateRange(t *testing.T, start, end string, loc *time.Location) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end, loc)
	require.NoError(t, err)
	return r
}

func utc(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func dates(ds []PhaseDate) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Date.Format(DateLayout))
	}
	return out
}
