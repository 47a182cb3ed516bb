package nightglide

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrisect(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name   string
		d1, d2 int
		want   int
	}{
		{name: "nine days", d1: 1, d2: 10, want: 4},
		{name: "seven days", d1: 1, d2: 8, want: 3},
		{name: "eight days", d1: 12, d2: 20, want: 14},
		{name: "six days", d1: 10, d2: 16, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, day(tt.want), Trisect(day(tt.d1), day(tt.d2)))
		})
	}
}

func TestTrisect_ClockChange(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, ny) }

	tests := []struct {
		name   string
		d1, d2 time.Time
		want   time.Time
	}{
		{name: "spring forward", d1: day(time.March, 1), d2: day(time.March, 10), want: day(time.March, 4)},
		{name: "fall back", d1: day(time.October, 30), d2: day(time.November, 8), want: day(time.November, 2)},
		{name: "fall back seven days", d1: day(time.October, 31), d2: day(time.November, 7), want: day(time.November, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trisect(tt.d1, tt.d2)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestBuildPhaseCalendar_ClockChange(t *testing.T) {
	ny := mustLoadLocation(t, "America/New_York")

	// New moon on Mar 1 and first quarter on Mar 10 local, with the
	// spring-forward on Mar 9 in between.
	at := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 12, 0, 0, 0, ny) }
	eph := &fakeEphemeris{phases: map[PhaseKind][]time.Time{
		NewMoon:      {at(time.March, 1), at(time.March, 29)},
		FirstQuarter: {at(time.March, 10), at(time.April, 5)},
		FullMoon:     {at(time.March, 14)},
		LastQuarter:  {at(time.March, 22)},
	}}
	r := mustDateRange(t, "2025-03-01", "2025-03-12", ny)

	cal, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-03-01"}, dates(cal.Dates[LabelNewMoon]))
	assert.Equal(t, []string{"2025-03-04"}, dates(cal.Dates[LabelWaxingCrescent]))
	assert.Equal(t, []string{"2025-03-10"}, dates(cal.Dates[LabelFirstQuarter]))
}

// scriptedLunation is January 2025-like: NM Jan 1, FQ Jan 10 (nine days
// later), FM Jan 16, LQ Jan 23, NM Jan 30, then February events beyond the
// test ranges.
func scriptedLunation() map[PhaseKind][]time.Time {
	return map[PhaseKind][]time.Time{
		NewMoon:      {utc(2025, time.January, 1, 10, 0), utc(2025, time.January, 30, 10, 0), utc(2025, time.February, 28, 10, 0)},
		FirstQuarter: {utc(2025, time.January, 10, 10, 0), utc(2025, time.February, 8, 10, 0)},
		FullMoon:     {utc(2025, time.January, 16, 10, 0), utc(2025, time.February, 14, 10, 0)},
		LastQuarter:  {utc(2025, time.January, 23, 10, 0), utc(2025, time.February, 21, 10, 0)},
	}
}

func TestBuildPhaseCalendar(t *testing.T) {
	eph := &fakeEphemeris{
		phases: scriptedLunation(),
		illumination: func(t time.Time) (float64, error) {
			return float64(t.Day()) / 100, nil
		},
	}
	r := mustDateRange(t, "2025-01-01", "2025-01-31", time.UTC)

	cal, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.NoError(t, err)

	want := map[PhaseLabel][]string{
		LabelNewMoon:        {"2025-01-01", "2025-01-30"},
		LabelWaxingCrescent: {"2025-01-04"},
		LabelFirstQuarter:   {"2025-01-10"},
		LabelWaxingGibbous:  {"2025-01-12"},
		LabelFullMoon:       {"2025-01-16"},
		LabelWaningGibbous:  {"2025-01-18"},
		LabelLastQuarter:    {"2025-01-23"},
		LabelWaningCrescent: {"2025-01-25"},
	}

	require.Len(t, cal.Dates, len(PhaseLabels))
	for label, ds := range want {
		assert.Equal(t, ds, dates(cal.Dates[label]), label.String())
	}

	assert.Len(t, cal.Events, 5)
	for i := 1; i < len(cal.Events); i++ {
		assert.True(t, cal.Events[i-1].Time.Before(cal.Events[i].Time))
	}

	wc := cal.Dates[LabelWaxingCrescent][0]
	assert.InDelta(t, 0.04, wc.Illumination, 1e-12)

	entries := cal.Entries()
	require.Len(t, entries, 8)
	assert.Equal(t, LabelNewMoon, entries[0].Label)
	assert.Equal(t, LabelWaningCrescent, entries[7].Label)
}

func TestBuildPhaseCalendar_EdgeGaps(t *testing.T) {
	eph := &fakeEphemeris{phases: scriptedLunation()}

	// The new moon of Jan 1 is outside the range, so there is no waxing
	// crescent before the Jan 10 first quarter; the Jan 30 new moon has no
	// first quarter in range after it.
	r := mustDateRange(t, "2025-01-05", "2025-01-31", time.UTC)

	cal, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.NoError(t, err)

	assert.Empty(t, cal.Dates[LabelWaxingCrescent])
	assert.Equal(t, []string{"2025-01-30"}, dates(cal.Dates[LabelNewMoon]))
	assert.Equal(t, []string{"2025-01-25"}, dates(cal.Dates[LabelWaningCrescent]))
}

func TestBuildPhaseCalendar_LocalDates(t *testing.T) {
	kl := mustLoadLocation(t, "Asia/Kuala_Lumpur")
	eph := &fakeEphemeris{phases: map[PhaseKind][]time.Time{
		// 20:00 UTC is 04:00 the next day in Kuala Lumpur.
		NewMoon:      {utc(2025, time.January, 1, 20, 0), utc(2025, time.March, 1, 0, 0)},
		FirstQuarter: {utc(2025, time.February, 9, 0, 0)},
		FullMoon:     {utc(2025, time.February, 9, 0, 0)},
		LastQuarter:  {utc(2025, time.February, 9, 0, 0)},
	}}
	r := mustDateRange(t, "2025-01-01", "2025-01-31", kl)

	cal, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-02"}, dates(cal.Dates[LabelNewMoon]))
	assert.Equal(t, kl, cal.Dates[LabelNewMoon][0].Date.Location())
}

func TestBuildPhaseCalendar_NotAfterSeed(t *testing.T) {
	stuck := utc(2025, time.January, 1, 0, 0)
	eph := &stuckPhaseFinder{at: stuck}

	r := mustDateRange(t, "2025-01-01", "2025-01-31", time.UTC)
	_, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.ErrorIs(t, err, ErrEphemerisQuery)
}

func TestBuildPhaseCalendar_ProviderFailure(t *testing.T) {
	// No scripted events at all.
	eph := &fakeEphemeris{}
	r := mustDateRange(t, "2025-01-01", "2025-01-31", time.UTC)

	_, err := BuildPhaseCalendar(context.Background(), eph, r)
	require.ErrorIs(t, err, ErrEphemerisQuery)
}

// stuckPhaseFinder always answers the same instant.
type stuckPhaseFinder struct {
	at time.Time
}

func (s *stuckPhaseFinder) NextPhase(PhaseKind, time.Time) (time.Time, error) {
	return s.at, nil
}

func (s *stuckPhaseFinder) IlluminationFraction(time.Time) (float64, error) {
	return 0, nil
}

func TestIntermediateBetween(t *testing.T) {
	tests := []struct {
		a, b   PhaseKind
		want   PhaseLabel
		wantOK bool
	}{
		{a: NewMoon, b: FirstQuarter, want: LabelWaxingCrescent, wantOK: true},
		{a: FirstQuarter, b: FullMoon, want: LabelWaxingGibbous, wantOK: true},
		{a: FullMoon, b: LastQuarter, want: LabelWaningGibbous, wantOK: true},
		{a: LastQuarter, b: NewMoon, want: LabelWaningCrescent, wantOK: true},
		{a: NewMoon, b: FullMoon},
		{a: FirstQuarter, b: NewMoon},
		{a: NewMoon, b: NewMoon},
	}

	for _, tt := range tests {
		got, ok := intermediateBetween(tt.a, tt.b)
		assert.Equal(t, tt.wantOK, ok, "%s -> %s", tt.a, tt.b)
		if tt.wantOK {
			assert.Equal(t, tt.want, got)
		}
	}
}
