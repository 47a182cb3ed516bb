package nightglide

import (
	"context"
	"fmt"
	"time"
)

// IlluminationRecord is the Moon's illuminated fraction at a date's local
// midnight.
type IlluminationRecord struct {
	Date     time.Time `json:"date" yaml:"date"`
	Fraction float64   `json:"fraction" yaml:"fraction"`
}

// IlluminationCalendar lists the dates of a range whose illumination falls
// in [Min, Max].
type IlluminationCalendar struct {
	Range   DateRange
	Min     float64
	Max     float64
	Records []IlluminationRecord
	Skipped []SkippedDate
}

// ValidateIlluminationBand checks 0 <= minFrac <= maxFrac <= 1.
func ValidateIlluminationBand(minFrac, maxFrac float64) error {
	if minFrac < 0 || maxFrac > 1 || minFrac > maxFrac {
		return fmt.Errorf("%w: illumination band [%.2f, %.2f] must satisfy 0 <= min <= max <= 1",
			ErrConfiguration, minFrac, maxFrac)
	}
	return nil
}

// BuildIlluminationCalendar samples the illuminated fraction at local
// midnight of every date in r and keeps the dates with minFrac <= f <= maxFrac.
// A date whose query fails is recorded in Skipped and the scan continues.
func BuildIlluminationCalendar(
	ctx context.Context,
	eph IlluminationProvider,
	r DateRange,
	minFrac, maxFrac float64,
) (*IlluminationCalendar, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateIlluminationBand(minFrac, maxFrac); err != nil {
		return nil, err
	}

	cal := &IlluminationCalendar{Range: r, Min: minFrac, Max: maxFrac}

	for _, day := range r.Days() {
		if err := ctx.Err(); err != nil {
			return cal, err
		}

		f, err := eph.IlluminationFraction(day)
		if err != nil {
			cal.Skipped = append(cal.Skipped, newSkippedDate(day, queryError(day, err)))
			continue
		}
		if f >= minFrac && f <= maxFrac {
			cal.Records = append(cal.Records, IlluminationRecord{Date: day, Fraction: f})
		}
	}

	return cal, nil
}
