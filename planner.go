package nightglide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// SkippedDate is a date the planner could not evaluate.
type SkippedDate struct {
	Date   time.Time `json:"date" yaml:"date"`
	Reason string    `json:"reason" yaml:"reason"`
	Err    error     `json:"-" yaml:"-"`
}

func newSkippedDate(day time.Time, err error) SkippedDate {
	return SkippedDate{Date: day, Reason: err.Error(), Err: err}
}

// VisibilityRequest holds the inputs of one visibility run.
type VisibilityRequest struct {
	Observer    Coordinates
	Target      string
	MinAltitude float64
	Range       DateRange
	Window      WindowSpec
}

// Validate checks everything that can be checked before the first
// ephemeris query.
func (r VisibilityRequest) Validate() error {
	if err := r.Observer.Validate(); err != nil {
		return err
	}
	if r.Target == "" {
		return fmt.Errorf("%w: no target", ErrConfiguration)
	}
	if r.MinAltitude < -90 || r.MinAltitude > 90 {
		return fmt.Errorf("%w: minimum altitude %.2f outside [-90, 90]", ErrConfiguration, r.MinAltitude)
	}
	if err := r.Range.Validate(); err != nil {
		return err
	}
	return r.Window.Validate()
}

// VisibilityReport is the result of a visibility run: one window per date
// that could be evaluated, the dates that could not and any warnings.
type VisibilityReport struct {
	Observer    Coordinates        `json:"observer" yaml:"observer"`
	Target      Target             `json:"target" yaml:"target"`
	MinAltitude float64            `json:"min_altitude" yaml:"min_altitude"`
	Windows     []VisibilityWindow `json:"windows" yaml:"windows"`
	Skipped     []SkippedDate      `json:"skipped" yaml:"skipped"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// VisibleWindows returns the windows in which the target clears the
// threshold, in date order.
func (r *VisibilityReport) VisibleWindows() []VisibilityWindow {
	var out []VisibilityWindow
	for _, w := range r.Windows {
		if w.Visible {
			out = append(out, w)
		}
	}
	return out
}

// Planner runs the per-date loops over an Ephemeris.
type Planner struct {
	Ephemeris Ephemeris

	// Logger receives per-date warnings. Nil means slog.Default().
	Logger *slog.Logger

	// Workers bounds how many dates are evaluated at once. Values below 2
	// evaluate sequentially.
	Workers int
}

// NewPlanner returns a sequential planner over eph.
func NewPlanner(eph Ephemeris, logger *slog.Logger) *Planner {
	return &Planner{Ephemeris: eph, Logger: logger, Workers: 1}
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// dayResult is the outcome for one date; exactly one of window and skipped
// is meaningful.
type dayResult struct {
	window  VisibilityWindow
	skipped *SkippedDate
	warning string
}

// Visibility evaluates the target for every date of req.Range.
//
// Configuration and target resolution errors abort the run before any
// date is evaluated. A date whose window cannot be built or whose altitude
// queries fail is recorded in Skipped and the loop continues. If ctx is
// cancelled the dates finished so far are returned with ctx's error.
func (p *Planner) Visibility(ctx context.Context, req VisibilityRequest) (*VisibilityReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	target, err := p.Ephemeris.Resolve(req.Target)
	if err != nil {
		if !errors.Is(err, ErrTargetResolution) {
			err = fmt.Errorf("%w: %w", ErrTargetResolution, err)
		}
		return nil, err
	}

	log := p.logger().With("target", target.Name)
	days := req.Range.Days()
	results := make([]*dayResult, len(days))

	eval := func(i int) {
		day := days[i]
		res := &dayResult{}
		results[i] = res

		w, err := req.Window.Window(day)
		if err != nil {
			s := newSkippedDate(day, err)
			res.skipped = &s
			log.Warn("window skipped", "date", day.Format(DateLayout), "error", err)
			return
		}
		if w.Corrected {
			res.warning = fmt.Sprintf("%s: window %02d:00-%02d:00 collapsed across a clock change, end forced to %s",
				day.Format(DateLayout), w.StartHour, w.EndHour, w.End.In(req.Window.Location).Format("15:04 MST"))
			log.Warn("degenerate window corrected",
				"date", day.Format(DateLayout), "start", w.Start, "end", w.End)
		}

		v, err := Evaluate(ctx, p.Ephemeris, req.Observer, target, w, req.MinAltitude)
		if err != nil {
			s := newSkippedDate(day, err)
			res.skipped = &s
			log.Warn("date skipped", "date", day.Format(DateLayout), "error", err)
			return
		}
		res.window = v
		log.Debug("date evaluated", "date", day.Format(DateLayout),
			"visible", v.Visible, "max_altitude", v.MaxAltitude)
	}

	var runErr error
	if p.Workers < 2 {
		for i := range days {
			if err := ctx.Err(); err != nil {
				runErr = err
				break
			}
			eval(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.Workers)
		for i := range days {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				eval(i)
				return nil
			})
		}
		runErr = g.Wait()
		if runErr == nil {
			runErr = ctx.Err()
		}
	}

	report := &VisibilityReport{
		Observer:    req.Observer,
		Target:      target,
		MinAltitude: req.MinAltitude,
	}
	for _, res := range results {
		switch {
		case res == nil:
			// not reached before cancellation
		case res.skipped != nil:
			if runErr != nil && errors.Is(res.skipped.Err, runErr) {
				continue
			}
			report.Skipped = append(report.Skipped, *res.skipped)
		default:
			report.Windows = append(report.Windows, res.window)
		}
		if res != nil && res.warning != "" {
			report.Warnings = append(report.Warnings, res.warning)
		}
	}

	if runErr != nil {
		return report, fmt.Errorf("visibility run interrupted: %w", runErr)
	}
	return report, nil
}

// Phases builds the lunar phase calendar for r.
func (p *Planner) Phases(ctx context.Context, r DateRange) (*PhaseCalendar, error) {
	cal, err := BuildPhaseCalendar(ctx, p.Ephemeris, r)
	if err != nil {
		return nil, err
	}
	p.logger().Debug("phase calendar built", "range", r.String(), "events", len(cal.Events))
	return cal, nil
}

// Illumination builds the illumination calendar for r and logs skipped
// dates.
func (p *Planner) Illumination(ctx context.Context, r DateRange, minFrac, maxFrac float64) (*IlluminationCalendar, error) {
	cal, err := BuildIlluminationCalendar(ctx, p.Ephemeris, r, minFrac, maxFrac)
	if cal != nil {
		for _, s := range cal.Skipped {
			p.logger().Warn("illumination skipped", "date", s.Date.Format(DateLayout), "error", s.Err)
		}
	}
	return cal, err
}
