package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/thurmanmarka/nightglide"
)

// VisibilityDoc is the JSON/YAML form of a visibility report.
type VisibilityDoc struct {
	Target       string                 `json:"target" yaml:"target"`
	Observer     nightglide.Coordinates `json:"observer" yaml:"observer"`
	Timezone     string                 `json:"timezone" yaml:"timezone"`
	MinAltitude  float64                `json:"min_altitude" yaml:"min_altitude"`
	VisibleDates []string               `json:"visible_dates" yaml:"visible_dates"`
	Nights       []NightDoc             `json:"nights" yaml:"nights"`
	Skipped      []SkippedDoc           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Warnings     []string               `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NightDoc is one evaluated window.
type NightDoc struct {
	Date        string      `json:"date" yaml:"date"`
	Start       string      `json:"start" yaml:"start"`
	End         string      `json:"end" yaml:"end"`
	Visible     bool        `json:"visible" yaml:"visible"`
	MaxAltitude float64     `json:"max_altitude" yaml:"max_altitude"`
	Peak        string      `json:"peak" yaml:"peak"`
	Corrected   bool        `json:"corrected,omitempty" yaml:"corrected,omitempty"`
	Samples     []SampleDoc `json:"samples" yaml:"samples"`
}

// SampleDoc is one altitude sample.
type SampleDoc struct {
	Time     string  `json:"time" yaml:"time"`
	PlotHour float64 `json:"plot_hour" yaml:"plot_hour"`
	Altitude float64 `json:"altitude" yaml:"altitude"`
}

// SkippedDoc is a date that could not be evaluated.
type SkippedDoc struct {
	Date   string `json:"date" yaml:"date"`
	Reason string `json:"reason" yaml:"reason"`
}

// reportZone is the zone the report's dates are expressed in.
func reportZone(r *nightglide.VisibilityReport) *time.Location {
	switch {
	case len(r.Windows) > 0:
		return r.Windows[0].Date.Location()
	case len(r.Skipped) > 0:
		return r.Skipped[0].Date.Location()
	default:
		return time.UTC
	}
}

// NewVisibilityDoc converts a report for encoding.
func NewVisibilityDoc(r *nightglide.VisibilityReport) VisibilityDoc {
	loc := reportZone(r)

	doc := VisibilityDoc{
		Target:       r.Target.Name,
		Observer:     r.Observer,
		Timezone:     zoneName(loc),
		MinAltitude:  r.MinAltitude,
		VisibleDates: []string{},
		Nights:       make([]NightDoc, 0, len(r.Windows)),
		Warnings:     r.Warnings,
	}

	for _, w := range r.Windows {
		peak, _ := w.Peak()
		night := NightDoc{
			Date:        w.Date.Format(dateLayout),
			Start:       w.Start.In(loc).Format(time.RFC3339),
			End:         w.End.In(loc).Format(time.RFC3339),
			Visible:     w.Visible,
			MaxAltitude: w.MaxAltitude,
			Peak:        peak.In(loc).Format(time.RFC3339),
			Corrected:   w.Corrected,
			Samples:     make([]SampleDoc, len(w.Samples)),
		}
		for i, s := range w.Samples {
			night.Samples[i] = SampleDoc{
				Time:     s.Time.In(loc).Format(time.RFC3339),
				PlotHour: w.PlotHours[i],
				Altitude: w.Altitudes[i],
			}
		}
		doc.Nights = append(doc.Nights, night)

		if w.Visible {
			doc.VisibleDates = append(doc.VisibleDates, night.Date)
		}
	}

	for _, s := range r.Skipped {
		doc.Skipped = append(doc.Skipped, SkippedDoc{Date: s.Date.Format(dateLayout), Reason: s.Reason})
	}

	return doc
}

// Visibility writes a visibility report.
func Visibility(w io.Writer, r *nightglide.VisibilityReport, o Options) error {
	if o.Format != FormatText {
		return encode(w, o.Format, NewVisibilityDoc(r))
	}

	p := painter{enabled: o.Color}
	loc := reportZone(r)

	var b strings.Builder

	title := fmt.Sprintf("%s above %s", r.Target.Name, degrees(r.MinAltitude))
	if len(r.Windows) > 0 {
		w0 := r.Windows[0]
		title += fmt.Sprintf(" between %02d:00 and %02d:00 local time", w0.StartHour, w0.EndHour)
	}
	fmt.Fprintln(&b, p.heading("%s (%s)", title, zoneName(loc)))
	fmt.Fprintln(&b, p.muted("Observer %s, %.0f m", latLon(r.Observer.Lat, r.Observer.Lon), r.Observer.Elevation))
	fmt.Fprintln(&b)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Date", "Window", "Max alt", "Peak", "Status"})
	for _, vw := range r.Windows {
		peak, _ := vw.Peak()
		status := p.bad("below")
		if vw.Visible {
			status = p.good("visible")
		}
		window := fmt.Sprintf("%s-%s", vw.Start.In(loc).Format(clockLayout), vw.End.In(loc).Format(clockLayout))
		if vw.Corrected {
			window += p.warn(" *")
		}
		tbl.AppendRow(table.Row{
			vw.Date.Format(dateLayout),
			window,
			degrees(vw.MaxAltitude),
			peak.In(loc).Format(clockLayout),
			status,
		})
	}
	visible := r.VisibleWindows()
	tbl.AppendFooter(table.Row{fmt.Sprintf("Visible: %d of %d", len(visible), len(r.Windows))})
	fmt.Fprintln(&b, tbl.Render())

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.heading("Visible dates:"))
	if len(visible) == 0 {
		fmt.Fprintln(&b, "   (none)")
	}
	for _, vw := range visible {
		fmt.Fprintln(&b, "  ", vw.Date.Format(dateLayout))
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, p.bad("Skipped dates:"))
		for _, s := range r.Skipped {
			fmt.Fprintf(&b, "   %s  %s\n", s.Date.Format(dateLayout), s.Reason)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, p.warn("Warnings:"))
		for _, msg := range r.Warnings {
			fmt.Fprintf(&b, "   %s\n", msg)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
