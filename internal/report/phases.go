package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/thurmanmarka/nightglide"
)

// PhaseCalendarDoc is the JSON/YAML form of a phase calendar.
type PhaseCalendarDoc struct {
	Start    string          `json:"start" yaml:"start"`
	End      string          `json:"end" yaml:"end"`
	Timezone string          `json:"timezone" yaml:"timezone"`
	Phases   []PhaseEntryDoc `json:"phases" yaml:"phases"`
	Events   []PhaseEventDoc `json:"events" yaml:"events"`
}

// PhaseEntryDoc is one label with its dates.
type PhaseEntryDoc struct {
	Phase string         `json:"phase" yaml:"phase"`
	Dates []PhaseDateDoc `json:"dates" yaml:"dates"`
}

// PhaseDateDoc is one dated occurrence.
type PhaseDateDoc struct {
	Date         string  `json:"date" yaml:"date"`
	Illumination float64 `json:"illumination" yaml:"illumination"`
}

// PhaseEventDoc is an exact major-phase instant.
type PhaseEventDoc struct {
	Phase string `json:"phase" yaml:"phase"`
	Time  string `json:"time" yaml:"time"`
}

// NewPhaseCalendarDoc converts a calendar for encoding.
func NewPhaseCalendarDoc(c *nightglide.PhaseCalendar) PhaseCalendarDoc {
	loc := c.Range.Location

	doc := PhaseCalendarDoc{
		Start:    c.Range.Start.Format(dateLayout),
		End:      c.Range.End.Format(dateLayout),
		Timezone: zoneName(loc),
		Events:   make([]PhaseEventDoc, 0, len(c.Events)),
	}

	for _, e := range c.Entries() {
		entry := PhaseEntryDoc{Phase: e.Label.String(), Dates: make([]PhaseDateDoc, 0, len(e.Dates))}
		for _, d := range e.Dates {
			entry.Dates = append(entry.Dates, PhaseDateDoc{Date: d.Date.Format(dateLayout), Illumination: d.Illumination})
		}
		doc.Phases = append(doc.Phases, entry)
	}

	for _, e := range c.Events {
		doc.Events = append(doc.Events, PhaseEventDoc{Phase: e.Kind.String(), Time: e.Time.In(loc).Format(time.RFC3339)})
	}

	return doc
}

// Phases writes a phase calendar.
func Phases(w io.Writer, c *nightglide.PhaseCalendar, o Options) error {
	if o.Format != FormatText {
		return encode(w, o.Format, NewPhaseCalendarDoc(c))
	}

	p := painter{enabled: o.Color}
	loc := c.Range.Location

	var b strings.Builder

	fmt.Fprintln(&b, p.heading("Moon Phases between %s and %s (%s)",
		c.Range.Start.Format(dateLayout), c.Range.End.Format(dateLayout), zoneName(loc)))
	fmt.Fprintln(&b)

	for _, e := range c.Entries() {
		fmt.Fprintf(&b, "%s:\n", e.Label)
		if len(e.Dates) == 0 {
			fmt.Fprintln(&b, p.muted("  (No occurrences in range)"))
		}
		for _, d := range e.Dates {
			fmt.Fprintf(&b, "  - %s  (illumination ≈ %.0f%%)\n", d.Date.Format(dateLayout), d.Illumination*100)
		}
		fmt.Fprintln(&b)
	}

	if len(c.Events) > 0 {
		tbl := newTable()
		tbl.SetTitle("Exact instants")
		tbl.AppendHeader(table.Row{"Phase", "Local", "UTC"})
		for _, e := range c.Events {
			tbl.AppendRow(table.Row{e.Kind.String(), e.Time.In(loc).Format(stampLayout), e.Time.UTC().Format(stampLayout)})
		}
		fmt.Fprintln(&b, tbl.Render())
	}

	_, err := io.WriteString(w, b.String())
	return err
}
