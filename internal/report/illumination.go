package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/thurmanmarka/nightglide"
)

// IlluminationDoc is the JSON/YAML form of an illumination calendar.
type IlluminationDoc struct {
	Start      string                  `json:"start" yaml:"start"`
	End        string                  `json:"end" yaml:"end"`
	MinPercent float64                 `json:"min_percent" yaml:"min_percent"`
	MaxPercent float64                 `json:"max_percent" yaml:"max_percent"`
	Dates      []IlluminationRecordDoc `json:"dates" yaml:"dates"`
	Skipped    []SkippedDoc            `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// IlluminationRecordDoc is one date within the band.
type IlluminationRecordDoc struct {
	Date    string  `json:"date" yaml:"date"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// NewIlluminationDoc converts a calendar for encoding.
func NewIlluminationDoc(c *nightglide.IlluminationCalendar) IlluminationDoc {
	doc := IlluminationDoc{
		Start:      c.Range.Start.Format(dateLayout),
		End:        c.Range.End.Format(dateLayout),
		MinPercent: c.Min * 100,
		MaxPercent: c.Max * 100,
		Dates:      make([]IlluminationRecordDoc, 0, len(c.Records)),
	}

	for _, r := range c.Records {
		doc.Dates = append(doc.Dates, IlluminationRecordDoc{Date: r.Date.Format(dateLayout), Percent: r.Fraction * 100})
	}
	for _, s := range c.Skipped {
		doc.Skipped = append(doc.Skipped, SkippedDoc{Date: s.Date.Format(dateLayout), Reason: s.Reason})
	}

	return doc
}

// Illumination writes an illumination calendar.
func Illumination(w io.Writer, c *nightglide.IlluminationCalendar, o Options) error {
	if o.Format != FormatText {
		return encode(w, o.Format, NewIlluminationDoc(c))
	}

	p := painter{enabled: o.Color}

	var b strings.Builder

	fmt.Fprintln(&b, p.heading("Dates with Moon illumination between %.0f%% and %.0f%%:", c.Min*100, c.Max*100))

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Date", "Illumination"})
	for _, r := range c.Records {
		tbl.AppendRow(table.Row{r.Date.Format(dateLayout), fmt.Sprintf("%.1f%%", r.Fraction*100)})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d dates", len(c.Records))})
	fmt.Fprintln(&b, tbl.Render())

	if len(c.Skipped) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, p.bad("Skipped dates:"))
		for _, s := range c.Skipped {
			fmt.Fprintf(&b, "   %s  %s\n", s.Date.Format(dateLayout), s.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// MoonPhase writes an instantaneous moon phase.
func MoonPhase(w io.Writer, m nightglide.MoonPhase, o Options) error {
	if o.Format != FormatText {
		return encode(w, o.Format, m)
	}

	p := painter{enabled: o.Color}
	trend := "waning"
	if m.Waxing {
		trend = "waxing"
	}

	_, err := fmt.Fprintf(w, "%s  %s  %.1f%% illuminated, elongation %s, %s\n",
		m.Time.Format(stampLayout), p.heading("%s", m.Label), m.Fraction*100, degrees(m.Elongation), trend)
	return err
}
