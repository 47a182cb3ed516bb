package report

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
	stampLayout = "2006-01-02 15:04 MST"
)

// newTable returns a borderless go-pretty table writer.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = true

	return tbl
}

// painter colours text when enabled.
type painter struct {
	enabled bool
}

func (p painter) paint(attr color.Attribute, format string, args ...any) string {
	c := color.New(attr)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprintf(format, args...)
}

func (p painter) good(format string, args ...any) string {
	return p.paint(color.FgGreen, format, args...)
}

func (p painter) bad(format string, args ...any) string {
	return p.paint(color.FgRed, format, args...)
}

func (p painter) warn(format string, args ...any) string {
	return p.paint(color.FgYellow, format, args...)
}

func (p painter) heading(format string, args ...any) string {
	return p.paint(color.Bold, format, args...)
}

func (p painter) muted(format string, args ...any) string {
	return p.paint(color.Faint, format, args...)
}

// degrees formats an angle with one decimal.
func degrees(v float64) string {
	return fmt.Sprintf("%.1f°", v)
}

// latLon formats coordinates with hemisphere letters.
func latLon(lat, lon float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
}

// zoneName is the location's name, or UTC for nil.
func zoneName(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	return loc.String()
}
