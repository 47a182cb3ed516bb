package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/thurmanmarka/nightglide"
)

const (
	chartWidth  = "1100px"
	chartHeight = "600px"
	lineWidth   = 2

	// Above this many visible dates the legend gets in the way.
	maxLegendSeries = 15
)

// ErrNothingToPlot is returned when no date is visible.
var ErrNothingToPlot = errors.New("no visible dates to plot")

// plotKey rounds a plot hour to the minute so samples from different
// windows share an axis slot.
func plotKey(h float64) int {
	return int(math.Round(h * 60))
}

// hourLabel formats a plot hour back onto the wall clock (mod 24).
func hourLabel(key int) string {
	minutes := ((key % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewChart builds an altitude vs. local-time line chart: one series per
// visible date and a flat series at the threshold.
func NewChart(r *nightglide.VisibilityReport) (*charts.Line, error) {
	visible := r.VisibleWindows()
	if len(visible) == 0 {
		return nil, ErrNothingToPlot
	}

	keySet := make(map[int]struct{})
	for _, w := range visible {
		for _, h := range w.PlotHours {
			keySet[plotKey(h)] = struct{}{}
		}
	}
	keys := make([]int, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	labels := make([]string, len(keys))
	index := make(map[int]int, len(keys))
	for i, k := range keys {
		labels[i] = hourLabel(k)
		index[k] = i
	}

	first, last := visible[0].Date.Format(dateLayout), visible[len(visible)-1].Date.Format(dateLayout)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s altitude", r.Target.Name),
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Altitude vs Local Time", r.Target.Name),
			Subtitle: fmt.Sprintf("%s to %s", first, last),
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(visible) <= maxLegendSeries),
			Type: "scroll",
			Top:  "8%",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Local Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Altitude (°)"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	line.SetXAxis(labels)

	for _, w := range visible {
		data := make([]opts.LineData, len(keys))
		for i := range data {
			data[i] = opts.LineData{Value: "-"}
		}
		for i, h := range w.PlotHours {
			data[index[plotKey(h)]] = opts.LineData{Value: math.Round(w.Altitudes[i]*100) / 100}
		}
		line.AddSeries(w.Date.Format(dateLayout), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
		)
	}

	threshold := make([]opts.LineData, len(keys))
	for i := range threshold {
		threshold[i] = opts.LineData{Value: r.MinAltitude}
	}
	line.AddSeries(fmt.Sprintf("%s threshold", degrees(r.MinAltitude)), threshold,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: 1, Type: "dashed", Color: "#000000"}),
	)

	return line, nil
}

// WriteChart renders the chart as a standalone HTML page.
func WriteChart(w io.Writer, r *nightglide.VisibilityReport) error {
	line, err := NewChart(r)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
