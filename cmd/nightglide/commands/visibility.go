package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/nightglide"
	"github.com/thurmanmarka/nightglide/internal/config"
	"github.com/thurmanmarka/nightglide/internal/report"
)

var visibilityBindings = map[string]string{
	"target.name":         "target",
	"target.min_altitude": "min-altitude",
	"window.start_hour":   "start-hour",
	"window.end_hour":     "end-hour",
	"window.step_minutes": "step",
	"window.strict":       "strict",
	"report.chart":        "chart",
}

func newVisibilityCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "List the dates a target clears the minimum altitude in the nightly window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVisibility(cmd, *configPath)
		},
	}

	flags := cmd.Flags()
	flags.StringP("target", "t", config.DefaultTargetName, "solar-system body or catalog object name")
	flags.Float64("min-altitude", config.DefaultTargetMinAltitude, "minimum altitude in degrees")
	flags.Int("start-hour", config.DefaultWindowStartHour, "window start hour, local time (0-23)")
	flags.Int("end-hour", config.DefaultWindowEndHour, "window end hour, local time (0-23); <= start crosses midnight")
	flags.Int("step", config.DefaultWindowStepMinutes, "sampling step in minutes")
	flags.Bool("strict", config.DefaultWindowStrict, "fail on a degenerate window instead of correcting it")
	flags.String("chart", config.DefaultReportChart, "write an HTML altitude chart to this path")

	return cmd
}

func runVisibility(cmd *cobra.Command, configPath string) error {
	cfg, planner, opts, err := setup(cmd, configPath, visibilityBindings)
	if err != nil {
		return err
	}

	req, err := cfg.VisibilityRequest()
	if err != nil {
		return err
	}

	rep, runErr := planner.Visibility(cmd.Context(), req)
	if rep == nil {
		return runErr
	}

	if err := report.Visibility(cmd.OutOrStdout(), rep, opts); err != nil {
		return err
	}

	if cfg.Report.Chart != "" {
		if len(rep.VisibleWindows()) == 0 {
			planner.Logger.Warn("chart not written", "path", cfg.Report.Chart, "reason", report.ErrNothingToPlot)
		} else {
			if err := writeChart(cfg.Report.Chart, rep); err != nil {
				return err
			}
			planner.Logger.Info("chart written", "path", cfg.Report.Chart)
		}
	}

	return runErr
}

func writeChart(path string, rep *nightglide.VisibilityReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}

	writeErr := report.WriteChart(f, rep)
	closeErr := f.Close()

	return errors.Join(writeErr, closeErr)
}
