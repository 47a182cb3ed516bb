// Package commands implements CLI command handlers for nightglide.
package commands

import (
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thurmanmarka/nightglide"
	"github.com/thurmanmarka/nightglide/internal/config"
	"github.com/thurmanmarka/nightglide/internal/report"
)

// sharedBindings maps config keys to the persistent flags every subcommand
// inherits.
var sharedBindings = map[string]string{
	"observer.latitude":  "lat",
	"observer.longitude": "lon",
	"observer.elevation": "elevation",
	"observer.timezone":  "tz",
	"range.start":        "start",
	"range.end":          "end",
	"workers":            "workers",
	"logging.level":      "log-level",
	"logging.format":     "log-format",
	"report.format":      "format",
	"report.no_color":    "no-color",
}

// NewRootCommand builds the nightglide command tree.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "nightglide",
		Short: "Plan observing nights: target visibility and lunar phase calendars",
		Long: `nightglide evaluates, date by date, whether a sky object clears a minimum
altitude during a nightly observation window, and builds Moon phase and
illumination calendars for a date range.

Settings come from .nightglide.yaml (CWD or $HOME), NIGHTGLIDE_* environment
variables and flags, with flags taking precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default .nightglide.yaml in CWD or $HOME)")
	flags.Float64("lat", config.DefaultObserverLatitude, "observer latitude in degrees, north positive")
	flags.Float64("lon", config.DefaultObserverLongitude, "observer longitude in degrees, east positive")
	flags.Float64("elevation", config.DefaultObserverElevation, "observer elevation in metres")
	flags.String("tz", config.DefaultObserverTimezone, "observer IANA time zone")
	flags.String("start", config.DefaultRangeStart, "first date (YYYY-MM-DD)")
	flags.String("end", config.DefaultRangeEnd, "last date, inclusive (YYYY-MM-DD)")
	flags.Int("workers", config.DefaultWorkers, "dates evaluated concurrently")
	flags.StringP("format", "f", config.DefaultReportFormat, "output format: text, json or yaml")
	flags.Bool("no-color", config.DefaultReportNoColor, "disable colored output")
	flags.String("log-level", config.DefaultLoggingLevel, "log level: debug, info, warn or error")
	flags.String("log-format", config.DefaultLoggingFormat, "log format: text or json")

	rootCmd.AddCommand(
		newVisibilityCommand(&configPath),
		newPhasesCommand(&configPath),
		newIlluminationCommand(&configPath),
		newMoonCommand(&configPath),
	)

	return rootCmd
}

// loadConfig reads the configuration with the shared and the command's own
// flag bindings applied.
func loadConfig(configPath string, flags *pflag.FlagSet, local map[string]string) (*config.Config, error) {
	bindings := make(map[string]string, len(sharedBindings)+len(local))
	for key, name := range sharedBindings {
		bindings[key] = name
	}
	for key, name := range local {
		bindings[key] = name
	}

	return config.LoadWithFlags(configPath, flags, bindings)
}

// newLogger builds the slog logger selected by the logging section.
func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// reportOptions converts the report section into render options. Colour is
// only used when stdout is a terminal.
func reportOptions(cfg config.ReportConfig) (report.Options, error) {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{Format: format, Color: !cfg.NoColor && !color.NoColor}, nil
}

// setup is the common prologue of every subcommand.
func setup(cmd *cobra.Command, configPath string, local map[string]string) (*config.Config, *nightglide.Planner, report.Options, error) {
	cfg, err := loadConfig(configPath, cmd.Flags(), local)
	if err != nil {
		return nil, nil, report.Options{}, err
	}

	opts, err := reportOptions(cfg.Report)
	if err != nil {
		return nil, nil, report.Options{}, err
	}

	logger := newLogger(cfg.Logging, cmd.ErrOrStderr()).With("run", uuid.NewString())
	planner := nightglide.NewPlanner(nightglide.NewAlmanac(), logger)
	planner.Workers = cfg.Workers

	return cfg, planner, opts, nil
}
