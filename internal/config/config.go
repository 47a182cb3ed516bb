// Package config loads nightglide settings from a YAML file, NIGHTGLIDE_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thurmanmarka/nightglide"
)

// Config is the top-level configuration struct for nightglide.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Observer     ObserverConfig     `mapstructure:"observer"`
	Target       TargetConfig       `mapstructure:"target"`
	Range        RangeConfig        `mapstructure:"range"`
	Window       WindowConfig       `mapstructure:"window"`
	Illumination IlluminationConfig `mapstructure:"illumination"`
	Workers      int                `mapstructure:"workers"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Report       ReportConfig       `mapstructure:"report"`
}

// ObserverConfig is the observing site.
type ObserverConfig struct {
	Name      string  `mapstructure:"name"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
	Elevation float64 `mapstructure:"elevation"`
	Timezone  string  `mapstructure:"timezone"`
}

// TargetConfig names the object to plan for.
type TargetConfig struct {
	Name        string  `mapstructure:"name"`
	MinAltitude float64 `mapstructure:"min_altitude"`
}

// RangeConfig holds inclusive YYYY-MM-DD bounds.
type RangeConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// WindowConfig is the nightly observation window.
type WindowConfig struct {
	StartHour   int  `mapstructure:"start_hour"`
	EndHour     int  `mapstructure:"end_hour"`
	StepMinutes int  `mapstructure:"step_minutes"`
	Strict      bool `mapstructure:"strict"`
}

// IlluminationConfig is the band, in percent, of the illumination calendar.
type IlluminationConfig struct {
	MinPercent float64 `mapstructure:"min_percent"`
	MaxPercent float64 `mapstructure:"max_percent"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReportConfig controls output.
type ReportConfig struct {
	Format  string `mapstructure:"format"`
	Chart   string `mapstructure:"chart"`
	NoColor bool   `mapstructure:"no_color"`
}

// Sentinel errors for configuration validation. Each also matches
// nightglide.ErrConfiguration.
var (
	// ErrInvalidTimezone indicates observer.timezone is empty or unknown.
	ErrInvalidTimezone = errors.New("observer.timezone must be an IANA zone name")
	// ErrInvalidStep indicates the sampling step is not positive.
	ErrInvalidStep = errors.New("window.step_minutes must be positive")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("workers must be non-negative")
	// ErrInvalidIllumination indicates the illumination band is out of range.
	ErrInvalidIllumination = errors.New("illumination band must satisfy 0 <= min_percent <= max_percent <= 100")
	// ErrInvalidLogLevel indicates an unknown logging.level.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
	// ErrInvalidLogFormat indicates an unknown logging.format.
	ErrInvalidLogFormat = errors.New("logging.format must be text or json")
	// ErrInvalidReportFormat indicates an unknown report.format.
	ErrInvalidReportFormat = errors.New("report.format must be text, json or yaml")
	// ErrMissingTarget indicates target.name is empty.
	ErrMissingTarget = errors.New("target.name must be set")
)

// invalid wraps a sentinel so it also matches nightglide.ErrConfiguration.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", nightglide.ErrConfiguration, err)
}

// Validate checks Config invariants and returns the first error found.
// Range and window values are checked in depth when they are converted.
func (c *Config) Validate() error {
	if err := c.Coordinates().Validate(); err != nil {
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Target.Name) == "" {
		return invalid(ErrMissingTarget)
	}

	if c.Window.StepMinutes <= 0 {
		return invalid(ErrInvalidStep)
	}

	if c.Workers < 0 {
		return invalid(ErrInvalidWorkers)
	}

	il := c.Illumination
	if il.MinPercent < 0 || il.MaxPercent > 100 || il.MinPercent > il.MaxPercent {
		return invalid(ErrInvalidIllumination)
	}

	return c.validateOutput()
}

func (c *Config) validateOutput() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return invalid(ErrInvalidLogLevel)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return invalid(ErrInvalidLogFormat)
	}

	switch strings.ToLower(c.Report.Format) {
	case "text", "json", "yaml":
	default:
		return invalid(ErrInvalidReportFormat)
	}

	return nil
}

// Coordinates returns the observer location.
func (c *Config) Coordinates() nightglide.Coordinates {
	return nightglide.Coordinates{
		Lat:       c.Observer.Latitude,
		Lon:       c.Observer.Longitude,
		Elevation: c.Observer.Elevation,
	}
}

// Location loads the observer's time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Observer.Timezone == "" {
		return nil, invalid(ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(c.Observer.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", nightglide.ErrConfiguration, ErrInvalidTimezone, err)
	}
	return loc, nil
}

// DateRange parses the configured range in the observer's zone.
func (c *Config) DateRange() (nightglide.DateRange, error) {
	loc, err := c.Location()
	if err != nil {
		return nightglide.DateRange{}, err
	}
	return nightglide.ParseDateRange(c.Range.Start, c.Range.End, loc)
}

// WindowSpec returns the nightly window in the observer's zone.
func (c *Config) WindowSpec() (nightglide.WindowSpec, error) {
	loc, err := c.Location()
	if err != nil {
		return nightglide.WindowSpec{}, err
	}

	spec := nightglide.WindowSpec{
		StartHour: c.Window.StartHour,
		EndHour:   c.Window.EndHour,
		Step:      time.Duration(c.Window.StepMinutes) * time.Minute,
		Location:  loc,
		Strict:    c.Window.Strict,
	}
	if err := spec.Validate(); err != nil {
		return nightglide.WindowSpec{}, err
	}
	return spec, nil
}

// VisibilityRequest assembles a planner request from the configuration.
func (c *Config) VisibilityRequest() (nightglide.VisibilityRequest, error) {
	rng, err := c.DateRange()
	if err != nil {
		return nightglide.VisibilityRequest{}, err
	}

	spec, err := c.WindowSpec()
	if err != nil {
		return nightglide.VisibilityRequest{}, err
	}

	req := nightglide.VisibilityRequest{
		Observer:    c.Coordinates(),
		Target:      c.Target.Name,
		MinAltitude: c.Target.MinAltitude,
		Range:       rng,
		Window:      spec,
	}
	return req, req.Validate()
}

// IlluminationBand returns the illumination band as fractions.
func (c *Config) IlluminationBand() (minFrac, maxFrac float64) {
	return c.Illumination.MinPercent / 100, c.Illumination.MaxPercent / 100
}
