package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/nightglide"
	"github.com/thurmanmarka/nightglide/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nightglide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.InDelta(t, 3.0, cfg.Observer.Latitude, 1e-12)
	assert.InDelta(t, 101.6, cfg.Observer.Longitude, 1e-12)
	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.Observer.Timezone)
	assert.Equal(t, "jupiter", cfg.Target.Name)
	assert.InDelta(t, 5.0, cfg.Target.MinAltitude, 1e-12)
	assert.Equal(t, 21, cfg.Window.StartHour)
	assert.Equal(t, 2, cfg.Window.EndHour)
	assert.Equal(t, 10, cfg.Window.StepMinutes)
	assert.Equal(t, "text", cfg.Report.Format)

	minFrac, maxFrac := cfg.IlluminationBand()
	assert.InDelta(t, 0.2, minFrac, 1e-12)
	assert.InDelta(t, 0.5, maxFrac, 1e-12)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
observer:
  name: Flagstaff
  latitude: 35.2
  longitude: -111.65
  elevation: 2100
  timezone: America/Phoenix
target:
  name: saturn
  min_altitude: 15
range:
  start: "2025-09-01"
  end: "2025-09-30"
window:
  start_hour: 20
  end_hour: 23
  step_minutes: 5
report:
  format: json
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Flagstaff", cfg.Observer.Name)
	assert.Equal(t, "saturn", cfg.Target.Name)
	assert.Equal(t, 5, cfg.Window.StepMinutes)
	assert.Equal(t, "json", cfg.Report.Format)

	req, err := cfg.VisibilityRequest()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, req.Window.Step)
	assert.Equal(t, "America/Phoenix", req.Window.Location.String())
	assert.Len(t, req.Range.Days(), 30)
	assert.InDelta(t, 15.0, req.MinAltitude, 1e-12)
}

func TestLoadConfig_UnquotedDates(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
range:
  start: 2025-11-11
  end: 2025-12-10
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "2025-11-11", cfg.Range.Start)
	assert.Equal(t, "2025-12-10", cfg.Range.End)

	rng, err := cfg.DateRange()
	require.NoError(t, err)
	assert.Len(t, rng.Days(), 30)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("NIGHTGLIDE_TARGET_NAME", "vega")
	t.Setenv("NIGHTGLIDE_WINDOW_STEP_MINUTES", "15")
	t.Setenv("NIGHTGLIDE_OBSERVER_TIMEZONE", "Europe/Berlin")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "vega", cfg.Target.Name)
	assert.Equal(t, 15, cfg.Window.StepMinutes)
	assert.Equal(t, "Europe/Berlin", cfg.Observer.Timezone)
}

func TestLoadWithFlags(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "", "")
	flags.Int("step", 0, "")
	flags.Float64("min-altitude", 0, "")
	require.NoError(t, flags.Parse([]string{"--target", "mars", "--step", "30"}))

	cfg, err := config.LoadWithFlags("", flags, map[string]string{
		"target.name":         "target",
		"window.step_minutes": "step",
		"target.min_altitude": "min-altitude",
		"range.start":         "not-a-flag",
	})
	require.NoError(t, err)

	assert.Equal(t, "mars", cfg.Target.Name)
	assert.Equal(t, 30, cfg.Window.StepMinutes)
	// Unset flag falls back to the default, not the flag's zero value.
	assert.InDelta(t, 5.0, cfg.Target.MinAltitude, 1e-12)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "observer: [unterminated")

	_, err := config.LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_ValidationError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "window:\n  step_minutes: 0\n")

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidStep)
	require.ErrorIs(t, err, nightglide.ErrConfiguration)
}

func validConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	return *cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "unknown zone", mutate: func(c *config.Config) { c.Observer.Timezone = "Mars/Olympus_Mons" }, wantErr: config.ErrInvalidTimezone},
		{name: "empty zone", mutate: func(c *config.Config) { c.Observer.Timezone = "" }, wantErr: config.ErrInvalidTimezone},
		{name: "latitude", mutate: func(c *config.Config) { c.Observer.Latitude = 100 }, wantErr: nightglide.ErrConfiguration},
		{name: "negative elevation", mutate: func(c *config.Config) { c.Observer.Elevation = -5 }, wantErr: nightglide.ErrConfiguration},
		{name: "no target", mutate: func(c *config.Config) { c.Target.Name = "  " }, wantErr: config.ErrMissingTarget},
		{name: "negative step", mutate: func(c *config.Config) { c.Window.StepMinutes = -1 }, wantErr: config.ErrInvalidStep},
		{name: "negative workers", mutate: func(c *config.Config) { c.Workers = -2 }, wantErr: config.ErrInvalidWorkers},
		{name: "band reversed", mutate: func(c *config.Config) { c.Illumination.MinPercent = 60 }, wantErr: config.ErrInvalidIllumination},
		{name: "band above 100", mutate: func(c *config.Config) { c.Illumination.MaxPercent = 120 }, wantErr: config.ErrInvalidIllumination},
		{name: "log level", mutate: func(c *config.Config) { c.Logging.Level = "verbose" }, wantErr: config.ErrInvalidLogLevel},
		{name: "log format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: config.ErrInvalidLogFormat},
		{name: "report format", mutate: func(c *config.Config) { c.Report.Format = "csv" }, wantErr: config.ErrInvalidReportFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, nightglide.ErrConfiguration)
		})
	}
}

func TestVisibilityRequest_BadRange(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Range.Start, cfg.Range.End = cfg.Range.End, cfg.Range.Start

	_, err := cfg.VisibilityRequest()
	require.ErrorIs(t, err, nightglide.ErrConfiguration)
}

func TestWindowSpec_BadHour(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Window.EndHour = 24

	_, err := cfg.WindowSpec()
	require.ErrorIs(t, err, nightglide.ErrConfiguration)
}
