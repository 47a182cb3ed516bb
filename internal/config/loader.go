package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thurmanmarka/nightglide"
)

// configName is the config file name without extension.
const configName = ".nightglide"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for nightglide settings.
const envPrefix = "NIGHTGLIDE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	return decode(viperCfg)
}

// LoadWithFlags is LoadConfig with command-line overrides. bindings maps a
// config key to the name of a flag in flags; a flag that was set on the
// command line wins over the file and the environment.
func LoadWithFlags(configPath string, flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	viperCfg, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if bindErr := viperCfg.BindPFlag(key, flag); bindErr != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, bindErr)
		}
	}

	return decode(viperCfg)
}

// newViper prepares a viper instance with defaults, env binding and, if
// found, the config file.
func newViper(configPath string) (*viper.Viper, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	return viperCfg, nil
}

func decode(viperCfg *viper.Viper) (*Config, error) {
	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		dateToStringHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// dateToStringHook turns YAML timestamps such as an unquoted 2025-11-11 back
// into YYYY-MM-DD strings.
func dateToStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	if t, ok := data.(time.Time); ok {
		return t.Format(nightglide.DateLayout), nil
	}
	return data, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("observer.name", DefaultObserverName)
	viperCfg.SetDefault("observer.latitude", DefaultObserverLatitude)
	viperCfg.SetDefault("observer.longitude", DefaultObserverLongitude)
	viperCfg.SetDefault("observer.elevation", DefaultObserverElevation)
	viperCfg.SetDefault("observer.timezone", DefaultObserverTimezone)

	viperCfg.SetDefault("target.name", DefaultTargetName)
	viperCfg.SetDefault("target.min_altitude", DefaultTargetMinAltitude)

	viperCfg.SetDefault("range.start", DefaultRangeStart)
	viperCfg.SetDefault("range.end", DefaultRangeEnd)

	viperCfg.SetDefault("window.start_hour", DefaultWindowStartHour)
	viperCfg.SetDefault("window.end_hour", DefaultWindowEndHour)
	viperCfg.SetDefault("window.step_minutes", DefaultWindowStepMinutes)
	viperCfg.SetDefault("window.strict", DefaultWindowStrict)

	viperCfg.SetDefault("illumination.min_percent", DefaultIlluminationMinPercent)
	viperCfg.SetDefault("illumination.max_percent", DefaultIlluminationMaxPercent)

	viperCfg.SetDefault("workers", DefaultWorkers)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)

	viperCfg.SetDefault("report.format", DefaultReportFormat)
	viperCfg.SetDefault("report.chart", DefaultReportChart)
	viperCfg.SetDefault("report.no_color", DefaultReportNoColor)
}
