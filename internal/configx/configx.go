// Package configx loads CLI settings from defaults, a config file, the
// environment and command-line flags.
//
// Overview:
//   - Responsibility: Merge settings sources with viper and validate the result
//   - Key Types: Settings, LoadOptions
//   - Concurrency Model: Load builds a private viper instance per call, no shared state
//   - Error Semantics: Unreadable config files and invalid values surface as CONFIG errors
//   - Performance Notes: One file read per Load
//
// Precedence, highest first: changed flags, MOBILESTRUCTURE_* environment
// variables, the config file, built-in defaults.
//
// Usage:
//
//	settings, err := configx.Load(configx.LoadOptions{Flags: cmd.Flags()})
//	if err != nil { return err }
package configx

import (
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/logx"
)

const (
	// EnvPrefix prefixes every environment override, e.g. MOBILESTRUCTURE_LOG_FILE.
	EnvPrefix = "MOBILESTRUCTURE"
	// ConfigName is the config file looked up when none is given explicitly.
	ConfigName = ".mobilestructure"
	// DefaultLogFile is the append-only log written by every run.
	DefaultLogFile = logx.DefaultFile
)

// Settings holds the resolved CLI settings.
type Settings struct {
	LogFile        string `mapstructure:"log_file" validate:"required"`
	LogLevel       string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Verbose        bool   `mapstructure:"verbose"`
	NonInteractive bool   `mapstructure:"non_interactive"`
	JSON           bool   `mapstructure:"json"`
	Color          bool   `mapstructure:"color"`
	Destination    string `mapstructure:"destination"`
	Kind           string `mapstructure:"kind"`
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// ConfigFile is an explicit config path. Missing explicit files are errors.
	ConfigFile string
	// SearchPaths are scanned for ConfigName.yaml when ConfigFile is empty.
	SearchPaths []string
	// Flags are bound by name; a flag "log-file" maps to key "log_file".
	Flags *pflag.FlagSet
}

var defaults = map[string]any{
	"log_file":        DefaultLogFile,
	"log_level":       "info",
	"verbose":         false,
	"non_interactive": false,
	"json":            false,
	"color":           true,
	"destination":     "",
	"kind":            "",
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		LogFile:  DefaultLogFile,
		LogLevel: "info",
		Color:    true,
	}
}

// Load resolves Settings from all sources.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := readConfig(v, opts); err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		for key := range defaults {
			flag := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(errors.CodeConfig, "bind flag", err, "%s", flag.Name)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Wrap(errors.CodeConfig, "decode settings", err)
	}
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	settings.Kind = strings.ToLower(strings.TrimSpace(settings.Kind))

	if err := ValidateStruct(NewValidator(WithMapstructureNames()), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func readConfig(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(errors.CodeConfig, "read config", err, "%s", opts.ConfigFile)
		}
		return nil
	}

	if len(opts.SearchPaths) == 0 {
		return nil
	}
	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	for _, p := range opts.SearchPaths {
		v.AddConfigPath(filepath.Clean(p))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.CodeConfig, "read config", err)
	}
	return nil
}
