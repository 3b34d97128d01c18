// Package config resolves runtime settings from defaults, an optional YAML
// file, WHISTLER_* environment variables, and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"whistler/src/logging"
	"whistler/src/store"
)

const (
	// AppName names the config directory and environment prefix.
	AppName = "whistler"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides, e.g. WHISTLER_LOG_LEVEL.
	EnvPrefix = "WHISTLER"
)

// Output formats accepted by the list command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds the resolved settings.
type Config struct {
	// Store is a store URI: "registry:" or "file:/abs/path.yaml".
	Store    string `mapstructure:"store"`
	LogLevel string `mapstructure:"log_level"`
	Output   string `mapstructure:"output"`
	Color    bool   `mapstructure:"color"`
	Quiet    bool   `mapstructure:"quiet"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Store:    "registry:",
		LogLevel: "warn",
		Output:   OutputTable,
		Color:    true,
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"store":     "store",
	"log-level": "log_level",
	"output":    "output",
	"no-color":  "",
	"quiet":     "quiet",
}

// Dir returns the per-user config directory, e.g. %APPDATA%\whistler or
// $XDG_CONFIG_HOME/whistler.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration. path, when set, must name a readable
// file; otherwise config.yaml in Dir is used if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("store", d.Store)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("output", d.Output)
	v.SetDefault("color", d.Color)
	v.SetDefault("quiet", d.Quiet)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("load config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || key == "" {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if flags != nil {
		if f := flags.Lookup("no-color"); f != nil && f.Changed {
			cfg.Color = false
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed as defaults.
func (c Config) Validate() error {
	if _, err := store.ParseTarget(c.Store); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output %q; expected table|json|yaml", c.Output)
	}
	return nil
}
