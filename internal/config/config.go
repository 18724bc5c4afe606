// Package config loads textplate configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/opencode-ai/textplate/internal/logging"
	"github.com/opencode-ai/textplate/internal/styles"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvPrefix prefixes environment overrides, e.g. TEXTPLATE_OUTPUT_THEME.
const EnvPrefix = "TEXTPLATE"

// Config is the application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Output    OutputConfig    `mapstructure:"output"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig controls rendering of templates to the terminal.
type OutputConfig struct {
	Color string `mapstructure:"color"`
	Theme string `mapstructure:"theme"`
}

// TemplatesConfig lists extra template directories searched before the
// standard search paths.
type TemplatesConfig struct {
	Dirs []string `mapstructure:"dirs"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{Color: ColorAuto, Theme: styles.DefaultTheme.Name},
	}
}

// DefaultConfigPath returns ~/.config/textplate/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "textplate", "config.yaml")
}

// Load reads configuration from path, or from DefaultConfigPath when path is
// empty and that file exists. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("output.color", defaults.Output.Color)
	v.SetDefault("output.theme", defaults.Output.Theme)
	v.SetDefault("templates.dirs", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Output.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color: unknown mode %q", c.Output.Color)
	}
	if _, ok := styles.LookupTheme(c.Output.Theme); !ok {
		return fmt.Errorf("output.theme: unknown theme %q", c.Output.Theme)
	}
	return nil
}

// Theme returns the configured theme, falling back to the default.
func (c *Config) Theme() styles.Theme {
	if theme, ok := styles.LookupTheme(c.Output.Theme); ok {
		return theme
	}
	return styles.DefaultTheme
}

// UseColor resolves the color mode against whether output is a terminal.
func (c *Config) UseColor(isTerminal bool) bool {
	switch strings.ToLower(c.Output.Color) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
