package slog

import (
	"log/slog"

	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Config represents configuration for slog [Module]
type Config struct {
	// Instance name
	Name string `koanf:"-"`

	// Level is the default minimum level.
	Level string `koanf:"level"`

	// Levels overrides the minimum level per package path prefix,
	// e.g. "github.com/Vilsol/propdefs/pkg/component": "warn".
	Levels map[string]string `koanf:"levels"`

	// GlobalDefault installs the logger as slog.Default.
	GlobalDefault bool `koanf:"global_default"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:          config.DefaultInstanceName,
		Level:         "info",
		GlobalDefault: true,
	}
}

// NewConfig returns configuration with provided options based on defaults.
func NewConfig(options ...Option) Config {
	cfg := NewDefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// LoadFromKoanf loads configuration from koanf instance at the given path.
func (c *Config) LoadFromKoanf(k *koanf.Koanf, path string) error {
	return oops.Wrapf(k.Unmarshal(path, c), "failed to load config from koanf at path %s", path)
}

// ParsedLevels returns the default level and the per-package overrides.
func (c *Config) ParsedLevels() (slog.Level, map[string]slog.Level) {
	levels := make(map[string]slog.Level, len(c.Levels))
	for pkg, lvl := range c.Levels {
		levels[pkg] = config.ParseLevel(lvl)
	}
	return config.ParseLevel(c.Level), levels
}

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithLevel sets the default log level.
func WithLevel(level string) Option {
	return func(m *Config) { m.Level = level }
}

// WithLevels sets per-package log level overrides.
func WithLevels(levels map[string]string) Option {
	return func(m *Config) { m.Levels = levels }
}

// WithGlobalDefault toggles installing the logger as slog.Default.
func WithGlobalDefault(global bool) Option {
	return func(m *Config) { m.GlobalDefault = global }
}
