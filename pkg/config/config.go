// Package config loads application configuration with koanf.
// Sources are layered in order: config files (YAML, JSON or TOML), environment
// variables and CLI flags, the later overriding the earlier. Files are watched
// and reloaded on change.
package config

import "github.com/knadh/koanf/v2"

const (
	defaultEnvPrefix  = "PROPDEFS_"
	defaultConfigName = "propdefs"
)

// ReloadNotifier can register callbacks for config reload events.
type ReloadNotifier interface {
	OnReload(fn func(k *koanf.Koanf))
}

// Config holds the configuration for the config module.
type Config struct {
	// EnvPrefix is the prefix of environment variables that override configuration values.
	EnvPrefix string

	// ConfigDirs are searched for configuration files in the given order.
	ConfigDirs []string

	// ConfigName is the configuration file name without extension.
	ConfigName string

	// Args are command-line arguments parsed as configuration overrides.
	Args []string

	// Watch enables reloading when a loaded configuration file changes.
	Watch bool
}

// Option manipulates Config.
type Option func(cfg *Config)

// NewDefaultConfig returns default configuration.
func NewDefaultConfig() Config {
	return Config{
		EnvPrefix:  defaultEnvPrefix,
		ConfigDirs: []string{".", "./config"},
		ConfigName: defaultConfigName,
		Watch:      true,
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

// WithEnvPrefix sets the environment variable prefix (default: "PROPDEFS_").
func WithEnvPrefix(prefix string) Option {
	return func(cfg *Config) {
		cfg.EnvPrefix = prefix
	}
}

// WithConfigDirs sets directories to search for config files.
func WithConfigDirs(dirs ...string) Option {
	return func(cfg *Config) {
		cfg.ConfigDirs = dirs
	}
}

// WithConfigName sets the base config file name without extension (default: "propdefs").
func WithConfigName(name string) Option {
	return func(cfg *Config) {
		cfg.ConfigName = name
	}
}

// WithArgs sets CLI arguments to parse for config overrides.
func WithArgs(args []string) Option {
	return func(cfg *Config) {
		cfg.Args = args
	}
}

// WithWatch toggles the file watcher.
func WithWatch(watch bool) Option {
	return func(cfg *Config) {
		cfg.Watch = watch
	}
}
