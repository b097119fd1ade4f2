package tint

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/lmittmann/tint"
	"github.com/samber/oops"
)

// Config represents configuration for Tint [Module]
type Config struct {
	// Instance name (determines config path, cannot come from config file)
	Name string `koanf:"-"`

	// Writer receives the log output (code-only).
	Writer io.Writer `code_only:"WithWriter" koanf:"-"`

	// Level is the minimum level the handler emits.
	Level string `koanf:"level"`

	// TimeFormat is the layout of the timestamp.
	TimeFormat string `koanf:"time_format"`

	// NoColor disables ANSI colors.
	NoColor bool `koanf:"no_color"`

	// AddSource adds the caller location to each record.
	AddSource bool `koanf:"add_source"`

	// Highlight lists top-level attribute keys rendered in HighlightColor,
	// by default the component and prop of registry and host records.
	Highlight []string `koanf:"highlight"`

	// HighlightColor is the ANSI 256 color of highlighted attributes.
	HighlightColor uint8 `koanf:"highlight_color"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:           config.DefaultInstanceName,
		Writer:         os.Stderr,
		Level:          "info",
		TimeFormat:     time.TimeOnly,
		AddSource:      true,
		Highlight:      []string{"component", "prop"},
		HighlightColor: 13, //nolint:mnd // magenta
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

// NewHandler creates a tint handler with config values applied. A nil level
// uses the configured Level, fixed for the handler's lifetime.
func (c *Config) NewHandler(level slog.Leveler) slog.Handler {
	if level == nil {
		level = config.ParseLevel(c.Level)
	}

	options := &tint.Options{
		AddSource:  c.AddSource,
		Level:      level,
		TimeFormat: c.TimeFormat,
		NoColor:    c.NoColor,
	}

	if !c.NoColor && len(c.Highlight) > 0 {
		options.ReplaceAttr = highlighter(slices.Clone(c.Highlight), c.HighlightColor)
	}

	return tint.NewHandler(c.Writer, options)
}

func highlighter(keys []string, color uint8) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, attr slog.Attr) slog.Attr {
		if len(groups) == 0 && slices.Contains(keys, attr.Key) {
			return tint.Attr(color, attr)
		}
		return attr
	}
}

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithWriter sets the output writer (code-only, cannot be configured via files).
func WithWriter(writer io.Writer) Option {
	return func(m *Config) { m.Writer = writer }
}

// WithLevel sets the minimum level.
func WithLevel(level string) Option {
	return func(m *Config) { m.Level = level }
}

// WithHighlight replaces the highlighted attribute keys. No keys disables highlighting.
func WithHighlight(keys ...string) Option {
	return func(m *Config) { m.Highlight = keys }
}

// WithNoColor disables colored output.
func WithNoColor() Option {
	return func(m *Config) { m.NoColor = true }
}
