package defaults

import (
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/samber/oops"
)

// Config represents configuration for the defaults registry [Module]
type Config struct {
	// Instance name
	Name string `koanf:"-"`

	// Components maps component names (and the reserved "defaults" bucket) to option values.
	Components map[string]map[string]any `koanf:"components"`

	// Store to seed instead of a new one (code-only).
	Store *Store `code_only:"WithStore" koanf:"-"`

	// Seeds are writes applied before file configuration (code-only).
	Seeds []Seed `code_only:"WithComponent" koanf:"-"`
}

// Seed is a single write into the registry.
type Seed struct {
	Component string
	Values    Bucket
}

// Validate rejects empty component names.
func (c *Config) Validate() error {
	for name := range c.Components {
		if name == "" {
			return oops.Errorf("component name must not be empty")
		}
	}
	return nil
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name: config.DefaultInstanceName,
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

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithStore seeds an existing store instead of creating one.
func WithStore(store *Store) Option {
	return func(m *Config) { m.Store = store }
}

// WithDefaults writes values into the defaults bucket at init.
func WithDefaults(values Bucket) Option {
	return WithComponent(GlobalBucket, values)
}

// WithComponent writes values into the bucket of component at init.
func WithComponent(component string, values Bucket) Option {
	return func(m *Config) {
		m.Seeds = append(m.Seeds, Seed{Component: component, Values: values})
	}
}
