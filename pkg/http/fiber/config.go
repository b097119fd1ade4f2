package fiberserver

import (
	"net/netip"

	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/gofiber/fiber/v3"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/oops"
)

const (
	defaultHost        = "127.0.0.1"
	defaultPort        = 8080
	defaultRoutePrefix = "/defaults"
)

// Router registers routes on the app.
type Router func(app *fiber.App)

// Config represents configuration for HTTP Fiber server [Module]
type Config struct {
	// Instance name (determines config path, cannot come from config file)
	Name string `koanf:"-"`

	Host       string `koanf:"host"`
	Port       uint16 `koanf:"port"`
	HealthPath string `koanf:"health_path"`

	// RoutePrefix mounts the defaults registry inspector. Empty disables it.
	RoutePrefix string `koanf:"route_prefix"`

	// Raw passthrough for fiber.Config fields (app_name, read_timeout, etc.)
	Raw map[string]any `koanf:",remain"`

	// Defaults is the fiber.Config Raw fields are applied on (code-only).
	Defaults fiber.Config `code_only:"WithDefaults" koanf:"-"`

	// Routers are invoked after the inspector routes are mounted (code-only).
	Routers []Router `code_only:"WithRouter" koanf:"-"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:        config.DefaultInstanceName,
		Host:        defaultHost,
		Port:        defaultPort,
		RoutePrefix: defaultRoutePrefix,
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

// AddrPort returns the parsed address and port for the server.
func (c *Config) AddrPort() (netip.AddrPort, error) {
	addr, err := netip.ParseAddr(c.Host)
	if err != nil {
		return netip.AddrPort{}, oops.Wrapf(err, "invalid host %q", c.Host)
	}
	return netip.AddrPortFrom(addr, c.Port), nil
}

// ToFiberConfig returns Defaults with Raw fields applied.
func (c *Config) ToFiberConfig() (fiber.Config, error) {
	cfg := c.Defaults
	if len(c.Raw) == 0 {
		return cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json", // fiber.Config uses json tags
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, oops.Wrapf(err, "failed to create fiber config decoder")
	}

	if err := decoder.Decode(c.Raw); err != nil {
		return cfg, oops.Wrapf(err, "failed to decode fiber config")
	}

	return cfg, nil
}

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithAddr sets the listen host and port.
func WithAddr(host string, port uint16) Option {
	return func(m *Config) {
		m.Host = host
		m.Port = port
	}
}

// WithRoutePrefix moves the registry inspector, an empty prefix disables it.
func WithRoutePrefix(prefix string) Option {
	return func(m *Config) { m.RoutePrefix = prefix }
}

// WithHealthPath serves the health check at path.
func WithHealthPath(path string) Option {
	return func(m *Config) { m.HealthPath = path }
}

// WithDefaults sets the base fiber.Config (code-only).
func WithDefaults(cfg fiber.Config) Option {
	return func(m *Config) { m.Defaults = cfg }
}

// WithRouter adds router to the list of routers to be invoked (code-only).
func WithRouter(router Router) Option {
	return func(m *Config) { m.Routers = append(m.Routers, router) }
}
