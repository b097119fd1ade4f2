package health

import (
	"context"
	"time"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/hellofresh/health-go/v5"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

var (
	_ app.Module       = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module provides *health.Health via DI.
type Module struct {
	config Config
	health *health.Health
}

// NewModule creates a new health check module
func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryHealth, "health", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	path := m.ConfigPath()
	if k.Exists(path) {
		return m.config.LoadFromKoanf(k, path)
	}
	return nil
}

// Init builds the health instance from the configured checks.
func (m *Module) Init(ctx context.Context) error {
	injector := app.GetInjector(ctx)

	if k, err := do.Invoke[*koanf.Koanf](injector); err == nil {
		if err := m.LoadConfig(k); err != nil {
			return oops.Wrapf(err, "failed to load config")
		}
	}

	checks := m.config.Checks
	if m.config.RegistryCheck {
		if status, err := do.Invoke[defaults.ReloadStatus](injector); err == nil {
			checks = append(checks, RegistryCheck(status, m.config.CheckTimeout))
		}
	}

	opts := []health.Option{
		health.WithComponent(m.config.GetComponent()),
	}

	for _, check := range checks {
		opts = append(opts, health.WithChecks(check))
	}

	h, err := health.New(opts...)
	if err != nil {
		return oops.Wrapf(err, "failed to create health instance")
	}

	m.health = h

	app.ProvideValue(ctx, h)

	return nil
}

// Shutdown is a no-op for the health module
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

// RegistryCheck reports the last rejected defaults reload as unhealthy.
func RegistryCheck(status defaults.ReloadStatus, timeout time.Duration) health.Config {
	return health.Config{
		Name:    "defaults",
		Timeout: timeout,
		Check: func(_ context.Context) error {
			return oops.Wrapf(status.Err(), "defaults registry reload rejected")
		},
	}
}
