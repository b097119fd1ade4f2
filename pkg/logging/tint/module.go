package tint

import (
	"context"
	"log/slog"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

var (
	_ app.Module       = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module provides a tint slog.Handler via DI. The minimum level follows
// config reloads; writer and highlighting are fixed at Init.
type Module struct {
	config  Config
	level   slog.LevelVar
	handler slog.Handler
}

// NewModule creates a new tint logging module with the given options.
func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryLogging, "tint", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	path := m.ConfigPath()
	if k.Exists(path) {
		return m.config.LoadFromKoanf(k, path)
	}
	return nil
}

// Handler returns the handler built by Init.
func (m *Module) Handler() slog.Handler {
	return m.handler
}

// Init loads configuration, creates the handler and registers it in DI.
func (m *Module) Init(ctx context.Context) error {
	injector := app.GetInjector(ctx)

	if k, err := do.Invoke[*koanf.Koanf](injector); err == nil {
		if err := m.LoadConfig(k); err != nil {
			return oops.Wrapf(err, "failed to load config")
		}
	}

	m.level.Set(config.ParseLevel(m.config.Level))
	m.handler = m.config.NewHandler(&m.level)

	if notifier, err := do.Invoke[config.ReloadNotifier](injector); err == nil {
		notifier.OnReload(func(k *koanf.Koanf) {
			if err := m.LoadConfig(k); err != nil {
				slox.Warn(ctx, "keeping previous tint level", slog.Any("error", err))
				return
			}
			m.level.Set(config.ParseLevel(m.config.Level))
		})
	}

	app.Provide(ctx, func(_ do.Injector) (slog.Handler, error) {
		return m.handler, nil
	})

	return nil
}

// Shutdown is a no-op for this module.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}
