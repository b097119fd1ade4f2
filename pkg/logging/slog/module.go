package slog

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

// Module wraps the slog.Handler from DI with per-package level filtering and
// provides the resulting *slog.Logger. Level changes are picked up on config reload.
type Module struct {
	config Config
	filter *levelFilter
	logger *slog.Logger
}

func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryLogging, "slog", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	path := m.ConfigPath()
	if k.Exists(path) {
		return m.config.LoadFromKoanf(k, path)
	}
	return nil
}

func (m *Module) Init(ctx context.Context) error {
	injector := app.GetInjector(ctx)

	if k, err := do.Invoke[*koanf.Koanf](injector); err == nil {
		if err := m.LoadConfig(k); err != nil {
			return oops.Wrapf(err, "failed to load config")
		}
	}

	handler, err := do.Invoke[slog.Handler](injector)
	if err != nil {
		return oops.Wrapf(err, "failed to retrieve logger handler")
	}

	defaultLevel, levels := m.config.ParsedLevels()
	m.filter = newLevelFilter(handler, defaultLevel, levels)
	m.logger = slog.New(m.filter)

	if m.config.GlobalDefault {
		slog.SetDefault(m.logger)
	}

	if notifier, err := do.Invoke[config.ReloadNotifier](injector); err == nil {
		notifier.OnReload(func(k *koanf.Koanf) {
			if err := m.LoadConfig(k); err != nil {
				slox.Warn(ctx, "failed to reload log levels", slog.Any("error", err))
				return
			}
			m.filter.Update(m.config.ParsedLevels())
		})
	}

	app.Provide(ctx, m.GetLogger)

	return nil
}

func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

func (m *Module) GetLogger(_ do.Injector) (*slog.Logger, error) {
	return m.logger, nil
}
