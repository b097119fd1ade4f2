package defaults

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// ReloadStatus reports whether the last configuration reload of the registry succeeded.
type ReloadStatus interface {
	Err() error
}

var (
	_ ReloadStatus     = (*Module)(nil)
	_ app.Module       = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module owns the process-wide *Store and seeds it from code options and
// configuration files. File changes are merged in on reload.
type Module struct {
	config Config
	store  *Store
	bind   *config.BindModule[Config]
}

// NewModule creates a new defaults registry module.
func NewModule(options ...Option) *Module {
	cfg := NewConfig(options...)

	store := cfg.Store
	if store == nil {
		store = NewStore()
	}

	return &Module{config: cfg, store: store}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// Store returns the registry managed by this module.
func (m *Module) Store() *Store {
	return m.store
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryUI, "defaults", m.config.Name)
}

// LoadConfig decodes the components section from k and merges it into the store.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	path := m.ConfigPath()
	if !k.Exists(path) {
		return nil
	}

	var cfg Config
	if err := k.Unmarshal(path, &cfg); err != nil {
		return oops.Wrapf(err, "failed to load config from koanf at path %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return oops.Wrapf(err, "invalid config at path %s", path)
	}

	Apply(m.store, cfg.Components)

	return nil
}

// Init applies code seeds, then file configuration, and registers the store in DI.
func (m *Module) Init(ctx context.Context) error {
	for _, seed := range m.config.Seeds {
		m.store.Set(seed.Component, seed.Values)
	}

	if _, err := do.Invoke[*koanf.Koanf](app.GetInjector(ctx)); err == nil {
		m.bind = config.Bind[Config](m.ConfigPath())
		if err := m.bind.Init(ctx); err != nil {
			return oops.Wrapf(err, "failed to load config")
		}

		m.apply(ctx, m.bind.Binding().Get())
		m.bind.Binding().OnChange(func(cfg *Config) {
			m.apply(ctx, cfg)
		})
	}

	app.ProvideValue(ctx, m.store)
	app.ProvideValue[ReloadStatus](ctx, m)

	return nil
}

// Shutdown is a no-op; the store lives for the whole process.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

// Err returns the error of the last configuration reload, if it failed.
func (m *Module) Err() error {
	if m.bind == nil {
		return nil
	}
	return m.bind.LastError()
}

func (m *Module) apply(ctx context.Context, cfg *Config) {
	if cfg == nil || len(cfg.Components) == 0 {
		return
	}

	Apply(m.store, cfg.Components)

	slox.Debug(ctx, "applied component defaults",
		slog.String("instance", m.config.Name),
		slog.Any("components", slices.Sorted(maps.Keys(cfg.Components))),
	)
}

// Apply writes every bucket of components into store, the defaults bucket first
// and the rest in name order.
func Apply(store *Store, components map[string]map[string]any) {
	if values, ok := components[GlobalBucket]; ok {
		store.Set(GlobalBucket, values)
	}

	for _, name := range slices.Sorted(maps.Keys(components)) {
		if name == GlobalBucket {
			continue
		}
		store.Set(name, components[name])
	}
}
