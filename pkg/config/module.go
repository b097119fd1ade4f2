package config

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

var (
	_ app.Module     = (*Module)(nil)
	_ ReloadNotifier = (*Module)(nil)
)

// Module loads configuration at init and provides *koanf.Koanf and ReloadNotifier via DI.
type Module struct {
	config      Config
	mu          sync.RWMutex
	koanf       *koanf.Koanf
	configFiles []configFile
	flagSet     *pflag.FlagSet
	onReload    []func(k *koanf.Koanf)
}

// NewModule creates a new config module.
func NewModule(options ...Option) *Module {
	return &Module{
		config: NewConfig(options...),
		koanf:  koanf.New("."),
	}
}

// Init loads configuration from files, env vars and CLI flags.
func (m *Module) Init(ctx context.Context) error {
	m.configFiles = m.discoverConfigFiles()

	k, err := m.build()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.koanf = k
	m.mu.Unlock()

	slox.Debug(ctx, "configuration loaded", slog.Int("files", len(m.configFiles)), slog.Int("keys", len(k.Keys())))

	if m.config.Watch {
		m.startWatcher(ctx)
	}

	app.Provide(ctx, m.provideKoanf)
	app.Provide(ctx, m.provideReloadNotifier)

	return nil
}

// build assembles a fresh koanf instance from all sources.
func (m *Module) build() (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := loadConfigFiles(k, m.configFiles); err != nil {
		return nil, oops.Wrapf(err, "failed to load config files")
	}

	mapper := newEnvMapper(m.config.EnvPrefix, k)
	if err := k.Load(env.ProviderWithValue(m.config.EnvPrefix, ".", mapper.Map), nil); err != nil {
		return nil, oops.Wrapf(err, "failed to load environment variables")
	}

	if err := m.loadCLIFlags(k); err != nil {
		return nil, oops.Wrapf(err, "failed to load CLI flags")
	}

	return k, nil
}

func (m *Module) loadCLIFlags(k *koanf.Koanf) error {
	if m.config.Args == nil {
		return nil
	}

	if m.flagSet == nil {
		m.flagSet = pflag.NewFlagSet("config", pflag.ContinueOnError)

		// Flags can only override keys that already exist in files or env
		for _, key := range k.Keys() {
			switch v := k.Get(key).(type) {
			case string:
				m.flagSet.String(key, v, "")
			case int:
				m.flagSet.Int(key, v, "")
			case int64:
				m.flagSet.Int64(key, v, "")
			case float64:
				m.flagSet.Float64(key, v, "")
			case bool:
				m.flagSet.Bool(key, v, "")
			default:
				m.flagSet.String(key, "", "")
			}
		}

		if err := m.flagSet.Parse(m.config.Args); err != nil {
			return oops.Wrapf(err, "failed to parse CLI flags")
		}
	}

	return oops.Wrapf(k.Load(posflag.Provider(m.flagSet, ".", k), nil), "failed to load CLI flags into koanf")
}

// Shutdown is a no-op; the watcher stops with the init context.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

func (m *Module) provideKoanf(_ do.Injector) (*koanf.Koanf, error) {
	return m.Koanf(), nil
}

func (m *Module) provideReloadNotifier(_ do.Injector) (ReloadNotifier, error) { //nolint:ireturn
	return m, nil
}

// Koanf returns the current koanf instance.
func (m *Module) Koanf() *koanf.Koanf {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanf
}

// OnReload registers a callback invoked with the new koanf instance after each successful reload.
func (m *Module) OnReload(fn func(k *koanf.Koanf)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReload = append(m.onReload, fn)
}

// Reload rebuilds configuration from all sources and notifies reload callbacks.
// On failure the previous configuration stays active.
func (m *Module) Reload() error {
	k, err := m.build()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.koanf = k
	callbacks := make([]func(*koanf.Koanf), len(m.onReload))
	copy(callbacks, m.onReload)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(k)
	}

	return nil
}
