package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Validatable is implemented by config structs that need validation after unmarshalling.
type Validatable interface {
	Validate() error
}

// Binding is a thread-safe, cached config accessor that follows reloads.
type Binding[T any] struct {
	cached   atomic.Pointer[T]
	mu       sync.Mutex
	onChange []func(*T)
}

// Get returns the cached config value.
func (b *Binding[T]) Get() *T {
	return b.cached.Load()
}

// OnChange registers a callback invoked with the new config value after each reload.
func (b *Binding[T]) OnChange(fn func(*T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

func (b *Binding[T]) update(cfg *T) {
	b.cached.Store(cfg)

	b.mu.Lock()
	callbacks := make([]func(*T), len(b.onChange))
	copy(callbacks, b.onChange)
	b.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

// BindModule decodes a config subtree into T and registers *Binding[T] in DI.
type BindModule[T any] struct {
	path    string
	binding *Binding[T]
	lastErr atomic.Pointer[error]
}

var _ app.Configurable = (*BindModule[struct{}])(nil)

// Bind creates a module binding T to a koanf path. Segments are joined with "."
// so Bind[T]("modules", "ui") reads "modules.ui".
func Bind[T any](pathSegments ...string) *BindModule[T] {
	return &BindModule[T]{
		path:    strings.Join(pathSegments, "."),
		binding: &Binding[T]{},
	}
}

func unmarshalAndValidate[T any](k *koanf.Koanf, path string) (*T, error) {
	cfg := new(T)
	if err := k.Unmarshal(path, cfg); err != nil {
		return nil, oops.Wrapf(err, "failed to unmarshal config at path %q", path)
	}

	if v, ok := any(cfg).(Validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, oops.Wrapf(err, "config validation failed at path %q", path)
		}
	}

	return cfg, nil
}

// Binding returns the binding managed by this module. It holds no value before Init.
func (m *BindModule[T]) Binding() *Binding[T] {
	return m.binding
}

func (m *BindModule[T]) Init(ctx context.Context) error {
	injector := app.GetInjector(ctx)

	k, err := do.Invoke[*koanf.Koanf](injector)
	if err != nil {
		return oops.Wrapf(err, "failed to retrieve koanf instance")
	}

	if err := m.LoadConfig(k); err != nil {
		return err
	}

	app.ProvideValue(ctx, m.binding)

	if notifier, err := do.Invoke[ReloadNotifier](injector); err == nil {
		notifier.OnReload(func(k *koanf.Koanf) {
			if err := m.LoadConfig(k); err != nil {
				slox.Warn(ctx, "keeping previous config after failed reload", slog.String("path", m.path), slog.Any("error", err))
			}
		})
	}

	return nil
}

func (m *BindModule[T]) Shutdown(_ context.Context) error {
	return nil
}

func (m *BindModule[T]) ConfigPath() string {
	return m.path
}

// LoadConfig decodes and validates the bound path, keeping the previous value on failure.
func (m *BindModule[T]) LoadConfig(k *koanf.Koanf) error {
	cfg, err := unmarshalAndValidate[T](k, m.path)
	if err != nil {
		m.lastErr.Store(&err)
		return err
	}

	m.lastErr.Store(nil)
	m.binding.update(cfg)

	return nil
}

// LastError returns the error of the most recent load, nil when it succeeded.
func (m *BindModule[T]) LastError() error {
	if err := m.lastErr.Load(); err != nil {
		return *err
	}
	return nil
}

// Get returns the cached config value from DI.
func Get[T any](ctx context.Context) *T {
	return do.MustInvoke[*Binding[T]](app.GetInjector(ctx)).Get()
}

// GetBinding returns the Binding for advanced use (OnChange callbacks).
func GetBinding[T any](ctx context.Context) *Binding[T] {
	return do.MustInvoke[*Binding[T]](app.GetInjector(ctx))
}
