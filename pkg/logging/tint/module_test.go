package tint_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/logging/tint"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
)

func TestModule_LevelFromConfig(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	k := koanf.New(".")
	testza.AssertNil(t, k.Load(confmap.Provider(map[string]any{
		"modules.logging.tint.default.level":    "warn",
		"modules.logging.tint.default.no_color": true,
	}, "."), nil))
	do.ProvideValue(injector, k)

	var buf bytes.Buffer
	m := tint.NewModule(tint.WithWriter(&buf))
	testza.AssertNil(t, m.Init(ctx))

	logger := slog.New(do.MustInvoke[slog.Handler](injector))
	logger.Info("registry seeded")
	logger.Warn("rejected size", slog.String("component", "modal"))

	out := buf.String()
	testza.AssertNotContains(t, out, "registry seeded")
	testza.AssertContains(t, out, "rejected size")
	testza.AssertContains(t, out, "component=modal")
	testza.AssertNotContains(t, out, "\x1b[")
}

func TestModule_WithoutKoanfUsesOptions(t *testing.T) {
	t.Parallel()

	ctx := app.WithInjector(context.Background(), do.New())

	var buf bytes.Buffer
	m := tint.NewModule(tint.WithWriter(&buf), tint.WithLevel("debug"), tint.WithNoColor())
	testza.AssertNil(t, m.Init(ctx))

	handler := do.MustInvoke[slog.Handler](app.GetInjector(ctx))
	testza.AssertTrue(t, handler.Enabled(ctx, slog.LevelDebug))
	testza.AssertEqual(t, "modules.logging.tint.default", m.ConfigPath())
}

type reloadNotifier struct {
	callbacks []func(k *koanf.Koanf)
}

func (r *reloadNotifier) OnReload(fn func(k *koanf.Koanf)) {
	r.callbacks = append(r.callbacks, fn)
}

func TestModule_ReloadChangesLevel(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	notifier := &reloadNotifier{}
	do.ProvideValue[config.ReloadNotifier](injector, notifier)
	do.ProvideValue(injector, koanf.New("."))

	var buf bytes.Buffer
	m := tint.NewModule(tint.WithWriter(&buf), tint.WithNoColor())
	testza.AssertNil(t, m.Init(ctx))
	testza.AssertFalse(t, m.Handler().Enabled(ctx, slog.LevelDebug))

	next := koanf.New(".")
	testza.AssertNil(t, next.Load(confmap.Provider(map[string]any{
		"modules.logging.tint.default.level": "debug",
	}, "."), nil))
	for _, fn := range notifier.callbacks {
		fn(next)
	}

	testza.AssertTrue(t, m.Handler().Enabled(ctx, slog.LevelDebug))
}

func TestModule_HighlightsComponentAttrs(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	k := koanf.New(".")
	testza.AssertNil(t, k.Load(confmap.Provider(map[string]any{
		"modules.logging.tint.default.highlight_color": 200,
	}, "."), nil))
	do.ProvideValue(injector, k)

	var buf bytes.Buffer
	m := tint.NewModule(tint.WithWriter(&buf))
	testza.AssertNil(t, m.Init(ctx))

	slog.New(m.Handler()).Warn("invalid prop", slog.String("component", "modal"), slog.String("reason", "type"))
	testza.AssertContains(t, buf.String(), "38;5;200")

	buf.Reset()
	plain := tint.NewModule(tint.WithWriter(&buf), tint.WithHighlight())
	testza.AssertNil(t, plain.Init(app.WithInjector(context.Background(), do.New())))

	slog.New(plain.Handler()).Warn("invalid prop", slog.String("component", "modal"))
	testza.AssertNotContains(t, buf.String(), "38;5;200")
}
