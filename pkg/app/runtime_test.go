package app_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/samber/do/v2"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *journal) has(entry string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.entries {
		if e == entry {
			return true
		}
	}
	return false
}

type fakeModule struct {
	name     string
	journal  *journal
	initErr  error
	startErr error
}

func (m *fakeModule) Init(_ context.Context) error {
	m.journal.add("init " + m.name)
	return m.initErr
}

func (m *fakeModule) Shutdown(_ context.Context) error {
	m.journal.add("shutdown " + m.name)
	return nil
}

type fakeSyncModule struct {
	fakeModule
}

func (m *fakeSyncModule) Start(_ context.Context) error {
	m.journal.add("start " + m.name)
	return m.startErr
}

type providerModule struct {
	fakeModule
}

func (m *providerModule) Init(ctx context.Context) error {
	app.ProvideValue(ctx, "registry")
	return m.fakeModule.Init(ctx)
}

func TestRuntime_InitRunsInOrder(t *testing.T) {
	t.Parallel()

	j := &journal{}
	rt := app.NewRuntime(
		&providerModule{fakeModule{name: "a", journal: j}},
		&fakeModule{name: "b", journal: j},
	)

	ctx, err := rt.Init(context.Background())
	testza.AssertNil(t, err)
	testza.AssertEqual(t, []string{"init a", "init b"}, j.entries)

	value, err := do.Invoke[string](app.GetInjector(ctx))
	testza.AssertNil(t, err)
	testza.AssertEqual(t, "registry", value)

	// a default logger is provided when no module registers one
	logger, err := do.Invoke[*slog.Logger](app.GetInjector(ctx))
	testza.AssertNil(t, err)
	testza.AssertNotNil(t, logger)
}

func TestRuntime_InitStopsOnError(t *testing.T) {
	t.Parallel()

	j := &journal{}
	rt := app.NewRuntime(
		&fakeModule{name: "a", journal: j, initErr: errors.New("boom")},
		&fakeModule{name: "b", journal: j},
	)

	_, err := rt.Init(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertEqual(t, []string{"init a"}, j.entries)
}

func TestRuntime_RunShutsDownAfterStart(t *testing.T) {
	t.Parallel()

	j := &journal{}
	rt := app.NewRuntime(
		&fakeSyncModule{fakeModule{name: "server", journal: j}},
		&fakeModule{name: "store", journal: j},
	)

	testza.AssertNil(t, rt.RunContext(context.Background()))
	testza.AssertTrue(t, j.has("start server"))
	testza.AssertTrue(t, j.has("shutdown server"))
	testza.AssertTrue(t, j.has("shutdown store"))
}

func TestRuntime_RunReturnsStartError(t *testing.T) {
	t.Parallel()

	j := &journal{}
	rt := app.NewRuntime(
		&fakeSyncModule{fakeModule{name: "server", journal: j, startErr: errors.New("listen failed")}},
	)

	err := rt.RunContext(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertContains(t, err.Error(), "listen failed")
	testza.AssertTrue(t, j.has("shutdown server"))
}

func TestRuntime_RunShutsDownInitializedModulesOnInitError(t *testing.T) {
	t.Parallel()

	j := &journal{}
	rt := app.NewRuntime(
		&fakeModule{name: "config", journal: j},
		&fakeModule{name: "registry", journal: j, initErr: errors.New("bad config")},
		&fakeSyncModule{fakeModule{name: "server", journal: j}},
	)

	err := rt.RunContext(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertContains(t, err.Error(), "bad config")
	testza.AssertEqual(t, []string{"init config", "init registry", "shutdown config"}, j.entries)
}

func TestLookupInjector(t *testing.T) {
	t.Parallel()

	_, ok := app.LookupInjector(context.Background())
	testza.AssertFalse(t, ok)

	injector := do.New()
	got, ok := app.LookupInjector(app.WithInjector(context.Background(), injector))
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, injector, got)
}
