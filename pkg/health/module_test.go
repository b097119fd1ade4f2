package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/health"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/samber/do/v2"
)

type fakeStatus struct {
	err error
}

func (f *fakeStatus) Err() error { return f.err }

func TestModule_RegistryCheckFollowsReloadStatus(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	status := &fakeStatus{}
	do.ProvideValue[defaults.ReloadStatus](injector, status)

	testza.AssertNil(t, health.NewModule().Init(ctx))
	h := do.MustInvoke[*healthgo.Health](injector)

	testza.AssertEqual(t, healthgo.StatusOK, h.Measure(ctx).Status)

	status.err = errors.New("components: expected a map")
	check := h.Measure(ctx)
	testza.AssertEqual(t, healthgo.StatusUnavailable, check.Status)
	testza.AssertContains(t, check.Failures["defaults"], "reload rejected")
}

func TestModule_WithoutRegistry(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	testza.AssertNil(t, health.NewModule().Init(ctx))
	check := do.MustInvoke[*healthgo.Health](injector).Measure(ctx)

	testza.AssertEqual(t, healthgo.StatusOK, check.Status)
	testza.AssertEqual(t, "propdefs", check.Component.Name)
}

func TestModule_WiredToDefaultsModule(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	testza.AssertNil(t, defaults.NewModule().Init(ctx))
	testza.AssertNil(t, health.NewModule(health.WithCheck(healthgo.Config{
		Name:    "custom",
		Timeout: time.Second,
		Check:   func(context.Context) error { return nil },
	})).Init(ctx))

	testza.AssertEqual(t, healthgo.StatusOK, do.MustInvoke[*healthgo.Health](injector).Measure(ctx).Status)
}
