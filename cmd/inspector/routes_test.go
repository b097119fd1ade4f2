package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/component"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/gofiber/fiber/v3"
	"github.com/samber/do/v2"
)

func newPreviewApp(store *defaults.Store) *fiber.App {
	injector := do.New()
	do.ProvideValue(injector, component.NewHost(store))
	ctx := app.WithInjector(context.Background(), injector)

	server := fiber.New()
	server.Use(func(c fiber.Ctx) error {
		c.SetContext(ctx)
		return c.Next()
	})
	previewRoutes(server)

	return server
}

func preview(t *testing.T, server *fiber.App, path string) component.Instance {
	t.Helper()

	resp, err := server.Test(httptest.NewRequest(http.MethodGet, path, nil))
	testza.AssertNil(t, err)
	defer resp.Body.Close()

	testza.AssertEqual(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	testza.AssertNil(t, err)

	var instance component.Instance
	testza.AssertNil(t, json.Unmarshal(raw, &instance))

	return instance
}

func TestPreview_DecodesQueryValuesByKind(t *testing.T) {
	t.Parallel()

	server := newPreviewApp(defaults.NewStore())

	instance := preview(t, server, "/preview/Modal?zIndex=5000&transfer=false&size=large")
	testza.AssertEqual(t, "modal", instance.Component)
	testza.AssertEqual(t, float64(5000), instance.Props["zIndex"])
	testza.AssertEqual(t, false, instance.Props["transfer"])
	testza.AssertEqual(t, "large", instance.Props["size"])
	testza.AssertLen(t, instance.Warnings, 0)

	instance = preview(t, server, "/preview/Modal?transfer=%23portal")
	testza.AssertEqual(t, "#portal", instance.Props["transfer"])
	testza.AssertLen(t, instance.Warnings, 0)
}

func TestPreview_ReportsRejectedValues(t *testing.T) {
	t.Parallel()

	server := newPreviewApp(defaults.NewStore())

	instance := preview(t, server, "/preview/Modal?zIndex=-5&size=huge")
	testza.AssertLen(t, instance.Warnings, 2)
	for _, warning := range instance.Warnings {
		testza.AssertEqual(t, component.ReasonValidator, warning.Reason)
	}

	instance = preview(t, server, "/preview/Modal?zIndex=high")
	testza.AssertLen(t, instance.Warnings, 1)
	testza.AssertEqual(t, component.ReasonType, instance.Warnings[0].Reason)
}

func TestPreview_FallsBackToRegistry(t *testing.T) {
	t.Parallel()

	store := defaults.NewStore()
	store.SetDefaults(defaults.Bucket{"zIndex": 3000})
	store.Set("datePicker", defaults.Bucket{"size": "small"})

	instance := preview(t, newPreviewApp(store), "/preview/DatePicker")
	testza.AssertEqual(t, "datePicker", instance.Component)
	testza.AssertEqual(t, "small", instance.Props["size"])
	testza.AssertEqual(t, float64(3000), instance.Props["zIndex"])
	testza.AssertEqual(t, false, instance.Props["transfer"])
}
