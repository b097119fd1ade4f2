package fiberserver

import (
	"log/slog"

	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/props"
	"github.com/Vilsol/slox"
	"github.com/gofiber/fiber/v3"
)

// RegistryRoutes exposes the defaults registry under prefix:
//
//	GET  {prefix}                  every bucket as written
//	GET  {prefix}/:component       effective options of a component
//	GET  {prefix}/:component/:key  resolved value, null when unset
//	PUT  {prefix}/:component       merge a JSON object into the bucket
//
// Component names are canonicalized the way hosts look them up, so
// /DatePicker, /date-picker and /datePicker address the same bucket.
// PUT mirrors Store.Set: bodies that are valid JSON but not objects are ignored.
func RegistryRoutes(store *defaults.Store, prefix string) Router {
	return func(app *fiber.App) {
		group := app.Group(prefix)

		group.Get("/", func(c fiber.Ctx) error {
			return c.JSON(store.Snapshot())
		})

		group.Get("/:component", func(c fiber.Ctx) error {
			component := registryName(c)
			return c.JSON(fiber.Map{
				"component":  component,
				"configured": store.Has(component),
				"values":     store.Bucket(component),
			})
		})

		group.Get("/:component/:key", func(c fiber.Ctx) error {
			component, key := registryName(c), c.Params("key")
			return c.JSON(fiber.Map{
				"component": component,
				"key":       key,
				"value":     store.Get(component, key),
			})
		})

		group.Put("/:component", func(c fiber.Ctx) error {
			var body any
			if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON body"})
			}

			component := registryName(c)
			store.Set(component, body)

			slox.Debug(c.Context(), "registry updated over http", slog.String("component", component))

			return c.SendStatus(fiber.StatusNoContent)
		})
	}
}

func registryName(c fiber.Ctx) string {
	return props.CanonicalName(c.Params("component"))
}
