package main

import (
	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/component"
	"github.com/Vilsol/propdefs/pkg/props"
	"github.com/gofiber/fiber/v3"
	"github.com/samber/do/v2"
)

// overlay is a stand-in component carrying only the built-in props.
func overlay(name string) component.Definition {
	return component.Definition{
		Name: name,
		Props: props.UseConfigurable(map[string]props.Descriptor{
			props.SizeKey:     props.Size(),
			props.TransferKey: props.Transfer(),
			props.ZIndexKey:   props.ZIndex(),
		}),
	}
}

// previewRoutes resolves what a component would be instantiated with.
// Query parameters naming a prop are decoded against its kinds and supplied.
func previewRoutes(server *fiber.App) {
	server.Get("/preview/:component", func(c fiber.Ctx) error {
		host, err := do.Invoke[*component.Host](app.GetInjector(c.Context()))
		if err != nil {
			return fiber.ErrServiceUnavailable
		}

		def := overlay(c.Params("component"))
		instance := host.Instantiate(c.Context(), def, supplied(def, c.Queries()))
		return c.JSON(instance)
	})
}

func supplied(def component.Definition, queries map[string]string) map[string]any {
	out := make(map[string]any, len(queries))
	for key, raw := range queries {
		prop, ok := def.Props[key]
		if !ok || raw == "" {
			continue
		}
		out[key] = prop.Parse(raw)
	}
	return out
}
