// inspector serves the component defaults registry over HTTP.
//   - Seeds the registry from propdefs.{yaml,json,toml} and PROPDEFS_ env vars.
//   - Reloads the registry when the config file changes.
//   - Exposes the registry under /defaults and health checks under /health.
package main

import (
	"os"
	"time"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/component"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/health"
	fiberserver "github.com/Vilsol/propdefs/pkg/http/fiber"
	"github.com/Vilsol/propdefs/pkg/logging/slog"
	"github.com/Vilsol/propdefs/pkg/logging/tint"
	"github.com/Vilsol/propdefs/pkg/props"
	"github.com/gofiber/fiber/v3"
)

func main() {
	runtime := app.NewRuntime(
		// Config module MUST be first
		config.NewModule(
			config.WithConfigDirs(".", "./config"),
			config.WithArgs(os.Args[1:]),
		),

		tint.NewModule(),
		slog.NewModule(slog.WithGlobalDefault(true)),
		defaults.NewModule(
			defaults.WithDefaults(defaults.Bucket{
				props.SizeKey:   props.DefaultSize,
				props.ZIndexKey: props.DefaultZIndex,
			}),
		),
		component.NewModule(),
		health.NewModule(),
		fiberserver.NewModule(
			fiberserver.WithHealthPath("/health"),
			fiberserver.WithDefaults(fiber.Config{
				ReadTimeout:  10 * time.Second, //nolint:mnd
				WriteTimeout: 10 * time.Second, //nolint:mnd
			}),
			fiberserver.WithRouter(previewRoutes),
		),
	)

	if err := runtime.Run(); err != nil {
		os.Exit(1)
		return
	}
}
