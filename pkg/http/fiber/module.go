package fiberserver

import (
	"context"
	"log/slog"
	"net"
	"net/netip"

	"github.com/Vilsol/propdefs/pkg/app"
	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/slox"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/hellofresh/health-go/v5"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
)

var (
	_ app.SyncModule   = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module serves the registry inspector and any extra routes over Fiber.
type Module struct {
	config Config

	server   *fiber.App
	addrPort netip.AddrPort
	listener net.Listener

	runtimeContext context.Context //nolint:containedctx
}

// NewModule creates a new Fiber HTTP server module with the given options.
func NewModule(options ...Option) *Module {
	return &Module{
		config:         NewConfig(options...),
		runtimeContext: context.Background(),
	}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryHTTP, "fiber", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	path := m.ConfigPath()
	if k.Exists(path) {
		return m.config.LoadFromKoanf(k, path)
	}
	return nil
}

// App returns the Fiber app, available after Init.
func (m *Module) App() *fiber.App {
	return m.server
}

// Init loads configuration, creates the Fiber app, and registers middleware and routes.
func (m *Module) Init(ctx context.Context) error {
	injector := app.GetInjector(ctx)

	if k, err := do.Invoke[*koanf.Koanf](injector); err == nil {
		if err := m.LoadConfig(k); err != nil {
			return oops.Wrapf(err, "failed to load config")
		}
	}

	fiberConfig, err := m.config.ToFiberConfig()
	if err != nil {
		return err
	}

	server := fiber.New(fiberConfig)

	server.Hooks().OnPreStartupMessage(func(msgData *fiber.PreStartupMessageData) error {
		msgData.PreventDefault = true
		return nil
	})

	server.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Handlers log through the runtime context
	server.Use(func(c fiber.Ctx) error {
		c.SetContext(m.runtimeContext)
		return c.Next()
	})

	if m.config.RoutePrefix != "" {
		store, err := do.Invoke[*defaults.Store](injector)
		if err != nil {
			return oops.Wrapf(err, "failed to retrieve defaults store")
		}
		RegistryRoutes(store, m.config.RoutePrefix)(server)
	}

	for _, router := range m.config.Routers {
		router(server)
	}

	m.server = server

	addrPort, err := m.config.AddrPort()
	if err != nil {
		return oops.Wrapf(err, "failed to parse host address")
	}
	m.addrPort = addrPort

	return nil
}

// Start begins listening and serving HTTP requests.
func (m *Module) Start(ctx context.Context) error {
	m.runtimeContext = ctx

	if m.config.HealthPath != "" {
		h, err := do.Invoke[*health.Health](app.GetInjector(ctx))
		if err != nil {
			return oops.Wrapf(err, "failed to get health instance")
		}
		m.server.Get(m.config.HealthPath, adaptor.HTTPHandlerFunc(h.HandlerFunc))
	}

	var err error
	m.listener, err = (&net.ListenConfig{}).Listen(ctx, "tcp", m.addrPort.String())
	if err != nil {
		return oops.Wrapf(err, "failed to listen on %s", m.addrPort)
	}

	slox.Info(ctx, "defaults inspector started",
		slog.String("address", m.addrPort.String()),
		slog.String("prefix", m.config.RoutePrefix),
	)

	var wg errgroup.Group

	wg.Go(func() error {
		return oops.Wrapf(m.server.Listener(m.listener), "failed to start fiber http server")
	})

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return m.Shutdown(context.WithoutCancel(ctx))
	case err := <-serveDone:
		return err
	}
}

// Shutdown stops the server and waits for in-flight requests.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return oops.Wrapf(m.server.ShutdownWithContext(ctx), "failed to shut down fiber http server")
}
