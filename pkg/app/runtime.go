package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vilsol/slox"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/sourcegraph/conc/pool"
)

const DefaultShutdownTimeout = 30 * time.Second

// Runtime initializes, starts and shuts down a fixed list of modules.
type Runtime struct {
	modules         []Module
	shutdownTimeout time.Duration

	// initialized counts the leading modules whose Init succeeded
	initialized int
}

// NewRuntime creates a runtime for modules. Init order follows argument order,
// so the config module has to come first.
func NewRuntime(modules ...Module) *Runtime {
	return &Runtime{
		modules:         modules,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func (r *Runtime) WithShutdownTimeout(timeout time.Duration) *Runtime {
	r.shutdownTimeout = timeout
	return r
}

// Run starts the runtime with a background context.
func (r *Runtime) Run() error {
	return r.RunContext(context.Background())
}

// Init creates a fresh injector and initializes every module in order without
// starting them. The returned context carries the injector and the logger.
func (r *Runtime) Init(ctx context.Context) (context.Context, error) {
	injector := do.New()
	ctx = WithInjector(ctx, injector)
	r.initialized = 0

	for _, module := range r.modules {
		if err := module.Init(ctx); err != nil {
			slox.Error(ctx, "failed initializing module", slog.String("name", moduleName(module)), slog.Any("error", err))
			return ctx, oops.
				With("name", moduleName(module)).
				Wrapf(err, "failed initializing module")
		}
		r.initialized++
	}

	logger, err := do.Invoke[*slog.Logger](injector)
	if err != nil || logger == nil {
		slox.Warn(ctx, "no logger registered, using default logger", slog.Any("error", err))

		logger = slog.Default()
		do.ProvideValue(injector, logger)
	}

	return slox.Into(ctx, logger), nil
}

// RunContext initializes and starts all modules, then blocks until a shutdown
// signal arrives or a module fails. Every module whose Init succeeded is shut
// down before returning, including when a later Init or a Start fails.
func (r *Runtime) RunContext(ctx context.Context) error {
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, err := r.Init(signalCtx)
	if err != nil {
		return oops.Join(err, r.Shutdown(context.WithoutCancel(runCtx)))
	}

	startDone := make(chan error, 1)
	go func() {
		startDone <- r.start(runCtx)
	}()

	select {
	case <-runCtx.Done():
		slox.Info(runCtx, "shutdown signal received")
	case err := <-startDone:
		if err != nil {
			slox.Error(runCtx, "modules failed", slog.Any("error", err))
			stop()
			return oops.Join(err, r.Shutdown(context.WithoutCancel(runCtx)))
		}
	}

	stop()

	// runCtx is cancelled at this point, keep its values but not its deadline
	return r.Shutdown(context.WithoutCancel(runCtx))
}

func (r *Runtime) start(ctx context.Context) error {
	startPool := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError()

	for _, module := range r.modules {
		startPool.Go(func(ctx context.Context) error {
			name := moduleName(module)

			var err error
			switch m := module.(type) {
			case AsyncModule:
				err = m.StartAsync(ctx)
			case SyncModule:
				err = m.Start(ctx)
			default:
				slox.Debug(ctx, "module has no start function", slog.String("name", name))
				return nil
			}

			if err != nil {
				slox.Error(ctx, "failed starting module", slog.String("name", name), slog.Any("error", err))
				return oops.
					With("name", name).
					Wrapf(err, "failed starting module")
			}

			return nil
		})
	}

	return startPool.Wait() //nolint:wrapcheck
}

// Shutdown shuts every initialized module down concurrently, bounded by the
// shutdown timeout.
func (r *Runtime) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, r.shutdownTimeout)
	defer cancel()

	shutdownPool := pool.New().
		WithErrors().
		WithContext(shutdownCtx)

	for _, module := range r.modules[:r.initialized] {
		shutdownPool.Go(func(ctx context.Context) error {
			if err := module.Shutdown(ctx); err != nil {
				slox.Error(ctx, "failed shutting down module", slog.String("name", moduleName(module)), slog.Any("error", err))
				return oops.
					With("name", moduleName(module)).
					Wrapf(err, "failed shutting down module")
			}
			return nil
		})
	}

	if err := shutdownPool.Wait(); err != nil {
		slox.Error(ctx, "failed shutting down modules", slog.Any("error", err))
		return err //nolint:wrapcheck
	}

	return nil
}

func moduleName(module Module) string {
	if named, ok := module.(NamedModule); ok {
		return fmt.Sprintf("%T(%s)", module, named.Name())
	}
	return fmt.Sprintf("%T", module)
}
