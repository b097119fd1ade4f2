package app

import (
	"context"

	"github.com/samber/do/v2"
)

type injectorKey struct{}

// GetInjector returns the injector stored in ctx. It panics when there is none,
// which only happens when a module is used outside of a Runtime.
func GetInjector(ctx context.Context) do.Injector { //nolint:ireturn
	injector, ok := ctx.Value(injectorKey{}).(do.Injector)
	if !ok {
		panic("injector not found in context")
	}
	return injector
}

// LookupInjector is the non-panicking variant of GetInjector.
func LookupInjector(ctx context.Context) (do.Injector, bool) { //nolint:ireturn
	injector, ok := ctx.Value(injectorKey{}).(do.Injector)
	return injector, ok
}

// WithInjector returns a copy of ctx carrying injector.
func WithInjector(ctx context.Context, injector do.Injector) context.Context {
	return context.WithValue(ctx, injectorKey{}, injector)
}

// Provide registers a lazy provider in the injector from ctx.
func Provide[T any](ctx context.Context, provider do.Provider[T]) {
	do.Provide(GetInjector(ctx), provider)
}

// ProvideValue registers an already built value in the injector from ctx.
func ProvideValue[T any](ctx context.Context, value T) {
	do.ProvideValue(GetInjector(ctx), value)
}
