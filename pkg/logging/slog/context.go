package slog

import (
	"context"
	"log/slog"
)

type logLevelKey struct{}

// WithLogLevel returns a context whose records are filtered against level
// instead of the per-package rules, e.g. to debug a single component instantiation.
func WithLogLevel(ctx context.Context, level slog.Level) context.Context {
	return context.WithValue(ctx, logLevelKey{}, level)
}

// LogLevelFromContext returns the level set by WithLogLevel, if any.
func LogLevelFromContext(ctx context.Context) (slog.Level, bool) {
	level, ok := ctx.Value(logLevelKey{}).(slog.Level)
	return level, ok
}
