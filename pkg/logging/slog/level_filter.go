package slog

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

var _ slog.Handler = (*levelFilter)(nil)

type levelRule struct {
	prefix string
	level  slog.Level
}

// levelRules is immutable once built; updates swap the whole value.
type levelRules struct {
	fallback slog.Level
	rules    []levelRule // longest prefix first
	minLevel slog.Level
}

func buildRules(fallback slog.Level, levels map[string]slog.Level) *levelRules {
	r := &levelRules{fallback: fallback, minLevel: fallback}

	for prefix, level := range levels {
		r.rules = append(r.rules, levelRule{prefix: prefix, level: level})
		r.minLevel = min(r.minLevel, level)
	}

	slices.SortFunc(r.rules, func(a, b levelRule) int {
		return cmp.Compare(len(b.prefix), len(a.prefix))
	})

	return r
}

func (r *levelRules) match(pkgPath string) slog.Level {
	for _, rule := range r.rules {
		if strings.HasPrefix(pkgPath, rule.prefix) {
			return rule.level
		}
	}
	return r.fallback
}

// levelFilter drops records below the level configured for the package that
// produced them. A level stored in the context via WithLogLevel takes precedence.
type levelFilter struct {
	upstream slog.Handler
	state    *atomic.Pointer[levelRules]
	cache    *sync.Map // function name -> slog.Level
}

func newLevelFilter(upstream slog.Handler, fallback slog.Level, levels map[string]slog.Level) *levelFilter {
	f := &levelFilter{
		upstream: upstream,
		state:    &atomic.Pointer[levelRules]{},
		cache:    &sync.Map{},
	}
	f.state.Store(buildRules(fallback, levels))
	return f
}

// Update swaps the rules. Handlers derived via WithAttrs/WithGroup share them.
func (f *levelFilter) Update(fallback slog.Level, levels map[string]slog.Level) {
	f.state.Store(buildRules(fallback, levels))
	f.cache.Clear()
}

// Enabled has no caller information, so it only rejects levels below every rule.
func (f *levelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	if override, ok := LogLevelFromContext(ctx); ok {
		return level >= override && f.upstream.Enabled(ctx, level)
	}
	return level >= f.state.Load().minLevel && f.upstream.Enabled(ctx, level)
}

func (f *levelFilter) Handle(ctx context.Context, record slog.Record) error {
	threshold, ok := LogLevelFromContext(ctx)
	if !ok {
		threshold = f.resolve(record.PC)
	}

	if record.Level < threshold {
		return nil
	}

	return f.upstream.Handle(ctx, record) //nolint:wrapcheck
}

func (f *levelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelFilter{upstream: f.upstream.WithAttrs(attrs), state: f.state, cache: f.cache}
}

func (f *levelFilter) WithGroup(name string) slog.Handler {
	return &levelFilter{upstream: f.upstream.WithGroup(name), state: f.state, cache: f.cache}
}

func (f *levelFilter) resolve(pc uintptr) slog.Level {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()

	if cached, ok := f.cache.Load(frame.Function); ok {
		level, _ := cached.(slog.Level)
		return level
	}

	level := f.state.Load().match(packagePath(frame.Function))
	f.cache.Store(frame.Function, level)

	return level
}

// packagePath returns the import path of a fully qualified function name.
// e.g. "github.com/org/repo/pkg.(*Type).Method" -> "github.com/org/repo/pkg"
func packagePath(funcName string) string {
	lastSlash := strings.LastIndex(funcName, "/")
	before, _, found := strings.Cut(funcName[lastSlash+1:], ".")
	if !found {
		return funcName
	}
	return funcName[:lastSlash+1+len(before)]
}
