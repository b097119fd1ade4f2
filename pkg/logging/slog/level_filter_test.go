package slog

import (
	"context"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/MarvinJWendt/testza"
)

const thisPackage = "github.com/Vilsol/propdefs/pkg/logging/slog"

var testTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPackagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"method on pointer receiver", "github.com/org/repo/pkg.(*Type).Method", "github.com/org/repo/pkg"},
		{"plain function", "github.com/org/repo/pkg.Function", "github.com/org/repo/pkg"},
		{"nested package", "github.com/org/repo/pkg/sub/deep.Function", "github.com/org/repo/pkg/sub/deep"},
		{"closure", "github.com/org/repo/pkg.Function.func1", "github.com/org/repo/pkg"},
		{"main package", "main.main", "main"},
		{"no dots", "github.com/org/repo/pkg", "github.com/org/repo/pkg"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testza.AssertEqual(t, tt.expected, packagePath(tt.input))
		})
	}
}

func TestLevelRules_Match(t *testing.T) {
	t.Parallel()

	rules := buildRules(slog.LevelInfo, map[string]slog.Level{
		"github.com/org/repo/pkg/component":      slog.LevelDebug,
		"github.com/org/repo/pkg/component/host": slog.LevelError,
		"github.com/org/repo/pkg/config":         slog.LevelWarn,
	})

	tests := []struct {
		name     string
		pkgPath  string
		expected slog.Level
	}{
		{"longest prefix wins", "github.com/org/repo/pkg/component/host", slog.LevelError},
		{"shorter prefix", "github.com/org/repo/pkg/component", slog.LevelDebug},
		{"other subtree", "github.com/org/repo/pkg/config", slog.LevelWarn},
		{"no match falls back", "github.com/org/repo/pkg/props", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testza.AssertEqual(t, tt.expected, rules.match(tt.pkgPath))
		})
	}

	testza.AssertEqual(t, slog.LevelDebug, rules.minLevel)
}

func record(level slog.Level, msg string) slog.Record {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	return slog.NewRecord(testTime, level, msg, pcs[0])
}

func TestLevelFilter_Enabled(t *testing.T) {
	t.Parallel()

	f := newLevelFilter(&recordingHandler{}, slog.LevelError, map[string]slog.Level{
		"github.com/org/repo": slog.LevelWarn,
	})

	testza.AssertFalse(t, f.Enabled(context.Background(), slog.LevelInfo))
	testza.AssertTrue(t, f.Enabled(context.Background(), slog.LevelWarn))

	ctx := WithLogLevel(context.Background(), slog.LevelDebug)
	testza.AssertTrue(t, f.Enabled(ctx, slog.LevelDebug))
}

func TestLevelFilter_HandleUsesPackageRule(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	f := newLevelFilter(handler, slog.LevelError, map[string]slog.Level{
		thisPackage: slog.LevelDebug,
	})

	testza.AssertNil(t, f.Handle(context.Background(), record(slog.LevelDebug, "kept")))
	testza.AssertLen(t, handler.records, 1)
	testza.AssertEqual(t, "kept", handler.records[0].Message)
}

func TestLevelFilter_HandleDropsBelowFallback(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	f := newLevelFilter(handler, slog.LevelError, map[string]slog.Level{
		"github.com/some/other/pkg": slog.LevelDebug,
	})

	testza.AssertNil(t, f.Handle(context.Background(), record(slog.LevelInfo, "dropped")))
	testza.AssertLen(t, handler.records, 0)
}

func TestLevelFilter_ContextOverride(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	f := newLevelFilter(handler, slog.LevelDebug, nil)

	ctx := WithLogLevel(context.Background(), slog.LevelWarn)
	testza.AssertNil(t, f.Handle(ctx, record(slog.LevelInfo, "dropped by context")))
	testza.AssertNil(t, f.Handle(ctx, record(slog.LevelWarn, "kept by context")))

	testza.AssertLen(t, handler.records, 1)
	testza.AssertEqual(t, "kept by context", handler.records[0].Message)
}

func TestLevelFilter_UpdateReachesDerivedHandlers(t *testing.T) {
	t.Parallel()

	handler := &recordingHandler{}
	f := newLevelFilter(handler, slog.LevelError, nil)
	derived, ok := f.WithAttrs([]slog.Attr{slog.String("component", "modal")}).(*levelFilter)
	testza.AssertTrue(t, ok)

	testza.AssertNil(t, derived.Handle(context.Background(), record(slog.LevelDebug, "before")))
	testza.AssertLen(t, handler.records, 0)

	f.Update(slog.LevelError, map[string]slog.Level{thisPackage: slog.LevelDebug})

	testza.AssertNil(t, derived.Handle(context.Background(), record(slog.LevelDebug, "after")))
	testza.AssertLen(t, handler.records, 1)
	testza.AssertEqual(t, "after", handler.records[0].Message)
}

func TestWithLogLevel(t *testing.T) {
	t.Parallel()

	_, ok := LogLevelFromContext(context.Background())
	testza.AssertFalse(t, ok)

	level, ok := LogLevelFromContext(WithLogLevel(context.Background(), slog.LevelWarn))
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, slog.LevelWarn, level)
}

type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	h.records = append(h.records, record)
	return nil
}

// Derived handlers record into the same slice so tests can observe them.
func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *recordingHandler) WithGroup(_ string) slog.Handler {
	return h
}
