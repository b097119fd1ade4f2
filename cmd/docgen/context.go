package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/Vilsol/slox"
)

// quietContext discards host warnings, they are reported in the YAML output instead.
func quietContext() context.Context {
	return slox.Into(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}
