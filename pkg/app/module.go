package app

import (
	"context"

	"github.com/knadh/koanf/v2"
)

// Module is the base interface for every unit the Runtime manages.
type Module interface {
	Init(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// SyncModule blocks in Start until its context is cancelled.
type SyncModule interface {
	Module
	Start(ctx context.Context) error
}

// AsyncModule returns from StartAsync once its background work is running.
type AsyncModule interface {
	Module
	StartAsync(ctx context.Context) error
}

// Configurable is implemented by modules that read their settings from koanf.
type Configurable interface {
	// ConfigPath returns the koanf path of the module configuration,
	// e.g. "modules.ui.defaults.default".
	ConfigPath() string

	// LoadConfig decodes the module configuration from k.
	LoadConfig(k *koanf.Koanf) error
}

// NamedModule is implemented by modules that can run as several named instances.
type NamedModule interface {
	Name() string
}
