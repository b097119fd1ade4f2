// Package component instantiates component definitions: supplied property
// values win, the rest come from each property's default provider.
package component

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/Vilsol/propdefs/pkg/props"
	"github.com/Vilsol/slox"
)

const (
	ReasonType      = "type check failed"
	ReasonValidator = "custom validator check failed"
)

// Definition declares a component and its properties.
type Definition struct {
	// Name as declared, e.g. "DatePicker". The registry name is derived from it.
	Name  string
	Props map[string]props.Descriptor
}

// Warning reports a property value rejected by its declaration. The value is used regardless.
type Warning struct {
	Prop   string `json:"prop"`
	Value  any    `json:"value"`
	Reason string `json:"reason"`
}

// Instance is a component with all of its properties resolved.
type Instance struct {
	// Component is the canonical registry name.
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	Warnings  []Warning      `json:"warnings,omitempty"`
}

// Host resolves property defaults against a registry.
type Host struct {
	resolver props.Resolver
}

// NewHost creates a host reading defaults from resolver.
func NewHost(resolver props.Resolver) *Host {
	return &Host{resolver: resolver}
}

// Instantiate resolves every property of def. Non-nil supplied values are
// used as-is, everything else is taken from the default provider. Values that
// fail the kind check or validator are logged and reported as warnings.
func (h *Host) Instantiate(ctx context.Context, def Definition, supplied map[string]any) *Instance {
	scope := props.NewScope(h.resolver, def.Name)

	instance := &Instance{
		Component: scope.Component,
		Props:     make(map[string]any, len(def.Props)),
	}

	for _, key := range slices.Sorted(maps.Keys(def.Props)) {
		prop := def.Props[key]

		value, ok := supplied[key]
		if !ok || value == nil {
			value = prop.DefaultValue(scope)
		}

		instance.Props[key] = value

		if reason := check(prop, value); reason != "" {
			slox.Warn(ctx, "invalid prop",
				slog.String("component", scope.Component),
				slog.String("prop", key),
				slog.Any("value", value),
				slog.String("reason", reason),
			)
			instance.Warnings = append(instance.Warnings, Warning{Prop: key, Value: value, Reason: reason})
		}
	}

	return instance
}

func check(prop props.Descriptor, value any) string {
	if !prop.Accepts(value) {
		return ReasonType
	}
	if !prop.Validate(value) {
		return ReasonValidator
	}
	return ""
}
