// Package props declares component properties whose defaults come from a
// settings registry.
//
// The registry is never looked up implicitly. A component instantiation builds
// a Scope from its own declared name and passes it to every default provider.
package props

import "github.com/samber/lo"

// Resolver looks up an option of a component, falling back to global
// defaults. It returns nil when nothing is configured.
type Resolver interface {
	Get(component, key string) any
}

// Scope is the context a default provider runs in.
type Scope struct {
	Resolver Resolver

	// Component is the canonical registry name of the component being instantiated.
	Component string
}

// NewScope creates a Scope for a component declared as name.
func NewScope(resolver Resolver, name string) Scope {
	return Scope{
		Resolver:  resolver,
		Component: CanonicalName(name),
	}
}

// Lookup returns the configured value of key for the scope's component.
func (s Scope) Lookup(key string) any {
	if s.Resolver == nil {
		return nil
	}
	return s.Resolver.Get(s.Component, key)
}

// CanonicalName converts a declared component name into its registry key,
// lowerCamelCase: "DatePicker", "date-picker" and "date_picker" all become "datePicker".
// A run of capitals is one word, so "QRCode" becomes "qrCode".
func CanonicalName(name string) string {
	return lo.CamelCase(name)
}
