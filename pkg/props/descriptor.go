package props

import (
	"reflect"
	"slices"
)

// Kind is the coarse type a property accepts.
type Kind uint8

const (
	KindAny Kind = iota
	KindBool
	KindString
	KindNumber
	KindObject
	KindSlice
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	case KindSlice:
		return "slice"
	default:
		return "any"
	}
}

// Matches reports whether value is of kind k. Nil matches every kind.
func (k Kind) Matches(value any) bool {
	if value == nil || k == KindAny {
		return true
	}

	switch reflect.ValueOf(value).Kind() { //nolint:exhaustive
	case reflect.Bool:
		return k == KindBool
	case reflect.String:
		return k == KindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return k == KindNumber
	case reflect.Map, reflect.Struct:
		return k == KindObject
	case reflect.Slice, reflect.Array:
		return k == KindSlice
	default:
		return false
	}
}

// DefaultFunc computes a default value within a scope.
type DefaultFunc func(scope Scope) any

// Descriptor declares a single component property.
type Descriptor struct {
	// Kinds the property accepts. Empty accepts anything.
	Kinds []Kind

	// Default is a literal value, a func() any, or a DefaultFunc.
	Default any

	// Validator is an optional predicate values have to satisfy.
	Validator func(value any) bool
}

// DefaultValue evaluates the default within scope, calling it when it is a provider.
func (d Descriptor) DefaultValue(scope Scope) any {
	return evaluate(d.Default, scope)
}

// Accepts reports whether value matches one of the declared kinds.
func (d Descriptor) Accepts(value any) bool {
	if len(d.Kinds) == 0 {
		return true
	}
	return slices.ContainsFunc(d.Kinds, func(k Kind) bool {
		return k.Matches(value)
	})
}

// Validate runs the validator. Properties without one accept every value.
func (d Descriptor) Validate(value any) bool {
	if d.Validator == nil {
		return true
	}
	return d.Validator(value)
}

func evaluate(def any, scope Scope) any {
	switch fn := def.(type) {
	case DefaultFunc:
		return fn(scope)
	case func(Scope) any:
		return fn(scope)
	case func() any:
		return fn()
	default:
		return def
	}
}
