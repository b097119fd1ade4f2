package props

// Registry keys and fallbacks of the built-in properties.
const (
	SizeKey     = "size"
	TransferKey = "transfer"
	ZIndexKey   = "zIndex"

	DefaultSize     = "default"
	DefaultTransfer = false
	DefaultZIndex   = 2000
)

// Sizes lists the values accepted by the size property.
var Sizes = []string{"small", DefaultSize, "large"}

// Configured returns a provider that reads key from the registry and falls back
// to fallback when it is unset. A provider fallback is evaluated on every call.
func Configured(key string, fallback any) DefaultFunc {
	return func(scope Scope) any {
		if v := scope.Lookup(key); v != nil {
			return v
		}
		return evaluate(fallback, scope)
	}
}

// Size declares the size property: small, default or large.
func Size() Descriptor {
	return Descriptor{
		Kinds:     []Kind{KindString},
		Default:   Configured(SizeKey, DefaultSize),
		Validator: OneOf(Sizes...),
	}
}

// Transfer declares the transfer property, either a flag or a target selector.
func Transfer() Descriptor {
	return Descriptor{
		Kinds:   []Kind{KindBool, KindString},
		Default: Configured(TransferKey, DefaultTransfer),
	}
}

// ZIndex declares the z-index property, which must be positive.
func ZIndex() Descriptor {
	return Descriptor{
		Kinds:     []Kind{KindNumber},
		Default:   Configured(ZIndexKey, DefaultZIndex),
		Validator: Positive(),
	}
}

// UseConfigurable makes every prop's default overridable from the registry
// under the prop's own name. The declared default remains the fallback.
func UseConfigurable(props map[string]Descriptor) map[string]Descriptor {
	out := make(map[string]Descriptor, len(props))
	for key, prop := range props {
		prop.Default = Configured(key, prop.Default)
		out[key] = prop
	}
	return out
}
