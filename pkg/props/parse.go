package props

import (
	"github.com/mitchellh/mapstructure"
)

// Parse decodes a textual value, such as a query parameter, into the first
// declared kind it converts to. "false" becomes a bool for a bool|string
// property and "5000" an int for a number property. Raw is returned unchanged
// when no kind fits or none is declared.
func (d Descriptor) Parse(raw string) any {
	for _, kind := range d.Kinds {
		if value, ok := parseAs(kind, raw); ok {
			return value
		}
	}
	return raw
}

func parseAs(kind Kind, raw string) (any, bool) {
	switch kind {
	case KindBool:
		return weakDecode[bool](raw)
	case KindNumber:
		if n, ok := weakDecode[int](raw); ok {
			return n, true
		}
		return weakDecode[float64](raw)
	case KindString, KindAny:
		return raw, true
	default:
		return nil, false
	}
}

func weakDecode[T any](raw string) (any, bool) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, false
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, false
	}

	return out, true
}
