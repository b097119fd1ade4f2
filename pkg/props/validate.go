package props

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// OneOf returns a validator accepting only the given strings.
func OneOf(allowed ...string) func(value any) bool {
	tag := "oneof=" + strings.Join(allowed, " ")
	return func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		return validatorInstance().Var(s, tag) == nil
	}
}

// Positive returns a validator accepting numbers greater than zero.
func Positive() func(value any) bool {
	return func(value any) bool {
		n, ok := toFloat(value)
		if !ok {
			return false
		}
		return validatorInstance().Var(n, "gt=0") == nil
	}
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
