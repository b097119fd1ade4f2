package config

import (
	"strings"
	"unicode"

	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// envMapper turns environment variables into koanf keys and typed values.
//
// PROPDEFS_MODULES_HTTP_FIBER_DEFAULT_PORT=9090 becomes modules.http.fiber.default.port = 9090.
// Every "_" separates a path segment. All-uppercase segments are lowercased,
// segments with any lowercase letter keep their case:
//
//	PROPDEFS_MODULES_UI_DEFAULTS_DEFAULT_COMPONENTS_datePicker_zIndex=9000
//
// Keys already loaded from files are matched case-insensitively with "_" and
// "." treated alike, so PROPDEFS_..._HEALTH_PATH lands on health_path and
// ..._COMPONENTS_DATEPICKER_ZINDEX lands on a file's datePicker.zIndex.
type envMapper struct {
	prefix   string
	existing map[string]string
}

func newEnvMapper(prefix string, k *koanf.Koanf) *envMapper {
	existing := make(map[string]string)
	for _, key := range k.Keys() {
		segments := strings.Split(key, ".")
		for i := range segments {
			original := strings.Join(segments[:i+1], ".")
			existing[normalizeKey(original)] = original
		}
	}

	return &envMapper{prefix: prefix, existing: existing}
}

// Map is the koanf env provider callback.
func (e *envMapper) Map(name, value string) (string, any) {
	return e.key(name), envValue(value)
}

func (e *envMapper) key(name string) string {
	tokens := lo.Compact(strings.Split(strings.TrimPrefix(name, e.prefix), "_"))

	for n := len(tokens); n > 0; n-- {
		original, ok := e.existing[normalizeKey(strings.Join(tokens[:n], "."))]
		if !ok {
			continue
		}
		return strings.Join(append([]string{original}, casedSegments(tokens[n:])...), ".")
	}

	return strings.Join(casedSegments(tokens), ".")
}

func casedSegments(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		if strings.IndexFunc(token, unicode.IsLower) >= 0 {
			out[i] = token
		} else {
			out[i] = strings.ToLower(token)
		}
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "."))
}

// envValue decodes scalars the way a YAML file would: "9000" is an int,
// "false" a bool, "1.5" a float. Anything else stays a string.
func envValue(value string) any {
	var decoded any
	if err := yaml.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}

	switch decoded.(type) {
	case bool, int, float64:
		return decoded
	default:
		return value
	}
}
