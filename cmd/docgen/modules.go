package main

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/health"
	fiberserver "github.com/Vilsol/propdefs/pkg/http/fiber"
	slogmodule "github.com/Vilsol/propdefs/pkg/logging/slog"
	"github.com/Vilsol/propdefs/pkg/logging/tint"
)

type moduleDoc struct {
	Package    string        `yaml:"package"`
	ConfigPath string        `yaml:"configPath"`
	Fields     []fieldDoc    `yaml:"fields,omitempty"`
	CodeOnly   []codeOnlyDoc `yaml:"codeOnly,omitempty"`
}

type fieldDoc struct {
	Key     string `yaml:"key"`
	Type    string `yaml:"type"`
	Default string `yaml:"default,omitempty"`
	EnvVar  string `yaml:"envVar"`
}

type codeOnlyDoc struct {
	Option string `yaml:"option"`
	Type   string `yaml:"type"`
}

type documented struct {
	config any
	path   string
}

func moduleDocs() []moduleDoc {
	modules := []documented{
		{defaults.NewDefaultConfig(), config.ModulePath(config.CategoryUI, "defaults", "<name>")},
		{fiberserver.NewDefaultConfig(), config.ModulePath(config.CategoryHTTP, "fiber", "<name>")},
		{health.NewDefaultConfig(), config.ModulePath(config.CategoryHealth, "health", "<name>")},
		{tint.NewDefaultConfig(), config.ModulePath(config.CategoryLogging, "tint", "<name>")},
		{slogmodule.NewDefaultConfig(), config.ModulePath(config.CategoryLogging, "slog", "<name>")},
	}

	docs := make([]moduleDoc, 0, len(modules))
	for _, m := range modules {
		docs = append(docs, describeConfig(m.config, m.path))
	}
	return docs
}

func describeConfig(cfg any, path string) moduleDoc {
	t := reflect.TypeOf(cfg)
	v := reflect.ValueOf(cfg)

	doc := moduleDoc{
		Package:    t.PkgPath(),
		ConfigPath: path,
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		key := f.Tag.Get("koanf")
		switch {
		case key == "-":
			if option := f.Tag.Get("code_only"); option != "" {
				doc.CodeOnly = append(doc.CodeOnly, codeOnlyDoc{Option: option, Type: f.Type.String()})
			}
		case strings.HasPrefix(key, ","):
			// ",remain" passthrough
			doc.Fields = append(doc.Fields, fieldDoc{Key: "*", Type: f.Type.String(), EnvVar: envVarName(path, "*")})
		default:
			doc.Fields = append(doc.Fields, fieldDoc{
				Key:     key,
				Type:    f.Type.String(),
				Default: defaultValue(v.Field(i)),
				EnvVar:  envVarName(path, key),
			})
		}
	}

	return doc
}

// defaultValue formats non-zero values, zero values are left out of the docs.
func defaultValue(v reflect.Value) string {
	if !v.IsValid() || v.IsZero() {
		return ""
	}
	return fmt.Sprintf("%v", v.Interface())
}

// envVarName maps "modules.ui.defaults.<name>" and "components" to
// PROPDEFS_MODULES_UI_DEFAULTS_<NAME>_COMPONENTS.
func envVarName(path, key string) string {
	return "PROPDEFS_" + strings.ToUpper(strings.ReplaceAll(path+"."+key, ".", "_"))
}
