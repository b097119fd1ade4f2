package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/logging/tint"
	"github.com/samber/lo"
)

func TestEnvVarName(t *testing.T) {
	t.Parallel()

	testza.AssertEqual(t,
		"PROPDEFS_MODULES_UI_DEFAULTS_DEFAULT_COMPONENTS",
		envVarName("modules.ui.defaults.default", "components"),
	)
}

func TestDescribeConfig_SplitsCodeOnlyFields(t *testing.T) {
	t.Parallel()

	doc := describeConfig(tint.NewDefaultConfig(), "modules.logging.tint.<name>")

	level, ok := lo.Find(doc.Fields, func(f fieldDoc) bool { return f.Key == "level" })
	testza.AssertTrue(t, ok)
	testza.AssertEqual(t, "info", level.Default)
	testza.AssertEqual(t, "string", level.Type)

	testza.AssertLen(t, doc.CodeOnly, 1)
	testza.AssertEqual(t, "WithWriter", doc.CodeOnly[0].Option)
}

func TestBuiltinPropDocs(t *testing.T) {
	t.Parallel()

	docs := builtinPropDocs()
	testza.AssertLen(t, docs, 3)
	testza.AssertEqual(t, "default", docs[0].Fallback)
	testza.AssertEqual(t, false, docs[1].Fallback)
	testza.AssertEqual(t, []string{"bool", "string"}, docs[1].Kinds)
	testza.AssertEqual(t, 2000, docs[2].Fallback)
}

func TestComponentDocs_FromConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "propdefs.yaml")
	testza.AssertNil(t, os.WriteFile(path, []byte(`
modules:
  ui:
    defaults:
      default:
        components:
          defaults:
            zIndex: 3000
          modal:
            size: large
          drawer:
            size: huge
`), 0o600))

	store, err := loadStore(path, "default")
	testza.AssertNil(t, err)

	docs := componentDocs(store, []string{"Modal", "Drawer", "Tooltip"})
	testza.AssertLen(t, docs, 3)

	testza.AssertEqual(t, "modal", docs[0].Registry)
	testza.AssertTrue(t, docs[0].Configured)
	testza.AssertEqual(t, "large", docs[0].Props["size"])
	testza.AssertEqual(t, 3000, docs[0].Props["zIndex"])

	testza.AssertLen(t, docs[1].Warnings, 1)

	testza.AssertFalse(t, docs[2].Configured)
	testza.AssertEqual(t, "default", docs[2].Props["size"])
}

func TestLoadStore_WithoutConfig(t *testing.T) {
	t.Parallel()

	store, err := loadStore("", "default")
	testza.AssertNil(t, err)
	testza.AssertLen(t, store.Components(), 0)
	testza.AssertNil(t, store.Get(defaults.GlobalBucket, "size"))
}
