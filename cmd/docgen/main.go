// docgen prints a YAML reference of module configuration keys, the built-in
// component props and, given a config file, the effective defaults of components.
//
//	docgen --config propdefs.yaml --component Modal --component DatePicker
package main

import (
	"fmt"
	"os"

	"github.com/Vilsol/propdefs/pkg/config"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

type output struct {
	Modules    []moduleDoc    `yaml:"modules"`
	Props      []propDoc      `yaml:"props"`
	Components []componentDoc `yaml:"components,omitempty"`
}

func main() {
	flags := pflag.NewFlagSet("docgen", pflag.ExitOnError)
	configPath := flags.String("config", "", "config file to resolve component defaults from")
	instance := flags.String("instance", config.DefaultInstanceName, "defaults module instance name")
	components := flags.StringArray("component", nil, "component to resolve (repeatable)")
	_ = flags.Parse(os.Args[1:])

	store, err := loadStore(*configPath, *instance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	out := output{
		Modules:    moduleDocs(),
		Props:      builtinPropDocs(),
		Components: componentDocs(store, *components),
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode yaml: %v\n", err)
		os.Exit(1)
	}
}

func loadStore(path, instance string) (*defaults.Store, error) {
	m := defaults.NewModule(defaults.WithName(instance))
	if path == "" {
		return m.Store(), nil
	}

	k := koanf.New(".")
	if err := config.LoadFile(k, path); err != nil {
		return nil, err
	}

	if err := m.LoadConfig(k); err != nil {
		return nil, err
	}

	return m.Store(), nil
}
