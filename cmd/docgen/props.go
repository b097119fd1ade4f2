package main

import (
	"github.com/Vilsol/propdefs/pkg/component"
	"github.com/Vilsol/propdefs/pkg/defaults"
	"github.com/Vilsol/propdefs/pkg/props"
	"github.com/samber/lo"
)

type propDoc struct {
	Key      string   `yaml:"key"`
	Kinds    []string `yaml:"kinds"`
	Fallback any      `yaml:"fallback"`
	Accepts  string   `yaml:"accepts,omitempty"`
}

type componentDoc struct {
	Name       string         `yaml:"name"`
	Registry   string         `yaml:"registryName"`
	Configured bool           `yaml:"configured"`
	Props      map[string]any `yaml:"props"`
	Warnings   []string       `yaml:"warnings,omitempty"`
}

func builtinPropDocs() []propDoc {
	empty := props.Scope{}

	describe := func(key string, d props.Descriptor, accepts string) propDoc {
		return propDoc{
			Key:      key,
			Kinds:    lo.Map(d.Kinds, func(k props.Kind, _ int) string { return k.String() }),
			Fallback: d.DefaultValue(empty),
			Accepts:  accepts,
		}
	}

	return []propDoc{
		describe(props.SizeKey, props.Size(), "one of small, default, large"),
		describe(props.TransferKey, props.Transfer(), ""),
		describe(props.ZIndexKey, props.ZIndex(), "greater than 0"),
	}
}

// componentDocs instantiates each named component with only the built-in props
// and reports what it would resolve to.
func componentDocs(store *defaults.Store, names []string) []componentDoc {
	host := component.NewHost(store)

	return lo.Map(names, func(name string, _ int) componentDoc {
		instance := host.Instantiate(quietContext(), component.Definition{
			Name: name,
			Props: map[string]props.Descriptor{
				props.SizeKey:     props.Size(),
				props.TransferKey: props.Transfer(),
				props.ZIndexKey:   props.ZIndex(),
			},
		}, nil)

		return componentDoc{
			Name:       name,
			Registry:   instance.Component,
			Configured: store.Has(instance.Component),
			Props:      instance.Props,
			Warnings: lo.Map(instance.Warnings, func(w component.Warning, _ int) string {
				return w.Prop + ": " + w.Reason
			}),
		}
	})
}
