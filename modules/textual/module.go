// Package textual provides text-valued node kinds.
package textual

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ConstantConfig is the patch file configuration of a "text" node.
type ConstantConfig struct {
	Value string `cty:"value"`
}

// ConcatConfig is the patch file configuration of a "text_concat" node.
type ConcatConfig struct {
	Separator *string `cty:"separator"`
}

// Register registers the package's node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "text",
		Description: "Outputs a fixed string on 'out'.",
		NewConfig:   func() any { return new(ConstantConfig) },
		New: func(cfg any) (graph.Node, error) {
			return NewConstant(cfg.(*ConstantConfig).Value), nil
		},
	})
	r.Register(&registry.Kind{
		Name:        "text_split",
		Description: "Splits 'text' at character index 'at' into 'start' and 'end'.",
		New:         func(any) (graph.Node, error) { return NewSplit(), nil },
	})
	r.Register(&registry.Kind{
		Name:        "text_concat",
		Description: "Joins 'a' and 'b', optionally with a separator.",
		NewConfig:   func() any { return new(ConcatConfig) },
		New: func(cfg any) (graph.Node, error) {
			var sep string
			if c := cfg.(*ConcatConfig); c.Separator != nil {
				sep = *c.Separator
			}
			return NewConcat(sep), nil
		},
	})
	r.Register(&registry.Kind{
		Name:        "text_trim",
		Description: "Strips leading and trailing white space from 'text'.",
		New:         func(any) (graph.Node, error) { return NewTrim(), nil },
	})
}
