// Package numeric provides number-valued node kinds: constants and binary
// arithmetic.
package numeric

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ConstantConfig is the patch file configuration of a "number" node.
type ConstantConfig struct {
	Value float64 `cty:"value"`
}

// ArithmeticConfig is the patch file configuration of an "arithmetic" node.
type ArithmeticConfig struct {
	Operation *string `cty:"operation"`
}

// Register registers the package's node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "number",
		Description: "Outputs a fixed number on 'out'.",
		NewConfig:   func() any { return new(ConstantConfig) },
		New: func(cfg any) (graph.Node, error) {
			return NewConstant(cfg.(*ConstantConfig).Value), nil
		},
	})
	r.Register(&registry.Kind{
		Name:        "arithmetic",
		Description: "Combines 'term1' and 'term2' with add, subtract, multiply or divide.",
		NewConfig:   func() any { return new(ArithmeticConfig) },
		New: func(cfg any) (graph.Node, error) {
			op := Add
			if c := cfg.(*ArithmeticConfig); c.Operation != nil {
				var err error
				if op, err = ParseOperation(*c.Operation); err != nil {
					return nil, err
				}
			}
			return NewArithmetic(op), nil
		},
	})
}
