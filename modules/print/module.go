// Package print provides a passthrough node that logs every value it folds.
package print

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the patch file configuration of a "print" node.
type Config struct {
	Label *string `cty:"label"`
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "print",
		Description: "Passes 'in' through to 'out', logging each value.",
		NewConfig:   func() any { return new(Config) },
		New: func(cfg any) (graph.Node, error) {
			var label string
			if c := cfg.(*Config); c.Label != nil {
				label = *c.Label
			}
			return New(label), nil
		},
	})
}
