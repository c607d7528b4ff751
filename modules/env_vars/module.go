// Package env_vars provides a node that reads a process environment variable.
package env_vars

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the patch file configuration of an "env" node.
type Config struct {
	Name    string  `cty:"name"`
	Default *string `cty:"default"`
}

// Register registers the package's node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "env",
		Description: "Outputs the environment variable 'name' as text, or 'default' when unset.",
		NewConfig:   func() any { return new(Config) },
		New: func(cfg any) (graph.Node, error) {
			c := cfg.(*Config)
			return NewVariable(c.Name, c.Default)
		},
	})
}
