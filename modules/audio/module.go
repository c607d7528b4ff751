// Package audio provides control-rate signal generators driven by the
// evaluation tick.
package audio

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// LFOConfig is the patch file configuration of an "lfo" node.
type LFOConfig struct {
	Frequency float64  `cty:"frequency"`
	Phase     *float64 `cty:"phase"`
	Shape     *string  `cty:"shape"`
}

// OscConfig is the patch file configuration of an "osc" node.
type OscConfig struct {
	Rate *float64 `cty:"rate"`
}

// Register registers the package's node kinds.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Kind{
		Name:        "lfo",
		Description: "Low frequency ramp or sine driven by the tick.",
		NewConfig:   func() any { return new(LFOConfig) },
		New: func(cfg any) (graph.Node, error) {
			c := cfg.(*LFOConfig)
			shape := Ramp
			if c.Shape != nil {
				var err error
				if shape, err = ParseShape(*c.Shape); err != nil {
					return nil, err
				}
			}
			var phase float64
			if c.Phase != nil {
				phase = *c.Phase
			}
			return NewLFO(c.Frequency, phase, shape), nil
		},
	})
	r.Register(&registry.Kind{
		Name:        "osc",
		Description: "Sine oscillator with 'frequency' and 'amplitude' inputs.",
		NewConfig:   func() any { return new(OscConfig) },
		New: func(cfg any) (graph.Node, error) {
			rate := DefaultRate
			if c := cfg.(*OscConfig); c.Rate != nil {
				rate = *c.Rate
			}
			return NewOsc(rate)
		},
	})
}
