package audio

import (
	"fmt"
	"math"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// Shape is the waveform of an LFO.
type Shape uint8

const (
	// Ramp grows linearly: tick*frequency + phase.
	Ramp Shape = iota
	// Sine is sin(2π(tick*frequency + phase)).
	Sine
)

func (s Shape) String() string {
	switch s {
	case Ramp:
		return "ramp"
	case Sine:
		return "sine"
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ParseShape converts a shape name, case-insensitively.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(s) {
	case "ramp":
		return Ramp, nil
	case "sine":
		return Sine, nil
	}
	return 0, fmt.Errorf("invalid shape %q: must be one of ramp, sine", s)
}

// SignalOut is the output vocabulary of LFO and Osc.
type SignalOut uint8

// Signal is the only output of LFO and Osc.
const Signal SignalOut = 0

func (SignalOut) OutputPort()    {}
func (SignalOut) String() string { return "out" }

// LFO has no inputs; its value is a function of the tick alone. At Lowest
// quality it stops animating and holds its tick 0 value.
type LFO struct {
	frequency float64
	phase     float64
	shape     Shape
}

// NewLFO returns an LFO node.
func NewLFO(frequency, phase float64, shape Shape) *LFO {
	return &LFO{frequency: frequency, phase: phase, shape: shape}
}

func (l *LFO) Title() string { return "LFO" }

func (l *LFO) Inputs() []port.In { return nil }

func (l *LFO) Outputs() []port.Out { return []port.Out{Signal} }

func (l *LFO) ResolveIn(port.In, nodeid.ID) (port.NodeIn, bool) {
	return port.NodeIn{}, false
}

func (l *LFO) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, Signal)
}

func (l *LFO) Fold(_ port.Out, _ graph.Evaluator, md meta.Metadata) (value.Value, error) {
	tick := float64(md.Tick)
	if md.Quality == meta.Lowest {
		tick = 0
	}

	x := tick*l.frequency + l.phase
	if l.shape == Sine {
		x = math.Sin(2 * math.Pi * x)
	}
	return value.NumberOf(x)
}
