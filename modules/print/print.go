package print

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// In is the input vocabulary of Print.
type In uint8

// Value is Print's only input.
const Value In = 0

func (In) InputPort()     {}
func (In) String() string { return "in" }

// Out is the output vocabulary of Print.
type Out uint8

// Passthrough is Print's only output.
const Passthrough Out = 0

func (Out) OutputPort()    {}
func (Out) String() string { return "out" }

// Print forwards its input unchanged and logs it at Info level through the
// evaluator's logger. It is only logged when something downstream demands it.
type Print struct {
	label string
}

// New returns a Print node. label is attached to every log record.
func New(label string) *Print {
	return &Print{label: label}
}

func (p *Print) Title() string { return "Print" }

func (p *Print) Inputs() []port.In { return []port.In{Value} }

func (p *Print) Outputs() []port.Out { return []port.Out{Passthrough} }

func (p *Print) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	return port.ResolveIn(in, node, Value)
}

func (p *Print) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, Passthrough)
}

func (p *Print) Fold(_ port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	v, err := ev.ResolveInput(Value, md)
	if err != nil {
		return value.Value{}, err
	}
	ev.Logger().Info("Printing value.", "label", p.label, "node", ev.Node().Short(), "tick", md.Tick, "value", v.String())
	return v, nil
}
