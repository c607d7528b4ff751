package numeric

import (
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// ConstantOut is the output vocabulary of Constant.
type ConstantOut uint8

// ConstantValue is Constant's only output.
const ConstantValue ConstantOut = 0

func (ConstantOut) OutputPort()    {}
func (ConstantOut) String() string { return "out" }

// Constant outputs a fixed number.
type Constant struct {
	value float64
}

// NewConstant returns a node that always folds to v.
func NewConstant(v float64) *Constant {
	return &Constant{value: v}
}

func (c *Constant) Title() string { return "Numeric Constant" }

func (c *Constant) Inputs() []port.In { return nil }

func (c *Constant) Outputs() []port.Out { return []port.Out{ConstantValue} }

func (c *Constant) ResolveIn(port.In, nodeid.ID) (port.NodeIn, bool) {
	return port.NodeIn{}, false
}

func (c *Constant) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, ConstantValue)
}

func (c *Constant) Fold(_ port.Out, ev graph.Evaluator, _ meta.Metadata) (value.Value, error) {
	v, err := value.NumberOf(c.value)
	if err != nil {
		return value.Value{}, &graph.Error{Op: "fold", Node: ev.Node(), Port: ConstantValue.String(), Err: err}
	}
	return v, nil
}
