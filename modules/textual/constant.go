package textual

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

// Constant outputs a fixed string.
type Constant struct {
	value string
}

// NewConstant returns a node that always folds to s.
func NewConstant(s string) *Constant {
	return &Constant{value: s}
}

func (c *Constant) Title() string { return "Text Constant" }

func (c *Constant) Inputs() []port.In { return nil }

func (c *Constant) Outputs() []port.Out { return []port.Out{ConstantValue} }

func (c *Constant) ResolveIn(port.In, nodeid.ID) (port.NodeIn, bool) {
	return port.NodeIn{}, false
}

func (c *Constant) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, ConstantValue)
}

func (c *Constant) Fold(port.Out, graph.Evaluator, meta.Metadata) (value.Value, error) {
	return value.Text(c.value), nil
}
