package textual

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// ConcatIn is the input vocabulary of Concat.
type ConcatIn uint8

const (
	ConcatA ConcatIn = iota
	ConcatB
)

func (ConcatIn) InputPort() {}

func (p ConcatIn) String() string {
	switch p {
	case ConcatA:
		return "a"
	case ConcatB:
		return "b"
	}
	return fmt.Sprintf("ConcatIn(%d)", uint8(p))
}

// TextOut is the output vocabulary shared by Concat and Trim.
type TextOut uint8

// TextResult is the only output of Concat and Trim.
const TextResult TextOut = 0

func (TextOut) OutputPort()    {}
func (TextOut) String() string { return "out" }

// Concat joins two strings.
type Concat struct {
	sep string
}

// NewConcat returns a node folding to a + sep + b.
func NewConcat(sep string) *Concat {
	return &Concat{sep: sep}
}

func (c *Concat) Title() string { return "Text Concat" }

func (c *Concat) Inputs() []port.In { return []port.In{ConcatA, ConcatB} }

func (c *Concat) Outputs() []port.Out { return []port.Out{TextResult} }

func (c *Concat) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	p, ok := in.(ConcatIn)
	if !ok || p > ConcatB {
		return port.NodeIn{}, false
	}
	return port.NodeIn{Node: node, Port: p}, true
}

func (c *Concat) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, TextResult)
}

func (c *Concat) Fold(_ port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	a, err := ev.ResolveText(ConcatA, md)
	if err != nil {
		return value.Value{}, err
	}
	b, err := ev.ResolveText(ConcatB, md)
	if err != nil {
		return value.Value{}, err
	}
	return value.Text(a + c.sep + b), nil
}

// TrimIn is the input vocabulary of Trim.
type TrimIn uint8

// TrimText is Trim's only input.
const TrimText TrimIn = 0

func (TrimIn) InputPort()     {}
func (TrimIn) String() string { return "text" }

// Trim strips surrounding white space.
type Trim struct{}

// NewTrim returns a Trim node.
func NewTrim() *Trim {
	return &Trim{}
}

func (t *Trim) Title() string { return "Trim Text" }

func (t *Trim) Inputs() []port.In { return []port.In{TrimText} }

func (t *Trim) Outputs() []port.Out { return []port.Out{TextResult} }

func (t *Trim) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	return port.ResolveIn(in, node, TrimText)
}

func (t *Trim) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, TextResult)
}

func (t *Trim) Fold(_ port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	s, err := ev.ResolveText(TrimText, md)
	if err != nil {
		return value.Value{}, err
	}
	return value.Text(strings.TrimSpace(s)), nil
}
