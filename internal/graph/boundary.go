package graph

import (
	"slices"

	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// SinkIn is a named input of the GraphOutput node.
type SinkIn string

func (SinkIn) InputPort()       {}
func (p SinkIn) String() string { return string(p) }

// SinkOut is a named output of the GraphOutput node. Folding SinkOut(n)
// passes through whatever is patched into SinkIn(n).
type SinkOut string

func (SinkOut) OutputPort()      {}
func (p SinkOut) String() string { return string(p) }

// SourceOut is a named output of the GraphInput node. It yields the external
// value supplied under the same name.
type SourceOut string

func (SourceOut) OutputPort()      {}
func (p SourceOut) String() string { return string(p) }

type graphOutput struct {
	names []string
}

func (n *graphOutput) Title() string { return "Graph Output" }

func (n *graphOutput) Inputs() []port.In {
	ins := make([]port.In, len(n.names))
	for i, name := range n.names {
		ins[i] = SinkIn(name)
	}
	return ins
}

func (n *graphOutput) Outputs() []port.Out {
	outs := make([]port.Out, len(n.names))
	for i, name := range n.names {
		outs[i] = SinkOut(name)
	}
	return outs
}

func (n *graphOutput) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	ref, ok := port.ResolveIn[SinkIn](in, node)
	if !ok || !slices.Contains(n.names, in.String()) {
		return port.NodeIn{}, false
	}
	return ref, true
}

func (n *graphOutput) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	ref, ok := port.ResolveOut[SinkOut](out, node)
	if !ok || !slices.Contains(n.names, out.String()) {
		return port.NodeOut{}, false
	}
	return ref, true
}

func (n *graphOutput) Fold(out port.Out, ev Evaluator, md meta.Metadata) (value.Value, error) {
	sink, ok := out.(SinkOut)
	if !ok || !slices.Contains(n.names, string(sink)) {
		return value.Value{}, &Error{Op: "fold", Node: nodeid.GraphOutput, Port: portName(out), Err: ErrUnknownPort}
	}
	return ev.ResolveInput(SinkIn(sink), md)
}

type graphInput struct {
	names []string
}

func (n *graphInput) Title() string { return "Graph Input" }

func (n *graphInput) Inputs() []port.In { return nil }

func (n *graphInput) Outputs() []port.Out {
	outs := make([]port.Out, len(n.names))
	for i, name := range n.names {
		outs[i] = SourceOut(name)
	}
	return outs
}

func (n *graphInput) ResolveIn(port.In, nodeid.ID) (port.NodeIn, bool) {
	return port.NodeIn{}, false
}

func (n *graphInput) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	ref, ok := port.ResolveOut[SourceOut](out, node)
	if !ok || !slices.Contains(n.names, out.String()) {
		return port.NodeOut{}, false
	}
	return ref, true
}

func (n *graphInput) Fold(out port.Out, ev Evaluator, md meta.Metadata) (value.Value, error) {
	src, ok := out.(SourceOut)
	if !ok || !slices.Contains(n.names, string(src)) {
		return value.Value{}, &Error{Op: "fold", Node: nodeid.GraphInput, Port: portName(out), Err: ErrUnknownPort}
	}
	return ev.ResolveBoundary(string(src), md)
}
