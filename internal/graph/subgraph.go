package graph

import (
	"slices"

	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// SubgraphIn is an input of a Subgraph node. It carries the name of the
// child graph's external input it feeds.
type SubgraphIn string

func (SubgraphIn) InputPort()       {}
func (p SubgraphIn) String() string { return string(p) }

// SubgraphOut is an output of a Subgraph node, named after the child graph
// output it exposes.
type SubgraphOut string

func (SubgraphOut) OutputPort()      {}
func (p SubgraphOut) String() string { return string(p) }

// Subgraph is a node that owns a private child graph. Folding one of its
// outputs folds the like-named output of the child's GraphOutput. The
// child's GraphInput reads from whatever is patched into the Subgraph's
// inputs in the enclosing graph.
type Subgraph struct {
	title string
	graph *Graph
}

// NewSubgraph wraps child as a node.
func NewSubgraph(title string, child *Graph) *Subgraph {
	if child == nil {
		child = New()
	}
	return &Subgraph{title: title, graph: child}
}

// Graph returns the child graph for editing.
func (s *Subgraph) Graph() *Graph {
	return s.graph
}

func (s *Subgraph) Title() string {
	if s.title == "" {
		return "Subgraph"
	}
	return s.title
}

func (s *Subgraph) Inputs() []port.In {
	names := s.graph.InputNames()
	ins := make([]port.In, len(names))
	for i, name := range names {
		ins[i] = SubgraphIn(name)
	}
	return ins
}

func (s *Subgraph) Outputs() []port.Out {
	names := s.graph.OutputNames()
	outs := make([]port.Out, len(names))
	for i, name := range names {
		outs[i] = SubgraphOut(name)
	}
	return outs
}

func (s *Subgraph) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	ref, ok := port.ResolveIn[SubgraphIn](in, node)
	if !ok || !slices.Contains(s.graph.inputNames, in.String()) {
		return port.NodeIn{}, false
	}
	return ref, true
}

func (s *Subgraph) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	ref, ok := port.ResolveOut[SubgraphOut](out, node)
	if !ok || !slices.Contains(s.graph.outputNames, out.String()) {
		return port.NodeOut{}, false
	}
	return ref, true
}

func (s *Subgraph) Fold(out port.Out, ev Evaluator, md meta.Metadata) (value.Value, error) {
	name, ok := out.(SubgraphOut)
	if !ok {
		return value.Value{}, &Error{Op: "fold", Node: ev.Node(), Port: portName(out), Err: ErrUnknownPort}
	}

	inner := NewEvaluator(nodeid.GraphOutput, s.graph).
		WithSource(subgraphSource{outer: ev}).
		WithLogger(ev.Logger())
	return inner.FoldNamed(string(name), md)
}

// subgraphSource feeds a child graph's GraphInput from the Subgraph node's
// own inputs in the enclosing graph.
type subgraphSource struct {
	outer Evaluator
}

func (s subgraphSource) Resolve(name string, md meta.Metadata) (value.Value, error) {
	return s.outer.ResolveInput(SubgraphIn(name), md)
}
