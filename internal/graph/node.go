package graph

import (
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// Node is the contract every computation unit implements.
//
// Nodes are graph-agnostic until inserted: constructing one never requires a
// Graph. Within Fold a node may read its inputs through the Evaluator but must
// never mutate the graph's topology.
type Node interface {
	// Title is a human-readable label for diagnostics. It is never an identity.
	Title() string

	// Inputs lists the node's declared input ports.
	Inputs() []port.In

	// Outputs lists the node's declared output ports.
	Outputs() []port.Out

	// ResolveIn ties in to node if, and only if, in belongs to this node
	// kind's own input vocabulary.
	ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool)

	// ResolveOut ties out to node if, and only if, out belongs to this node
	// kind's own output vocabulary.
	ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool)

	// Fold computes the requested output. It must resolve only the inputs that
	// output depends on, and must fail with a typed error rather than
	// substitute a default when a required input is missing or mistyped.
	Fold(out port.Out, ev Evaluator, md meta.Metadata) (value.Value, error)
}

// NodeHandle is a shared view onto a node instance inserted in a graph. It
// never exposes the vertex's edges; those are reachable only through Graph.
type NodeHandle struct {
	id   nodeid.ID
	node Node
}

// ID returns the node's identity within its graph.
func (h NodeHandle) ID() nodeid.ID {
	return h.id
}

// Node returns the node instance.
func (h NodeHandle) Node() Node {
	return h.node
}

// Title returns the node's title, or an empty string for the zero handle.
func (h NodeHandle) Title() string {
	if h.node == nil {
		return ""
	}
	return h.node.Title()
}

// In ties in to this node if the node accepts it.
func (h NodeHandle) In(in port.In) (port.NodeIn, bool) {
	if h.node == nil || in == nil {
		return port.NodeIn{}, false
	}
	return h.node.ResolveIn(in, h.id)
}

// Out ties out to this node if the node accepts it.
func (h NodeHandle) Out(out port.Out) (port.NodeOut, bool) {
	if h.node == nil || out == nil {
		return port.NodeOut{}, false
	}
	return h.node.ResolveOut(out, h.id)
}

// InputNamed looks an input up by its name. It never guesses: a name the
// node kind does not declare yields false.
func (h NodeHandle) InputNamed(name string) (port.NodeIn, bool) {
	if h.node == nil {
		return port.NodeIn{}, false
	}
	in, ok := port.FindIn(h.node.Inputs(), name)
	if !ok {
		return port.NodeIn{}, false
	}
	return h.In(in)
}

// OutputNamed looks an output up by its name.
func (h NodeHandle) OutputNamed(name string) (port.NodeOut, bool) {
	if h.node == nil {
		return port.NodeOut{}, false
	}
	out, ok := port.FindOut(h.node.Outputs(), name)
	if !ok {
		return port.NodeOut{}, false
	}
	return h.Out(out)
}

// LookupIn resolves an input of node by name.
func LookupIn(node Node, id nodeid.ID, name string) (port.NodeIn, bool) {
	return NodeHandle{id: id, node: node}.InputNamed(name)
}

// LookupOut resolves an output of node by name.
func LookupOut(node Node, id nodeid.ID, name string) (port.NodeOut, bool) {
	return NodeHandle{id: id, node: node}.OutputNamed(name)
}
