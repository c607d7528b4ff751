package graph

import (
	"slices"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
)

// Edge is one patch between an output and an input.
type Edge struct {
	From port.NodeOut
	To   port.NodeIn
}

// String renders the edge as "from -> to".
func (e Edge) String() string {
	return e.From.String() + " -> " + e.To.String()
}

// Connect patches src into dst. An input has at most one source: an existing
// patch into dst is replaced, and the old source forgets dst.
//
// Edges that would close a cycle are rejected with ErrCycleDetected.
func (g *Graph) Connect(src port.NodeOut, dst port.NodeIn) error {
	return g.locked(func() error {
		srcV, dstV, err := g.validateEdge("connect", src, dst)
		if err != nil {
			return err
		}
		if src.Node == dst.Node || g.reachable(dst.Node, src.Node) {
			return &Error{Op: "connect", Node: dst.Node, Port: dst.Port.String(), Err: ErrCycleDetected}
		}

		if old, ok := dstV.inbound[dst.Port]; ok {
			if oldV, ok := g.vertices[old.Node]; ok {
				oldV.removeTarget(old.Port, dst)
			}
		}

		dstV.inbound[dst.Port] = src
		targets, ok := srcV.outbound[src.Port]
		if !ok {
			targets = make(map[port.NodeIn]struct{})
			srcV.outbound[src.Port] = targets
		}
		targets[dst] = struct{}{}
		return nil
	})
}

// Disconnect removes the patch from src into dst. Removing an edge that does
// not exist is a no-op.
func (g *Graph) Disconnect(src port.NodeOut, dst port.NodeIn) error {
	return g.locked(func() error {
		srcV, dstV, err := g.validateEdge("disconnect", src, dst)
		if err != nil {
			return err
		}

		if cur, ok := dstV.inbound[dst.Port]; ok && cur == src {
			delete(dstV.inbound, dst.Port)
		}
		srcV.removeTarget(src.Port, dst)
		return nil
	})
}

// validateEdge checks that both endpoints exist and that each port belongs to
// its node. The caller holds the lock.
func (g *Graph) validateEdge(op string, src port.NodeOut, dst port.NodeIn) (*vertex, *vertex, error) {
	srcV, ok := g.vertices[src.Node]
	if !ok {
		return nil, nil, &Error{Op: op, Node: src.Node, Err: ErrUnknownSourceNode}
	}
	dstV, ok := g.vertices[dst.Node]
	if !ok {
		return nil, nil, &Error{Op: op, Node: dst.Node, Err: ErrUnknownTargetNode}
	}

	if src.Port == nil || !port.Comparable(src.Port) {
		return nil, nil, &Error{Op: op, Node: src.Node, Err: ErrUnknownPort}
	}
	if _, ok := srcV.handle.Out(src.Port); !ok {
		return nil, nil, &Error{Op: op, Node: src.Node, Port: src.Port.String(), Err: ErrUnknownPort}
	}
	if dst.Port == nil || !port.Comparable(dst.Port) {
		return nil, nil, &Error{Op: op, Node: dst.Node, Err: ErrUnknownPort}
	}
	if _, ok := dstV.handle.In(dst.Port); !ok {
		return nil, nil, &Error{Op: op, Node: dst.Node, Port: dst.Port.String(), Err: ErrUnknownPort}
	}
	return srcV, dstV, nil
}

// reachable reports whether to can be reached from from by following
// outbound edges. The caller holds the lock.
func (g *Graph) reachable(from, to nodeid.ID) bool {
	visited := map[nodeid.ID]bool{from: true}
	queue := []nodeid.ID{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		v, ok := g.vertices[cur]
		if !ok {
			continue
		}
		for _, targets := range v.outbound {
			for dst := range targets {
				if !visited[dst.Node] {
					visited[dst.Node] = true
					queue = append(queue, dst.Node)
				}
			}
		}
	}
	return false
}

// Source returns the output patched into dst, if any.
func (g *Graph) Source(dst port.NodeIn) (port.NodeOut, bool) {
	var (
		src   port.NodeOut
		found bool
	)
	_ = g.locked(func() error {
		if v, ok := g.vertices[dst.Node]; ok && dst.Port != nil && port.Comparable(dst.Port) {
			src, found = v.inbound[dst.Port]
		}
		return nil
	})
	return src, found
}

// Targets returns every input src feeds, sorted by their text form.
func (g *Graph) Targets(src port.NodeOut) []port.NodeIn {
	var targets []port.NodeIn
	_ = g.locked(func() error {
		v, ok := g.vertices[src.Node]
		if !ok || src.Port == nil || !port.Comparable(src.Port) {
			return nil
		}
		for dst := range v.outbound[src.Port] {
			targets = append(targets, dst)
		}
		return nil
	})
	slices.SortFunc(targets, func(a, b port.NodeIn) int {
		return strings.Compare(a.String(), b.String())
	})
	return targets
}

// Edges lists every patch in the graph, sorted by their text form.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	_ = g.locked(func() error {
		for id, v := range g.vertices {
			for in, src := range v.inbound {
				edges = append(edges, Edge{From: src, To: port.NodeIn{Node: id, Port: in}})
			}
		}
		return nil
	})
	slices.SortFunc(edges, func(a, b Edge) int {
		return strings.Compare(a.String(), b.String())
	})
	return edges
}

// upstream returns the source patched into the given input together with the
// handle of the node that owns it.
func (g *Graph) upstream(node nodeid.ID, in port.In) (port.NodeOut, NodeHandle, error) {
	var (
		src    port.NodeOut
		handle NodeHandle
	)
	err := g.locked(func() error {
		v, ok := g.vertices[node]
		if !ok {
			return &Error{Op: "resolve", Node: node, Err: ErrUnknownNode}
		}
		if in == nil || !port.Comparable(in) {
			return &Error{Op: "resolve", Node: node, Err: ErrUnknownPort}
		}
		var found bool
		src, found = v.inbound[in]
		if !found {
			return &Error{Op: "resolve", Node: node, Port: in.String(), Err: ErrNoInboundEdge}
		}
		srcV, ok := g.vertices[src.Node]
		if !ok {
			return &Error{Op: "resolve", Node: src.Node, Err: ErrUnknownNode}
		}
		handle = srcV.handle
		return nil
	})
	return src, handle, err
}
