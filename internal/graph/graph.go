package graph

import (
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
)

// DefaultBoundaryNames are the graph-level inputs and outputs declared when
// no option overrides them.
var DefaultBoundaryNames = []string{"numeric", "text"}

// vertex is the graph's storage unit for one node. It is un-exported so that
// edges are only ever mutated through the Graph's API.
type vertex struct {
	handle NodeHandle
	// inbound maps each patched input to its single source.
	inbound map[port.In]port.NodeOut
	// outbound maps each patched output to the set of inputs it feeds.
	outbound map[port.Out]map[port.NodeIn]struct{}
}

func newVertex(handle NodeHandle) *vertex {
	return &vertex{
		handle:   handle,
		inbound:  make(map[port.In]port.NodeOut),
		outbound: make(map[port.Out]map[port.NodeIn]struct{}),
	}
}

// Graph owns all vertices and the edges between them. All operations are
// safe for concurrent use.
type Graph struct {
	// mu guards every field below.
	mu sync.Mutex
	// poisoned is set when a panic escapes while mu is held.
	poisoned bool
	vertices map[nodeid.ID]*vertex

	inputNames  []string
	outputNames []string
}

// Option configures a Graph at construction.
type Option func(g *Graph)

// WithInputs declares the names of the graph's external inputs.
func WithInputs(names ...string) Option {
	return func(g *Graph) { g.inputNames = dedupe(names) }
}

// WithOutputs declares the names of the graph's outputs.
func WithOutputs(names ...string) Option {
	return func(g *Graph) { g.outputNames = dedupe(names) }
}

// New returns a graph holding only its two boundary nodes.
func New(opts ...Option) *Graph {
	g := &Graph{
		vertices:    make(map[nodeid.ID]*vertex, 2),
		inputNames:  DefaultBoundaryNames,
		outputNames: DefaultBoundaryNames,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.vertices[nodeid.GraphInput] = newVertex(NodeHandle{
		id:   nodeid.GraphInput,
		node: &graphInput{names: g.inputNames},
	})
	g.vertices[nodeid.GraphOutput] = newVertex(NodeHandle{
		id:   nodeid.GraphOutput,
		node: &graphOutput{names: g.outputNames},
	})
	return g
}

// InputNames returns the declared external input names.
func (g *Graph) InputNames() []string {
	return slices.Clone(g.inputNames)
}

// OutputNames returns the declared output names.
func (g *Graph) OutputNames() []string {
	return slices.Clone(g.outputNames)
}

// locked runs fn while holding the graph's mutex. A panic inside fn marks the
// graph corrupted before it propagates.
func (g *Graph) locked(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.poisoned {
		return ErrGraphCorrupted
	}
	defer func() {
		if r := recover(); r != nil {
			g.poisoned = true
			panic(r)
		}
	}()
	return fn()
}

// mustLocked is locked for operations that cannot report errors.
func (g *Graph) mustLocked(fn func()) {
	err := g.locked(func() error {
		fn()
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// Insert adds node under a fresh random identity and returns its handle.
//
// It panics if node is nil or the graph is corrupted.
func (g *Graph) Insert(node Node) NodeHandle {
	if node == nil {
		panic(ErrInvalidNode)
	}

	var handle NodeHandle
	g.mustLocked(func() {
		id := nodeid.NewRandom()
		for g.vertices[id] != nil {
			id = nodeid.NewRandom()
		}
		handle = NodeHandle{id: id, node: node}
		g.vertices[id] = newVertex(handle)
	})
	return handle
}

// InsertWithID adds node under id. If id is already taken, the previous node
// and every edge referencing it are dropped; handles to it become stale.
func (g *Graph) InsertWithID(node Node, id nodeid.ID) (NodeHandle, error) {
	if node == nil || !id.IsValid() {
		return NodeHandle{}, &Error{Op: "insert", Node: id, Err: ErrInvalidNode}
	}
	if id.IsBoundary() {
		return NodeHandle{}, &Error{Op: "insert", Node: id, Err: ErrProtectedNode}
	}

	handle := NodeHandle{id: id, node: node}
	err := g.locked(func() error {
		if _, exists := g.vertices[id]; exists {
			g.detach(id)
		}
		g.vertices[id] = newVertex(handle)
		return nil
	})
	if err != nil {
		return NodeHandle{}, err
	}
	return handle, nil
}

// Remove deletes a node and every edge that mentions it.
func (g *Graph) Remove(id nodeid.ID) error {
	if id.IsBoundary() {
		return &Error{Op: "remove", Node: id, Err: ErrProtectedNode}
	}

	return g.locked(func() error {
		if _, ok := g.vertices[id]; !ok {
			return &Error{Op: "remove", Node: id, Err: ErrUnknownNode}
		}
		g.detach(id)
		delete(g.vertices, id)
		return nil
	})
}

// detach drops every edge touching id from its neighbours and from id
// itself. The caller holds the lock.
func (g *Graph) detach(id nodeid.ID) {
	v := g.vertices[id]

	for in, src := range v.inbound {
		if srcV, ok := g.vertices[src.Node]; ok {
			srcV.removeTarget(src.Port, port.NodeIn{Node: id, Port: in})
		}
	}
	for _, targets := range v.outbound {
		for dst := range targets {
			if dstV, ok := g.vertices[dst.Node]; ok {
				delete(dstV.inbound, dst.Port)
			}
		}
	}

	clear(v.inbound)
	clear(v.outbound)
}

func (v *vertex) removeTarget(out port.Out, dst port.NodeIn) {
	targets, ok := v.outbound[out]
	if !ok {
		return
	}
	delete(targets, dst)
	if len(targets) == 0 {
		delete(v.outbound, out)
	}
}

// Contains reports whether a node with the given id exists.
func (g *Graph) Contains(id nodeid.ID) bool {
	found := false
	_ = g.locked(func() error {
		_, found = g.vertices[id]
		return nil
	})
	return found
}

// Handle returns the handle for id, if present.
func (g *Graph) Handle(id nodeid.ID) (NodeHandle, bool) {
	handle, err := g.lookup(id)
	return handle, err == nil
}

// lookup is Handle for callers that must tell a missing node from a
// corrupted graph.
func (g *Graph) lookup(id nodeid.ID) (NodeHandle, error) {
	var handle NodeHandle
	err := g.locked(func() error {
		v, ok := g.vertices[id]
		if !ok {
			return ErrUnknownNode
		}
		handle = v.handle
		return nil
	})
	return handle, err
}

// InputHandle returns the GraphInput boundary node. It panics only if the
// graph is corrupted.
func (g *Graph) InputHandle() NodeHandle {
	return g.boundary(nodeid.GraphInput)
}

// OutputHandle returns the GraphOutput boundary node. It panics only if the
// graph is corrupted.
func (g *Graph) OutputHandle() NodeHandle {
	return g.boundary(nodeid.GraphOutput)
}

func (g *Graph) boundary(id nodeid.ID) NodeHandle {
	var handle NodeHandle
	g.mustLocked(func() {
		v, ok := g.vertices[id]
		if !ok {
			panic(fmt.Sprintf("graph: a graph must always have its %s node", id))
		}
		handle = v.handle
	})
	return handle
}

// Len returns the number of nodes, boundaries included.
func (g *Graph) Len() int {
	n := 0
	_ = g.locked(func() error {
		n = len(g.vertices)
		return nil
	})
	return n
}

// Nodes returns every node handle, ordered by id for stable output.
func (g *Graph) Nodes() []NodeHandle {
	var handles []NodeHandle
	_ = g.locked(func() error {
		handles = make([]NodeHandle, 0, len(g.vertices))
		for _, v := range g.vertices {
			handles = append(handles, v.handle)
		}
		return nil
	})
	slices.SortFunc(handles, func(a, b NodeHandle) int {
		return compareIDs(a.id, b.id)
	})
	return handles
}

func compareIDs(a, b nodeid.ID) int {
	if a.Kind() != b.Kind() {
		return int(a.Kind()) - int(b.Kind())
	}
	switch {
	case a.Hash() < b.Hash():
		return -1
	case a.Hash() > b.Hash():
		return 1
	default:
		return 0
	}
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
