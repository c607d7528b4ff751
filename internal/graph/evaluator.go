package graph

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// Source supplies the values handed out by a graph's GraphInput node.
type Source interface {
	Resolve(name string, md meta.Metadata) (value.Value, error)
}

// Inputs is a fixed set of external input values keyed by name.
type Inputs map[string]value.Value

// Resolve implements Source.
func (in Inputs) Resolve(name string, _ meta.Metadata) (value.Value, error) {
	v, ok := in[name]
	if !ok {
		return value.Value{}, &Error{Op: "resolve", Node: nodeid.GraphInput, Port: name, Err: ErrNoInboundEdge}
	}
	return v, nil
}

// Evaluator is a cursor bound to one node in one graph. It is a small value:
// creating one per recursion step is the expected usage.
type Evaluator struct {
	node     nodeid.ID
	graph    *Graph
	boundary Source
	logger   *slog.Logger
}

// NewEvaluator binds an evaluator to node in g.
func NewEvaluator(node nodeid.ID, g *Graph) Evaluator {
	return Evaluator{
		node:   node,
		graph:  g,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithSource returns a copy whose GraphInput values come from src.
func (ev Evaluator) WithSource(src Source) Evaluator {
	ev.boundary = src
	return ev
}

// WithLogger returns a copy that logs each resolution step to logger.
func (ev Evaluator) WithLogger(logger *slog.Logger) Evaluator {
	if logger != nil {
		ev.logger = logger
	}
	return ev
}

// Node returns the id the evaluator is bound to.
func (ev Evaluator) Node() nodeid.ID { return ev.node }

// Graph returns the graph the evaluator reads from.
func (ev Evaluator) Graph() *Graph { return ev.graph }

// Logger returns the evaluator's logger.
func (ev Evaluator) Logger() *slog.Logger { return ev.logger }

// bind returns a copy bound to another node of the same graph.
func (ev Evaluator) bind(node nodeid.ID) Evaluator {
	ev.node = node
	return ev
}

// ResolveInput produces the value arriving at the bound node's input in. The
// upstream node is folded on demand for exactly the output patched into in.
//
// The graph lock is held only while the edge is looked up.
func (ev Evaluator) ResolveInput(in port.In, md meta.Metadata) (value.Value, error) {
	src, handle, err := ev.graph.upstream(ev.node, in)
	if err != nil {
		return value.Value{}, err
	}

	ev.logger.Debug("Resolving input.",
		"node", ev.node.Short(),
		"input", in.String(),
		"source", src.String(),
		"source_title", handle.Title(),
		"tick", md.Tick,
	)
	return handle.Node().Fold(src.Port, ev.bind(src.Node), md)
}

// ResolveNumber resolves in and requires a numeric value.
func (ev Evaluator) ResolveNumber(in port.In, md meta.Metadata) (float64, error) {
	v, err := ev.ResolveInput(in, md)
	if err != nil {
		return 0, err
	}
	n, err := v.AsNumber()
	if err != nil {
		return 0, &Error{Op: "resolve", Node: ev.node, Port: in.String(), Err: err}
	}
	return n, nil
}

// ResolveText resolves in and requires a text value.
func (ev Evaluator) ResolveText(in port.In, md meta.Metadata) (string, error) {
	v, err := ev.ResolveInput(in, md)
	if err != nil {
		return "", err
	}
	s, err := v.AsText()
	if err != nil {
		return "", &Error{Op: "resolve", Node: ev.node, Port: in.String(), Err: err}
	}
	return s, nil
}

// ResolveBool resolves in and requires a boolean value.
func (ev Evaluator) ResolveBool(in port.In, md meta.Metadata) (bool, error) {
	v, err := ev.ResolveInput(in, md)
	if err != nil {
		return false, err
	}
	b, err := v.AsBool()
	if err != nil {
		return false, &Error{Op: "resolve", Node: ev.node, Port: in.String(), Err: err}
	}
	return b, nil
}

// ResolveBoundary asks the evaluator's Source for the named external input.
func (ev Evaluator) ResolveBoundary(name string, md meta.Metadata) (value.Value, error) {
	if ev.boundary == nil {
		return value.Value{}, &Error{Op: "resolve", Node: nodeid.GraphInput, Port: name, Err: ErrNoInboundEdge}
	}
	return ev.boundary.Resolve(name, md)
}

// Fold folds out on the bound node.
func (ev Evaluator) Fold(out port.Out, md meta.Metadata) (value.Value, error) {
	handle, err := ev.graph.lookup(ev.node)
	if err != nil {
		return value.Value{}, &Error{Op: "fold", Node: ev.node, Err: err}
	}
	if _, ok := handle.Out(out); !ok {
		return value.Value{}, &Error{Op: "fold", Node: ev.node, Port: portName(out), Err: ErrUnknownPort}
	}
	return handle.Node().Fold(out, ev, md)
}

// FoldNamed folds the bound node's output called name.
func (ev Evaluator) FoldNamed(name string, md meta.Metadata) (value.Value, error) {
	handle, err := ev.graph.lookup(ev.node)
	if err != nil {
		return value.Value{}, &Error{Op: "fold", Node: ev.node, Err: err}
	}
	ref, ok := handle.OutputNamed(name)
	if !ok {
		return value.Value{}, &Error{Op: "fold", Node: ev.node, Port: name, Err: ErrUnknownPort}
	}
	return handle.Node().Fold(ref.Port, ev, md)
}

// Evaluate folds the named output of GraphOutput, with GraphInput values
// taken from src. src may be nil for graphs that read no external input.
func (g *Graph) Evaluate(output string, md meta.Metadata, src Source) (value.Value, error) {
	return g.EvaluateWith(NewEvaluator(nodeid.GraphOutput, g).WithSource(src), output, md)
}

// EvaluateWith is Evaluate with a caller-configured evaluator, which is
// re-bound to GraphOutput.
func (g *Graph) EvaluateWith(ev Evaluator, output string, md meta.Metadata) (value.Value, error) {
	ev.graph = g
	v, err := ev.bind(nodeid.GraphOutput).FoldNamed(output, md)
	if err != nil {
		return value.Value{}, fmt.Errorf("evaluate %q: %w", output, err)
	}
	return v, nil
}

func portName(s fmt.Stringer) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
