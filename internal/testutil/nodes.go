package testutil

import (
	"sync/atomic"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// StubIn is an input of a Stub node.
type StubIn string

func (StubIn) InputPort()       {}
func (p StubIn) String() string { return string(p) }

// StubOut is an output of a Stub node.
type StubOut string

func (StubOut) OutputPort()      {}
func (p StubOut) String() string { return string(p) }

// FoldFunc computes one output of a Stub.
type FoldFunc func(out StubOut, ev graph.Evaluator, md meta.Metadata) (value.Value, error)

// Stub is a configurable node that counts how often it is folded. Its ports
// are plain strings, so any name can be declared.
type Stub struct {
	Name   string
	Ins    []string
	Outs   []string
	FoldFn FoldFunc
	folds  atomic.Int64
}

// Folds returns how many times Fold was called.
func (p *Stub) Folds() int {
	return int(p.folds.Load())
}

func (p *Stub) Title() string { return p.Name }

func (p *Stub) Inputs() []port.In {
	ins := make([]port.In, len(p.Ins))
	for i, name := range p.Ins {
		ins[i] = StubIn(name)
	}
	return ins
}

func (p *Stub) Outputs() []port.Out {
	outs := make([]port.Out, len(p.Outs))
	for i, name := range p.Outs {
		outs[i] = StubOut(name)
	}
	return outs
}

func (p *Stub) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	if _, ok := port.FindIn(p.Inputs(), portString(in)); !ok {
		return port.NodeIn{}, false
	}
	return port.ResolveIn[StubIn](in, node)
}

func (p *Stub) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	if _, ok := port.FindOut(p.Outputs(), portString(out)); !ok {
		return port.NodeOut{}, false
	}
	return port.ResolveOut[StubOut](out, node)
}

func (p *Stub) Fold(out port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	p.folds.Add(1)
	return p.FoldFn(out.(StubOut), ev, md)
}

// Const returns a Stub with a single output "out" that always yields v.
func Const(name string, v value.Value) *Stub {
	return &Stub{
		Name: name,
		Outs: []string{"out"},
		FoldFn: func(StubOut, graph.Evaluator, meta.Metadata) (value.Value, error) {
			return v, nil
		},
	}
}

// Sum returns a Stub with inputs "a" and "b" whose output "out" is their
// numeric sum.
func Sum(name string) *Stub {
	return &Stub{
		Name: name,
		Ins:  []string{"a", "b"},
		Outs: []string{"out"},
		FoldFn: func(_ StubOut, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
			a, err := ev.ResolveNumber(StubIn("a"), md)
			if err != nil {
				return value.Value{}, err
			}
			b, err := ev.ResolveNumber(StubIn("b"), md)
			if err != nil {
				return value.Value{}, err
			}
			return value.NumberOf(a + b)
		},
	}
}

// Pick returns a Stub with inputs "left" and "right" and outputs of the
// same names, each forwarding only its own input.
func Pick(name string) *Stub {
	return &Stub{
		Name: name,
		Ins:  []string{"left", "right"},
		Outs: []string{"left", "right"},
		FoldFn: func(out StubOut, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
			return ev.ResolveInput(StubIn(out), md)
		},
	}
}

// Out ties the named output of h, failing the lookup loudly.
func Out(h graph.NodeHandle, name string) port.NodeOut {
	ref, ok := h.OutputNamed(name)
	if !ok {
		panic("testutil: no output " + name + " on " + h.Title())
	}
	return ref
}

// In ties the named input of h, failing the lookup loudly.
func In(h graph.NodeHandle, name string) port.NodeIn {
	ref, ok := h.InputNamed(name)
	if !ok {
		panic("testutil: no input " + name + " on " + h.Title())
	}
	return ref
}

func portString(p interface{ String() string }) string {
	if p == nil {
		return ""
	}
	return p.String()
}
