package port

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/specialistvlad/foldgraph/internal/nodeid"
)

// In identifies an input of an unspecified node.
//
// Implementations must be comparable value types; String is the
// human-readable port name used for lookups.
type In interface {
	fmt.Stringer
	InputPort()
}

// Out identifies an output of an unspecified node.
//
// Implementations must be comparable value types; String is the
// human-readable port name used for lookups.
type Out interface {
	fmt.Stringer
	OutputPort()
}

// NodeIn ties an input identity to a specific node.
type NodeIn struct {
	Node nodeid.ID
	Port In
}

// NodeOut ties an output identity to a specific node.
type NodeOut struct {
	Node nodeid.ID
	Port Out
}

func (r NodeIn) String() string {
	return fmt.Sprintf("%s>%s", r.Node, name(r.Port))
}

func (r NodeOut) String() string {
	return fmt.Sprintf("%s>%s", r.Node, name(r.Port))
}

// ResolveIn returns the fully-qualified reference for in if its concrete
// type is T, which is how a node kind accepts only its own vocabulary. When
// declared is non-empty, in must also be one of those values; kinds with a
// closed enum vocabulary pass it so that out of range values are refused.
func ResolveIn[T interface {
	In
	comparable
}](in In, node nodeid.ID, declared ...T) (NodeIn, bool) {
	p, ok := in.(T)
	if !ok || (len(declared) > 0 && !slices.Contains(declared, p)) {
		return NodeIn{}, false
	}
	return NodeIn{Node: node, Port: p}, true
}

// ResolveOut is the output counterpart of ResolveIn.
func ResolveOut[T interface {
	Out
	comparable
}](out Out, node nodeid.ID, declared ...T) (NodeOut, bool) {
	p, ok := out.(T)
	if !ok || (len(declared) > 0 && !slices.Contains(declared, p)) {
		return NodeOut{}, false
	}
	return NodeOut{Node: node, Port: p}, true
}

// FindIn returns the input in ins whose name is name.
func FindIn(ins []In, name string) (In, bool) {
	for _, in := range ins {
		if in.String() == name {
			return in, true
		}
	}
	return nil, false
}

// FindOut returns the output in outs whose name is name.
func FindOut(outs []Out, name string) (Out, bool) {
	for _, out := range outs {
		if out.String() == name {
			return out, true
		}
	}
	return nil, false
}

// Comparable reports whether p can safely be used as a map key. A port type
// built on a slice or map would panic on insertion.
func Comparable(p any) bool {
	if p == nil {
		return false
	}
	return reflect.TypeOf(p).Comparable()
}

func name(s fmt.Stringer) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
