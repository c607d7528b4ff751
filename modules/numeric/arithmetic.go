package numeric

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// ErrDivisionByZero is returned when a Divide node's divisor folds to zero.
var ErrDivisionByZero = errors.New("numeric: division by zero")

// Operation selects what an Arithmetic node computes.
type Operation uint8

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
)

var operationNames = [...]string{"add", "subtract", "multiply", "divide"}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", o)
}

// ParseOperation converts an operation name, case-insensitively.
func ParseOperation(s string) (Operation, error) {
	for i, name := range operationNames {
		if strings.EqualFold(s, name) {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("invalid operation %q: must be one of %s", s, strings.Join(operationNames[:], ", "))
}

// ArithmeticIn is the input vocabulary of Arithmetic.
type ArithmeticIn uint8

const (
	Term1 ArithmeticIn = iota
	Term2
)

func (ArithmeticIn) InputPort() {}

func (p ArithmeticIn) String() string {
	switch p {
	case Term1:
		return "term1"
	case Term2:
		return "term2"
	}
	return fmt.Sprintf("ArithmeticIn(%d)", uint8(p))
}

// ArithmeticOut is the output vocabulary of Arithmetic.
type ArithmeticOut uint8

// Result is Arithmetic's only output.
const Result ArithmeticOut = 0

func (ArithmeticOut) OutputPort()    {}
func (ArithmeticOut) String() string { return "out" }

// Arithmetic combines two numbers.
type Arithmetic struct {
	op Operation
}

// NewArithmetic returns a node computing term1 <op> term2.
func NewArithmetic(op Operation) *Arithmetic {
	return &Arithmetic{op: op}
}

// Operation returns the node's operation.
func (a *Arithmetic) Operation() Operation {
	return a.op
}

func (a *Arithmetic) Title() string { return "Arithmetic" }

func (a *Arithmetic) Inputs() []port.In { return []port.In{Term1, Term2} }

func (a *Arithmetic) Outputs() []port.Out { return []port.Out{Result} }

func (a *Arithmetic) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	p, ok := in.(ArithmeticIn)
	if !ok || p > Term2 {
		return port.NodeIn{}, false
	}
	return port.NodeIn{Node: node, Port: p}, true
}

func (a *Arithmetic) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	p, ok := out.(ArithmeticOut)
	if !ok || p != Result {
		return port.NodeOut{}, false
	}
	return port.NodeOut{Node: node, Port: p}, true
}

func (a *Arithmetic) Fold(_ port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	t1, err := ev.ResolveNumber(Term1, md)
	if err != nil {
		return value.Value{}, err
	}
	t2, err := ev.ResolveNumber(Term2, md)
	if err != nil {
		return value.Value{}, err
	}

	var res float64
	switch a.op {
	case Add:
		res = t1 + t2
	case Subtract:
		res = t1 - t2
	case Multiply:
		res = t1 * t2
	case Divide:
		if t2 == 0 {
			return value.Value{}, &graph.Error{Op: "fold", Node: ev.Node(), Port: Term2.String(), Err: ErrDivisionByZero}
		}
		res = t1 / t2
	default:
		return value.Value{}, fmt.Errorf("numeric: unsupported operation %s", a.op)
	}
	return value.NumberOf(res)
}
