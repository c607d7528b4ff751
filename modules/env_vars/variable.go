package env_vars

import (
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// ErrUnset is returned when a variable without a default is not set.
var ErrUnset = errors.New("env_vars: variable not set")

// VariableOut is the output vocabulary of Variable.
type VariableOut uint8

// VariableValue is Variable's only output.
const VariableValue VariableOut = 0

func (VariableOut) OutputPort()    {}
func (VariableOut) String() string { return "out" }

// Variable folds to the current value of an environment variable. The
// environment is read on every fold.
type Variable struct {
	name     string
	fallback *string
	lookup   func(string) (string, bool)
}

// NewVariable returns a node reading name. fallback, if non-nil, is used when
// the variable is unset.
func NewVariable(name string, fallback *string) (*Variable, error) {
	if name == "" {
		return nil, errors.New("variable name must not be empty")
	}
	return &Variable{name: name, fallback: fallback, lookup: os.LookupEnv}, nil
}

func (v *Variable) Title() string { return fmt.Sprintf("Env %s", v.name) }

func (v *Variable) Inputs() []port.In { return nil }

func (v *Variable) Outputs() []port.Out { return []port.Out{VariableValue} }

func (v *Variable) ResolveIn(port.In, nodeid.ID) (port.NodeIn, bool) {
	return port.NodeIn{}, false
}

func (v *Variable) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, VariableValue)
}

func (v *Variable) Fold(out port.Out, ev graph.Evaluator, _ meta.Metadata) (value.Value, error) {
	if s, ok := v.lookup(v.name); ok {
		return value.Text(s), nil
	}
	if v.fallback != nil {
		return value.Text(*v.fallback), nil
	}
	return value.Value{}, &graph.Error{Op: "fold", Node: ev.Node(), Port: out.String(), Err: fmt.Errorf("%w: %s", ErrUnset, v.name)}
}
