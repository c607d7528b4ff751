package textual

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/specialistvlad/foldgraph/internal/meta"
	"github.com/specialistvlad/foldgraph/internal/nodeid"
	"github.com/specialistvlad/foldgraph/internal/port"
	"github.com/specialistvlad/foldgraph/internal/value"
)

// ErrSplitOutOfRange is returned when the split index lies outside the text.
var ErrSplitOutOfRange = errors.New("textual: split index out of range")

// SplitIn is the input vocabulary of Split.
type SplitIn uint8

const (
	SplitText SplitIn = iota
	SplitAt
)

func (SplitIn) InputPort() {}

func (p SplitIn) String() string {
	switch p {
	case SplitText:
		return "text"
	case SplitAt:
		return "at"
	}
	return fmt.Sprintf("SplitIn(%d)", uint8(p))
}

// SplitOut is the output vocabulary of Split.
type SplitOut uint8

const (
	SplitStart SplitOut = iota
	SplitEnd
)

func (SplitOut) OutputPort() {}

func (p SplitOut) String() string {
	switch p {
	case SplitStart:
		return "start"
	case SplitEnd:
		return "end"
	}
	return fmt.Sprintf("SplitOut(%d)", uint8(p))
}

// Split cuts its text input in two at a character index. The fractional
// part of the index is discarded; an index outside [0, len] fails.
type Split struct{}

// NewSplit returns a Split node.
func NewSplit() *Split {
	return &Split{}
}

func (s *Split) Title() string { return "Text Split" }

func (s *Split) Inputs() []port.In { return []port.In{SplitText, SplitAt} }

func (s *Split) Outputs() []port.Out { return []port.Out{SplitStart, SplitEnd} }

func (s *Split) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	p, ok := in.(SplitIn)
	if !ok || p > SplitAt {
		return port.NodeIn{}, false
	}
	return port.NodeIn{Node: node, Port: p}, true
}

func (s *Split) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	p, ok := out.(SplitOut)
	if !ok || p > SplitEnd {
		return port.NodeOut{}, false
	}
	return port.NodeOut{Node: node, Port: p}, true
}

func (s *Split) Fold(out port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	which, ok := out.(SplitOut)
	if !ok || which > SplitEnd {
		return value.Value{}, &graph.Error{Op: "fold", Node: ev.Node(), Err: graph.ErrUnknownPort}
	}

	text, err := ev.ResolveText(SplitText, md)
	if err != nil {
		return value.Value{}, err
	}
	at, err := ev.ResolveNumber(SplitAt, md)
	if err != nil {
		return value.Value{}, err
	}

	runes := []rune(text)
	idx := math.Trunc(at)
	if idx < 0 || idx > float64(len(runes)) {
		return value.Value{}, &graph.Error{
			Op:   "fold",
			Node: ev.Node(),
			Port: SplitAt.String(),
			Err:  fmt.Errorf("%w: %v not in [0, %d]", ErrSplitOutOfRange, at, len(runes)),
		}
	}

	if which == SplitStart {
		return value.Text(string(runes[:int(idx)])), nil
	}
	return value.Text(string(runes[int(idx):])), nil
}
