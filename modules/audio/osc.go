package audio

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

// DefaultRate is the number of ticks per second an Osc assumes.
const DefaultRate = 60.0

// ErrInvalidRate is returned for a non-positive tick rate.
var ErrInvalidRate = errors.New("audio: rate must be positive")

// OscIn is the input vocabulary of Osc.
type OscIn uint8

const (
	Frequency OscIn = iota
	Amplitude
)

func (OscIn) InputPort() {}

func (p OscIn) String() string {
	switch p {
	case Frequency:
		return "frequency"
	case Amplitude:
		return "amplitude"
	}
	return fmt.Sprintf("OscIn(%d)", uint8(p))
}

// Osc is a sine oscillator whose frequency (Hz) and amplitude are inputs.
// The tick is converted to seconds with the configured rate.
type Osc struct {
	rate float64
}

// NewOsc returns an oscillator running at rate ticks per second.
func NewOsc(rate float64) (*Osc, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return &Osc{rate: rate}, nil
}

func (o *Osc) Title() string { return "Osc" }

func (o *Osc) Inputs() []port.In { return []port.In{Frequency, Amplitude} }

func (o *Osc) Outputs() []port.Out { return []port.Out{Signal} }

func (o *Osc) ResolveIn(in port.In, node nodeid.ID) (port.NodeIn, bool) {
	p, ok := in.(OscIn)
	if !ok || p > Amplitude {
		return port.NodeIn{}, false
	}
	return port.NodeIn{Node: node, Port: p}, true
}

func (o *Osc) ResolveOut(out port.Out, node nodeid.ID) (port.NodeOut, bool) {
	return port.ResolveOut(out, node, Signal)
}

func (o *Osc) Fold(_ port.Out, ev graph.Evaluator, md meta.Metadata) (value.Value, error) {
	amp, err := ev.ResolveNumber(Amplitude, md)
	if err != nil {
		return value.Value{}, err
	}
	if amp == 0 {
		return value.Number(0), nil
	}

	freq, err := ev.ResolveNumber(Frequency, md)
	if err != nil {
		return value.Value{}, err
	}
	seconds := float64(md.Tick) / o.rate
	return value.NumberOf(amp * math.Sin(2*math.Pi*freq*seconds))
}
