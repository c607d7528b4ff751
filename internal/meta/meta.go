// Package meta holds the execution context that flows backward through a
// fold, from the requested output to every node it reaches.
package meta

import (
	"fmt"
	"math"
	"strings"
)

// MaxTick is the largest tick. Ticks stay within int64 so that they can be
// reported as signed integers by tracing and JSON consumers.
const MaxTick uint64 = math.MaxInt64

// Quality is an informative trade-off between quality and performance.
// Nodes may honour it, ignore it, or degrade further at their own discretion;
// the graph does not enforce compliance. Values are ordered from best to
// cheapest.
type Quality uint8

const (
	// Highest is the best reasonable quality, used for final renders.
	Highest Quality = iota
	// Balanced is the everyday setting and must hold up in real time.
	Balanced
	// Performance must run in real time on most machines.
	Performance
	// Lowest is for placeholders, e.g. a branch that is computed for temporal
	// consistency but never shown.
	Lowest
)

var qualityNames = [...]string{"highest", "balanced", "performance", "lowest"}

func (q Quality) String() string {
	if int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return fmt.Sprintf("quality(%d)", q)
}

// AtLeast reports whether q is as good as or better than other.
func (q Quality) AtLeast(other Quality) bool {
	return q <= other
}

// ParseQuality converts a case-insensitive quality name.
func ParseQuality(s string) (Quality, error) {
	for i, name := range qualityNames {
		if strings.EqualFold(s, name) {
			return Quality(i), nil
		}
	}
	return Balanced, fmt.Errorf("invalid quality %q: must be one of %s", s, strings.Join(qualityNames[:], ", "))
}

// Metadata is copied into every fold call.
type Metadata struct {
	// Tick increments once per evaluation frame.
	Tick uint64
	// Quality is the requested quality level.
	Quality Quality
}

// Default is tick 0 at Balanced quality.
func Default() Metadata {
	return Metadata{Quality: Balanced}
}

// Next returns the metadata of the following frame. The tick saturates at
// MaxTick instead of wrapping.
func (m Metadata) Next() Metadata {
	if m.Tick < MaxTick {
		m.Tick++
	}
	return m
}

// WithQuality returns a copy of m at quality q.
func (m Metadata) WithQuality(q Quality) Metadata {
	m.Quality = q
	return m
}
