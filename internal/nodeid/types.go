package nodeid

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Kind tells the boundary singletons apart from ordinary nodes.
type Kind uint8

const (
	// KindInvalid is the zero Kind. The zero ID carries it and never names a node.
	KindInvalid Kind = iota
	// KindGraphInput marks the graph's input boundary node.
	KindGraphInput
	// KindGraphOutput marks the graph's output boundary node.
	KindGraphOutput
	// KindNode marks an ordinary, hash-identified node.
	KindNode
)

// nameTerminator is appended to names before hashing so that a name is never
// a prefix-collision of another hashed stream.
const nameTerminator = 0xff

// ID identifies a node within a graph. It is a comparable value and can be
// used directly as a map key.
type ID struct {
	kind Kind
	hash uint64
}

var (
	// GraphInput is the identity of every graph's input boundary node.
	GraphInput = ID{kind: KindGraphInput}
	// GraphOutput is the identity of every graph's output boundary node.
	GraphOutput = ID{kind: KindGraphOutput}
)

// NewRandom returns a fresh ordinary node id, unique with overwhelming probability.
func NewRandom() ID {
	return ID{kind: KindNode, hash: rand.Uint64()}
}

// NewFromName returns an ordinary node id derived from name. The same name
// always yields the same id.
func NewFromName(name string) ID {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{nameTerminator})
	return ID{kind: KindNode, hash: d.Sum64()}
}

// FromHash wraps an existing 64-bit hash as an ordinary node id.
func FromHash(hash uint64) ID {
	return ID{kind: KindNode, hash: hash}
}

// Kind reports which kind of node the id names.
func (id ID) Kind() Kind {
	return id.kind
}

// Hash returns the 64-bit hash of an ordinary node, or 0 for boundaries.
func (id ID) Hash() uint64 {
	return id.hash
}

// IsBoundary is true for GraphInput and GraphOutput.
func (id ID) IsBoundary() bool {
	return id.kind == KindGraphInput || id.kind == KindGraphOutput
}

// IsValid is false only for the zero ID.
func (id ID) IsValid() bool {
	return id.kind != KindInvalid
}
