package nodeid

import "fmt"

// shortLen is the number of hex digits kept by Short.
const shortLen = 8

// String serializes the ID into its canonical text form.
func (id ID) String() string {
	switch id.kind {
	case KindGraphInput:
		return "GraphInput"
	case KindGraphOutput:
		return "GraphOutput"
	case KindNode:
		return fmt.Sprintf("node(%016x)", id.hash)
	default:
		return "invalid"
	}
}

// Short is a compact form for log lines. It is not parseable.
func (id ID) Short() string {
	if id.kind != KindNode {
		return id.String()
	}
	return fmt.Sprintf("%016x", id.hash)[:shortLen]
}
