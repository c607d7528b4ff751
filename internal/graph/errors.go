package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/foldgraph/internal/nodeid"
)

// Sentinel errors for graph operations. Located failures wrap them in *Error.
var (
	// ErrUnknownNode indicates an operation referenced an id with no vertex.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrUnknownSourceNode is the ErrUnknownNode raised for an edge's source.
	ErrUnknownSourceNode = fmt.Errorf("source: %w", ErrUnknownNode)

	// ErrUnknownTargetNode is the ErrUnknownNode raised for an edge's target.
	ErrUnknownTargetNode = fmt.Errorf("target: %w", ErrUnknownNode)

	// ErrInvalidNode indicates a nil node or the zero id was supplied.
	ErrInvalidNode = errors.New("graph: invalid node")

	// ErrProtectedNode indicates an attempt to remove or replace a boundary node.
	ErrProtectedNode = errors.New("graph: boundary node is protected")

	// ErrUnknownPort indicates a port did not resolve against the node's vocabulary.
	ErrUnknownPort = errors.New("graph: unknown port")

	// ErrNoInboundEdge indicates a fold requested an input with no connection.
	ErrNoInboundEdge = errors.New("graph: no inbound edge")

	// ErrCycleDetected indicates a connection would make the graph cyclic.
	ErrCycleDetected = errors.New("graph: connection would create a cycle")

	// ErrGraphCorrupted indicates a panic left the graph's state inconsistent.
	ErrGraphCorrupted = errors.New("graph: corrupted by a panic while locked")
)

// Error locates a failure in the graph.
type Error struct {
	// Op is the operation that failed, e.g. "connect" or "resolve".
	Op string
	// Node is the node the failure was observed at.
	Node nodeid.ID
	// Port is the name of the port involved, if any.
	Port string
	// Err is the underlying failure, usually one of the sentinels.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Node.IsValid() {
		sb.WriteByte(' ')
		sb.WriteString(e.Node.String())
		if e.Port != "" {
			sb.WriteByte('>')
			sb.WriteString(e.Port)
		}
	} else if e.Port != "" {
		sb.WriteByte(' ')
		sb.WriteString(e.Port)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
