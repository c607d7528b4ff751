// Package engine is the driving facade over a graph.
//
// An Engine owns one graph and the base Metadata handed to every fold. It
// advances the tick between frames, lets the caller trade quality for speed,
// and wraps each evaluation in an OpenTelemetry span and a log record. The
// graph itself stays reachable through Graph for editing between frames.
package engine
