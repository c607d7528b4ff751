// Package port defines the type-erased identities of node inputs and outputs.
//
// Every node kind declares its own closed vocabulary of ports, usually as a
// small enum type, and makes it implement In or Out. The graph never knows
// these concrete types: it stores In and Out interface values as map keys,
// so equality and hashing are structural (same dynamic type, same value) and
// a node recovers its own type with a plain type assertion.
//
// In and Out carry disjoint marker methods. An input identity therefore
// cannot be passed where an output is expected, and vice versa.
//
// A bare port identity is not tied to any node. Pairing it with a node id
// yields a NodeIn or NodeOut, the fully-qualified references the graph's
// Connect and Disconnect accept.
package port
