// Package graph provides the mutable dataflow graph and its demand-driven
// ("lazy fold") evaluator.
//
// # What the Graph Holds
//
// A Graph owns one vertex per node. A vertex keeps the node instance plus the
// two edge maps of that node:
//
//	┌──────────────────────────────────────────────┐
//	│                    vertex                    │
//	│  handle:   NodeHandle (id + Node)            │
//	│  inbound:  port.In  → port.NodeOut  (≤ 1)    │
//	│  outbound: port.Out → {port.NodeIn} (fan-out) │
//	└──────────────────────────────────────────────┘
//
// An input has at most one source; connecting a new source to a patched input
// replaces the old edge. An output may feed any number of inputs. Connect,
// Disconnect, Remove and InsertWithID keep the inbound and outbound maps of
// all vertices mutually consistent.
//
// Every graph is created with two boundary nodes, GraphInput and GraphOutput,
// which can never be removed. GraphOutput passes whatever is wired into one of
// its named inputs through to the like-named output the caller folds.
// GraphInput hands out values supplied from outside the graph.
//
// # The Lazy Fold
//
// Evaluation is pull-based. The caller folds one output of GraphOutput; each
// node's Fold asks its Evaluator for only the inputs that output needs:
//
//	caller ──Fold(numeric)──▶ GraphOutput
//	                              │ ResolveInput(numeric)
//	                              ▼
//	                             add ──ResolveInput(term1)──▶ mul ──▶ ...
//	                              │
//	                              └──ResolveInput(term2)──▶ const
//
// Nothing is evaluated unless some downstream Fold requested it, and nothing
// is cached: the same output requested twice is computed twice.
//
// # Locking
//
// A Graph is guarded by a single mutex. Structural operations hold it for
// the duration of that one operation. The evaluator holds it only while it
// looks up one inbound edge and releases it before recursing, so a deep fold
// never self-deadlocks and sibling branches do not serialize on the lock.
//
// There is no snapshot isolation. A Connect, Disconnect or Remove running
// concurrently with a fold may be observed by some recursion levels and not
// by others.
//
// If code panics while holding the lock, the graph is marked corrupted and
// every later operation fails with ErrGraphCorrupted.
//
// # Cycles
//
// Connect rejects any edge that would close a cycle (ErrCycleDetected), so a
// fold always terminates.
//
// # Key Types
//
// **Graph** (graph.go, connect.go): vertices, edges and the mutation API.
//
// **Node** (node.go): the contract every node kind implements.
//
// **Evaluator** (evaluator.go): a cheap cursor bound to one node that
// resolves that node's inputs.
//
// **Subgraph** (subgraph.go): a node owning a private child Graph.
package graph
