// Package patchfile loads graphs from HCL patch files.
//
// A patch file declares a graph's boundary names, its nodes, and the patches
// (edges) between them:
//
//	inputs  = ["freq"]
//	outputs = ["numeric", "text"]
//
//	node "two" {
//	  kind  = "number"
//	  value = 2
//	}
//
//	node "mul" {
//	  kind      = "arithmetic"
//	  operation = "multiply"
//	}
//
//	patch {
//	  from = "two.out"
//	  to   = "mul.term1"
//	}
//
//	patch {
//	  from = "mul.out"
//	  to   = "output.numeric"
//	}
//
// Every attribute of a node block other than kind is handed to the kind's
// constructor through the registry. The reserved names "input" and "output"
// address the graph's boundary nodes. A subgraph block has the same body as
// the file itself and becomes a single node of the enclosing graph, exposing
// the subgraph's inputs and outputs as its own ports.
//
// Node identities are derived from the node's path ("outer/inner/two"), so
// loading the same file twice yields the same ids.
package patchfile
