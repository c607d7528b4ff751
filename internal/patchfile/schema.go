package patchfile

import (
	"github.com/hashicorp/hcl/v2"
)

// graphBody is the body shared by a file and by each subgraph block.
type graphBody struct {
	Inputs    []string         `hcl:"inputs,optional"`
	Outputs   []string         `hcl:"outputs,optional"`
	Nodes     []*nodeBlock     `hcl:"node,block"`
	Subgraphs []*subgraphBlock `hcl:"subgraph,block"`
	Patches   []*patchBlock    `hcl:"patch,block"`
}

type nodeBlock struct {
	Name   string   `hcl:"name,label"`
	Kind   string   `hcl:"kind"`
	Remain hcl.Body `hcl:",remain"`
}

type subgraphBlock struct {
	Name   string   `hcl:"name,label"`
	Remain hcl.Body `hcl:",remain"`
}

type patchBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
