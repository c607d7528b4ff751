// Package registry maps node kind names to the Go code that builds them.
//
// Patch files name nodes by kind ("arithmetic", "text_split", ...) and carry
// a bag of attributes. Each module registers its kinds here, together with a
// config struct whose `cty` tags declare the attributes the kind accepts.
// Build decodes the attributes into that struct and hands it to the kind's
// constructor, so a misspelt or mistyped attribute is caught before a node
// ever reaches a graph.
//
// Optional attributes are pointer fields; every other field is required.
package registry
