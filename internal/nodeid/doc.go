/*
Package nodeid provides the identity of a node instance inside a graph.

An ID is one of three things: the GraphInput boundary, the GraphOutput
boundary, or an ordinary node identified by a 64-bit hash. Ordinary ids are
either drawn at random (NewRandom) or derived from a name (NewFromName) when
a graph has to be rebuilt reproducibly, e.g. from a patch file or in tests.

The canonical text form is `GraphInput`, `GraphOutput` or `node(<hex>)`.
This package owns both the formatting and the parsing of that form.
*/
package nodeid
