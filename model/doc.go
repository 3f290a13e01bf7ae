// Package model defines the property graph types produced and consumed by
// graphflow.
//
// # Elements
//
//   - GraphHead: identity, label and properties of one logical graph
//   - Vertex: an element with a membership set of graph head IDs
//   - Edge: a directed element between two vertex IDs, with membership
//
// # Import records
//
// ImportVertex and ImportEdge are the externally-keyed records fed into the
// graph constructor. The key type K is chosen by the data source.
//
// # Graphs
//
// LogicalGraph is one head with its vertices and edges. GraphCollection holds
// many heads over shared vertex and edge collections; membership decides
// which graph an element belongs to.
package model
