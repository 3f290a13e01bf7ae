// Package construct turns externally keyed vertex and edge records into a
// property graph with minted identifiers.
//
// Build deduplicates vertices by external key, mints one ID per distinct
// key, resolves edge endpoints through that mapping and mints one ID per
// edge. Every element receives the membership set of the graph heads named
// by its record. BuildLogicalGraph additionally combines all graphs into one.
//
// Edges whose endpoints cannot be resolved either fail the build (FailFast)
// or are dropped and reported (DropEdge).
package construct
