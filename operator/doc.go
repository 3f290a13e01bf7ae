// Package operator implements graph operators over logical graphs and graph
// collections.
//
// Combination unions several logical graphs into one new logical graph.
// Degree statistics count, per vertex, the edges leaving or entering it and
// summarize those counts as distributions.
//
// Operators never mutate their inputs and can be re-executed.
package operator
