// Package testutil provides testing utilities for graphflow.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random edge lists and import records
// and for computing reference degrees to verify operator output.
//
// # Random Graphs
//
//	rng := testutil.NewRNG(seed)
//	pairs := rng.Pairs(100, 500)          // 500 edges over 100 vertices
//	text := testutil.EdgeListText(pairs)  // tab separated edge list
//
// # Ground Truth
//
//	out := testutil.OutDegrees(100, pairs)
package testutil
