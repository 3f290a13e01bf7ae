// Package edgelist reads graphs from edge list files.
//
// Every line describes one edge between two vertices:
//
//	source-id <d> source-value <d> target-id <d> target-value
//
// IDs are int64. The value of a vertex is stored as a string property under
// Config.PropertyKey. The delimiter defaults to a tab. Blank lines and lines
// starting with '#' are ignored.
//
//	0	EN	1	ZH
//	2	DE	0	EN
//
// describes three vertices (0, 1, 2) and two edges (0->1, 2->0).
package edgelist
