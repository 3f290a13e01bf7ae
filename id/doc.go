// Package id defines the identifier used to name every graph element and the
// set container used for graph membership.
//
// # Layout
//
// An ID is 12 bytes:
//
//	bytes 0-3   Unix seconds (big-endian)
//	bytes 4-8   machine/process discriminator
//	bytes 9-11  per-process counter (big-endian)
//
// IDs are compared lexicographically over their bytes, which roughly orders
// them by creation time. Minting needs no coordination between processes:
// uniqueness comes from the timestamp, discriminator and counter triple.
//
// # Sets
//
// Set is an unordered collection of distinct IDs with a fixed binary layout:
//
//	[u32 count (big-endian)][count x 12-byte ID]
//
// That layout is used whenever a set crosses a partition or process boundary.
package id
