// Package wire encodes batches of graph elements for exchange between
// partitions or processes.
//
// A batch is one frame:
//
//	magic "GFWB" | version u8 | kind u8 | compression u8 |
//	codec-name-len u8 | codec-name | count u32 | raw-len u32 |
//	payload-len u32 | crc32c u32 | payload
//
// Integers are big-endian. The CRC32C covers the stored (possibly
// compressed) payload. Inside the uncompressed payload every element is
// written as its 12-byte ID(s), a uvarint-prefixed label, uvarint-prefixed
// codec-encoded properties and, for vertices and edges, the membership set
// in id.Set's binary layout.
package wire
