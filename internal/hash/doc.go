// Package hash provides the CRC32-Castagnoli checksums used by graphflow's
// exchange frames and S3 uploads.
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension when available.
//
//	sum := hash.CRC32C(payload)
package hash
