// Package blobstore abstracts where graph inputs such as edge lists are read
// from.
//
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through a read-only file mapping
//   - MemoryStore: in-memory, for tests and small inputs
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Reading sequentially
//
// Blobs are random-access. NewReader turns a blob into a sequential
// io.ReadCloser for line-oriented parsers:
//
//	blob, err := store.Open(ctx, "edges.tsv")
//	r := blobstore.NewReader(ctx, blob)
//	defer r.Close()
package blobstore
