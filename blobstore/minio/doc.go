// Package minio provides a blobstore.BlobStore backed by MinIO or any other
// S3-compatible service reachable through minio-go.
//
// # Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := graphminio.NewStore(client, "graphs", "imports/")
package minio
