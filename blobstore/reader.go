package blobstore

import (
	"bytes"
	"context"
	"io"
)

// NewReader returns a sequential reader over the whole blob. Mappable blobs
// are read without copying; others through a single ReadRange request,
// opened on the first Read. Closing the reader closes the blob.
func NewReader(ctx context.Context, b Blob) io.ReadCloser {
	if m, ok := b.(Mappable); ok {
		if data, err := m.Bytes(); err == nil {
			return &blobReader{ctx: ctx, blob: b, r: io.NopCloser(bytes.NewReader(data))}
		}
	}
	return &blobReader{ctx: ctx, blob: b}
}

type blobReader struct {
	ctx  context.Context
	blob Blob
	r    io.ReadCloser
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.r == nil {
		if r.blob.Size() == 0 {
			return 0, io.EOF
		}
		rc, err := r.blob.ReadRange(r.ctx, 0, r.blob.Size())
		if err != nil {
			return 0, err
		}
		r.r = rc
	}
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

func (r *blobReader) Close() error {
	var err error
	if r.r != nil {
		err = r.r.Close()
	}
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}
