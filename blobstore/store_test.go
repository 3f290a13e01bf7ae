package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	}
}

func TestBlobStore_Lifecycle(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			data := []byte("0\tEN\t1\tZH\n2\tDE\t0\tEN\n")

			w, err := store.Create(ctx, "graphs/langs.tsv")
			require.NoError(t, err)
			n, err := w.Write(data)
			require.NoError(t, err)
			require.Equal(t, len(data), n)
			require.NoError(t, w.Sync())
			require.NoError(t, w.Close())

			blob, err := store.Open(ctx, "graphs/langs.tsv")
			require.NoError(t, err)
			require.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 2)
			n, err = blob.ReadAt(ctx, buf, 2)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, "EN", string(buf))

			_, err = blob.ReadAt(ctx, buf, int64(len(data)))
			assert.ErrorIs(t, err, io.EOF)

			rc, err := blob.ReadRange(ctx, 11, 100)
			require.NoError(t, err)
			tail, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, "2\tDE\t0\tEN\n", string(tail))
			require.NoError(t, blob.Close())

			require.NoError(t, store.Put(ctx, "graphs/other.tsv", []byte("x")))
			require.NoError(t, store.Put(ctx, "readme", []byte("y")))

			names, err := store.List(ctx, "graphs/")
			require.NoError(t, err)
			assert.Equal(t, []string{"graphs/langs.tsv", "graphs/other.tsv"}, names)

			require.NoError(t, store.Delete(ctx, "graphs/other.tsv"))
			require.NoError(t, store.Delete(ctx, "graphs/other.tsv"))
			_, err = store.Open(ctx, "graphs/other.tsv")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestNewReader(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "a", []byte("hello graph")))
			require.NoError(t, store.Put(ctx, "empty", nil))

			blob, err := store.Open(ctx, "a")
			require.NoError(t, err)
			r := NewReader(ctx, blob)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, "hello graph", string(got))

			blob, err = store.Open(ctx, "empty")
			require.NoError(t, err)
			r = NewReader(ctx, blob)
			got, err = io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Empty(t, got)
		})
	}
}

// rangeOnly hides Mappable so NewReader uses ReadRange.
type rangeOnly struct{ Blob }

func TestNewReader_RangeAndCancel(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "a", []byte("abc")))

	blob, err := store.Open(ctx, "a")
	require.NoError(t, err)
	got, err := io.ReadAll(NewReader(ctx, rangeOnly{blob}))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = io.ReadAll(NewReader(cctx, rangeOnly{blob}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_IgnoresTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-partial-1"), []byte("x"), 0o600))
	require.NoError(t, store.Put(ctx, "done", []byte("y")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
