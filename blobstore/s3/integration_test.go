package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/graphflow/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	prefix := fmt.Sprintf("test-graphflow-%d/", time.Now().UnixNano())
	store := NewStore(s3.NewFromConfig(cfg), bucket, prefix)

	data := []byte("0\tEN\t1\tZH\n2\tDE\t0\tEN\n")
	require.NoError(t, store.Put(ctx, "langs.tsv", data))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "langs.tsv")

	b, err := store.Open(ctx, "langs.tsv")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, 2)
	_, err = b.ReadAt(ctx, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, "EN", string(buf))
	require.NoError(t, b.Close())

	require.NoError(t, store.Delete(ctx, "langs.tsv"))
	_, err = store.Open(ctx, "langs.tsv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
