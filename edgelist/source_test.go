package edgelist

import (
	"context"
	"testing"

	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/operator"
	"github.com/hupe1980/graphflow/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuesByID(t *testing.T, vs []model.Vertex, key string) map[string]id.ID {
	t.Helper()
	out := make(map[string]id.ID)
	for _, v := range vs {
		s, ok := v.Properties[key].AsString()
		require.True(t, ok)
		out[s] = v.ID
	}
	return out
}

func TestSource_GraphCollection(t *testing.T) {
	for _, store := range []blobstore.BlobStore{blobstore.NewMemoryStore(), blobstore.NewLocalStore(t.TempDir())} {
		ctx := context.Background()
		require.NoError(t, store.Put(ctx, "langs.tsv", []byte("0\tEN\t1\tZH\n2\tDE\t0\tEN\n")))

		env := dataflow.NewEnv(dataflow.WithParallelism(3))
		src := NewSource(store, "langs.tsv", WithEnv(env), WithConfig(Config{PropertyKey: "lang"}))

		coll, report, err := src.GraphCollection(ctx)
		require.NoError(t, err)
		require.NoError(t, coll.Validate(ctx))
		assert.Equal(t, 2, report.Read.Records)
		assert.Equal(t, 3, report.Build.Vertices)
		assert.Equal(t, 2, report.Build.Edges)
		assert.Equal(t, 1, coll.Heads.Count())

		langs := valuesByID(t, coll.Vertices.Collect(), "lang")
		require.Len(t, langs, 3)

		pairs := make(map[[2]id.ID]bool)
		for _, e := range coll.Edges.Collect() {
			pairs[[2]id.ID{e.SourceID, e.TargetID}] = true
		}
		assert.Equal(t, map[[2]id.ID]bool{
			{langs["EN"], langs["ZH"]}: true,
			{langs["DE"], langs["EN"]}: true,
		}, pairs)
	}
}

func TestSource_LogicalGraphDegrees(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "fan.tsv", []byte("1\tA\t2\tB\n1\tA\t3\tC\n")))

	src := NewSource(store, "fan.tsv", WithBuildOptions(construct.WithGraphLabel("fan")))
	g, _, err := src.LogicalGraph(ctx)
	require.NoError(t, err)
	require.NoError(t, g.Validate(ctx))
	assert.Equal(t, "fan", g.Head.Label)

	degrees, err := operator.OutgoingVertexDegrees(ctx, g)
	require.NoError(t, err)

	byValue := valuesByID(t, g.Vertices.Collect(), DefaultPropertyKey)
	got := make(map[id.ID]int64)
	for _, d := range degrees.Collect() {
		got[d.Value] = d.Count
	}
	assert.Equal(t, map[id.ID]int64{byValue["A"]: 2, byValue["B"]: 0, byValue["C"]: 0}, got)
}

func TestSource_FirstValueWins(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "e.tsv", []byte("0\tEN\t1\tZH\n1\tCN\t0\tENGLISH\n")))

	coll, _, err := NewSource(store, "e.tsv").GraphCollection(ctx)
	require.NoError(t, err)
	vals := valuesByID(t, coll.Vertices.Collect(), DefaultPropertyKey)
	assert.Contains(t, vals, "EN")
	assert.Contains(t, vals, "ZH")
	assert.Len(t, vals, 2)
}

func TestSource_Throttled(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "e.tsv", []byte("0\tEN\t1\tZH\n")))

	ctrl := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20, MaxWorkers: 2})
	src := NewSource(store, "e.tsv",
		WithEnv(dataflow.NewEnv(dataflow.WithController(ctrl))),
		WithConfig(Config{Controller: ctrl}),
	)
	_, report, err := src.GraphCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Build.Edges)
}

func TestSource_Missing(t *testing.T) {
	_, _, err := NewSource(blobstore.NewMemoryStore(), "nope").GraphCollection(context.Background())
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
