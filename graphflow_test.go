package graphflow

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/edgelist"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/operator"
	"github.com/hupe1980/graphflow/resource"
	"github.com/hupe1980/graphflow/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ReadEdgeList(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "langs.tsv", []byte("0\tEN\t1\tZH\n2\tDE\t0\tEN\n")))

	metrics := &BasicMetricsCollector{}
	p := New(WithParallelism(4), WithMetricsCollector(metrics))

	g, report, err := p.ReadEdgeList(ctx, store, "langs.tsv")
	require.NoError(t, err)
	require.NoError(t, g.Validate(ctx))
	assert.Equal(t, 3, g.Vertices.Count())
	assert.Equal(t, 2, g.Edges.Count())
	assert.Equal(t, 2, report.Read.Records)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.ReadCount)
	assert.Equal(t, int64(2), stats.ReadRecords)
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(3), stats.BuildVertices)
	assert.Equal(t, int64(2), stats.BuildEdges)
}

func TestPipeline_ReadEdgeListCollection(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "e.tsv", []byte("1\tA\t2\tB\n")))

	coll, _, err := New().ReadEdgeListCollection(ctx, store, "e.tsv")
	require.NoError(t, err)
	assert.Equal(t, 1, coll.Heads.Count())
	assert.Equal(t, 2, coll.Vertices.Count())
}

func TestPipeline_Degrees(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)
	pairs := rng.SkewedPairs(50, 400, 2, 0.5)
	vertices, edges := testutil.ImportRecords(50, pairs, "node")

	p := New(WithParallelism(3))
	g, report, err := Build(ctx, p, vertices, edges)
	require.NoError(t, err)
	assert.Equal(t, 50, report.Vertices)
	assert.Equal(t, 400, report.Edges)

	byExternal := make(map[string]id.ID)
	for _, v := range g.Vertices.Collect() {
		s, _ := v.Properties.Get("value")
		byExternal[s.String()] = v.ID
	}

	out, err := p.Degrees(ctx, g, operator.Outgoing)
	require.NoError(t, err)
	in, err := p.Degrees(ctx, g, operator.Incoming)
	require.NoError(t, err)

	wantOut := testutil.OutDegrees(50, pairs)
	wantIn := testutil.InDegrees(50, pairs)
	require.Len(t, out, 50)
	for ext, want := range wantOut {
		vid := byExternal[testutil.VertexValue(ext)]
		assert.Equal(t, want, out[vid], "out %d", ext)
		assert.Equal(t, wantIn[ext], in[vid], "in %d", ext)
	}

	dist, err := p.DegreeDistribution(ctx, g, operator.Outgoing)
	require.NoError(t, err)
	var total int64
	for _, n := range dist {
		total += n
	}
	assert.Equal(t, int64(50), total)
}

func TestPipeline_DegreeDistributionLogs(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(WithLogger(logger))

	vertices, edges := testutil.ImportRecords(3, []testutil.Pair{{Source: 0, Target: 1}, {Source: 0, Target: 2}}, "")
	g, _, err := Build(ctx, p, vertices, edges)
	require.NoError(t, err)

	buf.Reset()
	dist, err := p.DegreeDistribution(ctx, g, operator.Outgoing)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{0: 2, 2: 1}, dist)
	assert.Contains(t, buf.String(), "degree distribution completed")
	assert.Contains(t, buf.String(), "operator=degree_distribution")
	assert.Contains(t, buf.String(), "degrees=2")
}

func TestPipeline_Combine(t *testing.T) {
	ctx := context.Background()
	p := New()

	v1, e1 := testutil.ImportRecords(2, []testutil.Pair{{Source: 0, Target: 1}}, "")
	v2, e2 := testutil.ImportRecords(3, []testutil.Pair{{Source: 2, Target: 0}}, "")
	g1, _, err := Build(ctx, p, v1, e1)
	require.NoError(t, err)
	g2, _, err := Build(ctx, p, v2, e2)
	require.NoError(t, err)

	g, err := p.Combine(ctx, g1, g2)
	require.NoError(t, err)
	require.NoError(t, g.Validate(ctx))
	assert.Equal(t, 5, g.Vertices.Count())
	assert.Equal(t, 2, g.Edges.Count())

	_, err = p.Combine(ctx)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrNoGraphs)
}

func TestPipeline_Errors(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad.tsv", []byte("0\tEN\t1\n")))

	metrics := &BasicMetricsCollector{}
	p := New(WithMetricsCollector(metrics))

	_, _, err := p.ReadEdgeList(ctx, store, "missing.tsv")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	_, _, err = p.ReadEdgeList(ctx, store, "bad.tsv")
	assert.ErrorIs(t, err, ErrInvalidInput)
	var me *MalformedRecordError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 1, me.Line)

	vertices := []model.ImportVertex[string]{{ExternalID: "a"}}
	edges := []model.ImportEdge[string]{{Seq: 9, SourceID: "a", TargetID: "b"}}
	_, _, err = Build(ctx, p, vertices, edges)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrReferentialIntegrity)
	var de *DanglingEdgeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, construct.Target, de.Side)

	assert.Equal(t, int64(2), metrics.GetStats().ReadErrors)
	assert.Equal(t, int64(1), metrics.GetStats().BuildErrors)
}

func TestPipeline_DropEdges(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := New(WithDanglingPolicy(construct.DropEdge), WithLogger(logger), WithGraphLabel("g"))
	vertices := []model.ImportVertex[string]{{ExternalID: "a"}}
	edges := []model.ImportEdge[string]{
		{Seq: 1, SourceID: "a", TargetID: "a"},
		{Seq: 2, SourceID: "a", TargetID: "missing"},
	}
	g, report, err := Build(ctx, p, vertices, edges)
	require.NoError(t, err)
	assert.Equal(t, "g", g.Head.Label)
	assert.Equal(t, []uint64{2}, report.DroppedEdges.ToArray())
	assert.Contains(t, buf.String(), "dropped dangling edges")
	assert.Contains(t, buf.String(), "build completed")
}

func TestPipeline_SkipMalformed(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "e.tsv", []byte("0\tEN\t1\tZH\noops\n")))

	var buf bytes.Buffer
	ctrl := resource.NewController(resource.Config{MaxWorkers: 2, IOLimitBytesPerSec: 1 << 20})
	p := New(
		WithController(ctrl),
		WithLogger(NewLogger(slog.NewTextHandler(&buf, nil))),
		WithEdgeListConfig(edgelist.Config{Malformed: edgelist.SkipMalformed}),
	)
	_, report, err := p.ReadEdgeList(ctx, store, "e.tsv")
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, report.Read.Skipped.ToArray())
	assert.Contains(t, buf.String(), "skipped malformed lines")
	assert.Contains(t, buf.String(), "source=e.tsv")
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(model.ErrGraphNotFound), ErrNotFound)
	assert.ErrorIs(t, translateError(&id.DecodeError{}), ErrCorrupt)
	assert.ErrorIs(t, translateError(operator.ErrConflictingDuplicate), ErrInvalidInput)
	assert.ErrorIs(t, translateError(ErrCounterExhausted), ErrCounterExhausted)
	assert.NotErrorIs(t, translateError(ErrCounterExhausted), ErrInvalidInput)
}
