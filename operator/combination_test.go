package operator

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphOf(env *dataflow.Env, head uint64, vertexIDs []uint64, edges [][3]uint64) *model.LogicalGraph {
	h := id.FromUint64(head)
	vs := make([]model.Vertex, len(vertexIDs))
	for i, v := range vertexIDs {
		vs[i] = model.Vertex{ID: id.FromUint64(v), Label: "v", GraphIDs: id.NewSet(h)}
	}
	es := make([]model.Edge, len(edges))
	for i, e := range edges {
		es[i] = model.Edge{ID: id.FromUint64(e[0]), SourceID: id.FromUint64(e[1]), TargetID: id.FromUint64(e[2]), Label: "e", GraphIDs: id.NewSet(h)}
	}
	return &model.LogicalGraph{
		Head:     model.GraphHead{ID: h, Label: "g"},
		Vertices: dataflow.FromSlice(env, vs),
		Edges:    dataflow.FromSlice(env, es),
	}
}

// summary drops the combined head so results from different runs compare.
func summary(g *model.LogicalGraph) (map[id.ID][]id.ID, map[id.ID][]id.ID) {
	strip := func(s *id.Set) []id.ID {
		c := s.Clone()
		c.Remove(g.Head.ID)
		return c.Sorted()
	}
	vs := make(map[id.ID][]id.ID)
	for _, v := range g.Vertices.Collect() {
		vs[v.ID] = strip(v.GraphIDs)
	}
	es := make(map[id.ID][]id.ID)
	for _, e := range g.Edges.Collect() {
		es[e.ID] = strip(e.GraphIDs)
	}
	return vs, es
}

func TestCombine_UnionAndMembership(t *testing.T) {
	ctx := context.Background()
	env := dataflow.NewEnv(dataflow.WithParallelism(3))
	g1 := graphOf(env, 100, []uint64{1, 2}, [][3]uint64{{10, 1, 2}})
	g2 := graphOf(env, 200, []uint64{2, 3}, [][3]uint64{{11, 2, 3}})

	out, err := Combine(ctx, []*model.LogicalGraph{g1, g2}, WithCombinedLabel("combined"))
	require.NoError(t, err)
	assert.Equal(t, "combined", out.Head.Label)
	assert.Equal(t, 3, out.Vertices.Count())
	assert.Equal(t, 2, out.Edges.Count())
	require.NoError(t, out.Validate(ctx))

	for _, v := range out.Vertices.Collect() {
		assert.True(t, v.GraphIDs.Contains(out.Head.ID))
		if v.ID == id.FromUint64(2) {
			assert.True(t, v.GraphIDs.ContainsAll(id.FromUint64(100), id.FromUint64(200)))
		}
	}

	// Inputs are untouched.
	for _, v := range g1.Vertices.Collect() {
		assert.Equal(t, 1, v.GraphIDs.Len())
	}
}

func TestCombine_CommutativeAndAssociative(t *testing.T) {
	ctx := context.Background()
	env := dataflow.NewEnv(dataflow.WithParallelism(2))
	a := graphOf(env, 100, []uint64{1, 2}, [][3]uint64{{10, 1, 2}})
	b := graphOf(env, 200, []uint64{3}, nil)
	c := graphOf(env, 300, []uint64{4, 5}, [][3]uint64{{11, 4, 5}})

	ab, err := Combine(ctx, []*model.LogicalGraph{a, b})
	require.NoError(t, err)
	ba, err := Combine(ctx, []*model.LogicalGraph{b, a})
	require.NoError(t, err)
	v1, e1 := summary(ab)
	v2, e2 := summary(ba)
	assert.Equal(t, v1, v2)
	assert.Equal(t, e1, e2)

	abc, err := Combine(ctx, []*model.LogicalGraph{ab, c})
	require.NoError(t, err)
	bc, err := Combine(ctx, []*model.LogicalGraph{b, c})
	require.NoError(t, err)
	aBC, err := Combine(ctx, []*model.LogicalGraph{a, bc})
	require.NoError(t, err)

	// Intermediate heads differ, so compare element sets only.
	left := abc.Vertices.Count() + abc.Edges.Count()
	right := aBC.Vertices.Count() + aBC.Edges.Count()
	assert.Equal(t, left, right)
	ids := func(g *model.LogicalGraph) []id.ID {
		var out []id.ID
		for _, v := range g.Vertices.Collect() {
			out = append(out, v.ID)
		}
		for _, e := range g.Edges.Collect() {
			out = append(out, e.ID)
		}
		return out
	}
	assert.ElementsMatch(t, ids(abc), ids(aBC))
}

func TestCombine_Conflict(t *testing.T) {
	ctx := context.Background()
	env := dataflow.NewEnv()
	g1 := graphOf(env, 100, []uint64{1}, nil)
	g2 := graphOf(env, 200, []uint64{1}, nil)
	g2.Vertices = dataflow.FromSlice(env, []model.Vertex{{ID: id.FromUint64(1), Label: "other", GraphIDs: id.NewSet(id.FromUint64(200))}})

	_, err := Combine(ctx, []*model.LogicalGraph{g1, g2})
	require.ErrorIs(t, err, ErrConflictingDuplicate)

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "vertex", ce.Kind)
	assert.Equal(t, id.FromUint64(1), ce.ID)
}

func TestCombine_RejectDuplicates(t *testing.T) {
	ctx := context.Background()
	env := dataflow.NewEnv()
	g1 := graphOf(env, 100, []uint64{1}, nil)
	g2 := graphOf(env, 200, []uint64{1}, nil)

	_, err := Combine(ctx, []*model.LogicalGraph{g1, g2}, WithDuplicatePolicy(RejectDuplicates))
	assert.ErrorIs(t, err, ErrDuplicateElement)

	_, err = Combine(ctx, []*model.LogicalGraph{g1, graphOf(env, 200, []uint64{2}, nil)}, WithDuplicatePolicy(RejectDuplicates))
	assert.NoError(t, err)
}

func TestCombine_NoGraphs(t *testing.T) {
	_, err := Combine(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoGraphs)
}

func TestCombine_CounterExhausted(t *testing.T) {
	env := dataflow.NewEnv()
	now := time.Unix(1_700_000_000, 0)
	gen := id.NewGenerator(id.WithClock(func() time.Time { return now }))
	for {
		if _, err := gen.Next(); err != nil {
			break
		}
	}
	_, err := Combine(context.Background(), []*model.LogicalGraph{graphOf(env, 1, nil, nil)}, WithGenerator(gen))
	assert.ErrorIs(t, err, id.ErrCounterExhausted)
}

func TestReduceCombination(t *testing.T) {
	ctx := context.Background()
	env := dataflow.NewEnv(dataflow.WithParallelism(2))
	g1, g2 := id.FromUint64(100), id.FromUint64(200)
	coll := &model.GraphCollection{
		Heads: dataflow.FromSlice(env, []model.GraphHead{{ID: g1}, {ID: g2}}),
		Vertices: dataflow.FromSlice(env, []model.Vertex{
			{ID: vA, GraphIDs: id.NewSet(g1, g2)},
			{ID: vB, GraphIDs: id.NewSet(g2)},
		}),
		Edges: dataflow.FromSlice(env, []model.Edge{
			{ID: id.FromUint64(10), SourceID: vA, TargetID: vB, GraphIDs: id.NewSet(g2)},
		}),
	}

	out, err := ReduceCombination(ctx, coll)
	require.NoError(t, err)
	assert.Equal(t, DefaultCombinedLabel, out.Head.Label)
	assert.Equal(t, 2, out.Vertices.Count())
	assert.Equal(t, 1, out.Edges.Count())
	require.NoError(t, out.Validate(ctx))
}
