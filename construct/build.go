package construct

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/operator"
)

// Report summarizes a build.
type Report struct {
	// Vertices and Edges count the elements of the result.
	Vertices int
	Edges    int
	// DuplicateVertices counts import vertices discarded because another
	// record with the same external ID was kept.
	DuplicateVertices int64
	// ConflictingVertices counts external IDs whose records disagree in
	// label, properties or graph keys.
	ConflictingVertices int64
	// DroppedEdges holds the Seq of every edge dropped under DropEdge.
	DroppedEdges *roaring64.Bitmap
	// Graphs counts the graph heads of the result.
	Graphs int
}

// resolved maps an external vertex ID to its built vertex.
type resolved[K comparable] struct {
	ext    K
	vertex model.Vertex
}

// endpoints carries an import edge through endpoint resolution.
type endpoints[K comparable] struct {
	edge    model.ImportEdge[K]
	src     id.ID
	tgt     id.ID
	missing Side
}

// incidence carries the graphs an edge adds to one of its endpoints.
type incidence struct {
	vertex id.ID
	graphs *id.Set
}

// Build resolves external identities and constructs a graph collection.
//
// The only failures are dangling edges under FailFast and generator
// counter exhaustion.
func Build[K comparable](
	ctx context.Context,
	env *dataflow.Env,
	vertices *dataflow.Collection[model.ImportVertex[K]],
	edges *dataflow.Collection[model.ImportEdge[K]],
	optFns ...Option,
) (*model.GraphCollection, *Report, error) {
	o := applyOptions(optFns)
	report := &Report{DroppedEdges: roaring64.New()}

	heads, headIDs, err := buildHeads(ctx, env, vertices, edges, o)
	if err != nil {
		return nil, nil, err
	}
	report.Graphs = len(heads)

	membership := func(graphs []string) *id.Set {
		s := id.NewSet()
		if len(graphs) == 0 {
			s.Add(headIDs[""])
			return s
		}
		for _, g := range graphs {
			s.Add(headIDs[g])
		}
		return s
	}

	// Deduplicate by external ID.
	var duplicates, conflicts atomic.Int64
	distinct, err := dataflow.GroupReduce(ctx, vertices,
		func(v model.ImportVertex[K]) K { return v.ExternalID },
		func(ext K, group []model.ImportVertex[K]) (model.ImportVertex[K], error) {
			keep := group[0]
			if o.duplicates == KeepLast {
				keep = group[len(group)-1]
			}
			if len(group) > 1 {
				duplicates.Add(int64(len(group) - 1))
				for _, v := range group {
					if !sameImportVertex(v, keep) {
						conflicts.Add(1)
						o.logger.DebugContext(ctx, "conflicting duplicate vertex", "external_id", ext, "records", len(group))
						break
					}
				}
			}
			return keep, nil
		})
	if err != nil {
		return nil, nil, err
	}

	// Mint one ID per external ID.
	table, err := dataflow.Map(ctx, distinct, func(v model.ImportVertex[K]) (resolved[K], error) {
		vid, err := o.generator.Next()
		if err != nil {
			return resolved[K]{}, err
		}
		return resolved[K]{
			ext: v.ExternalID,
			vertex: model.Vertex{
				ID:         vid,
				Label:      v.Label,
				Properties: v.Properties.Clone(),
				GraphIDs:   membership(v.Graphs),
			},
		}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Resolve sources, then targets.
	extKey := func(r resolved[K]) K { return r.ext }
	withSrc, err := dataflow.LeftOuterJoin(ctx, edges, table,
		func(e model.ImportEdge[K]) K { return e.SourceID },
		extKey,
		func(e model.ImportEdge[K], r resolved[K], ok bool) (endpoints[K], error) {
			if !ok {
				if o.dangling == FailFast {
					return endpoints[K]{}, &DanglingEdgeError{Seq: e.Seq, Side: Source, ExternalID: e.SourceID}
				}
				return endpoints[K]{edge: e, missing: Source}, nil
			}
			return endpoints[K]{edge: e, src: r.vertex.ID}, nil
		})
	if err != nil {
		return nil, nil, err
	}

	withBoth, err := dataflow.LeftOuterJoin(ctx, withSrc, table,
		func(ep endpoints[K]) K { return ep.edge.TargetID },
		extKey,
		func(ep endpoints[K], r resolved[K], ok bool) (endpoints[K], error) {
			if !ok {
				if o.dangling == FailFast {
					return endpoints[K]{}, &DanglingEdgeError{Seq: ep.edge.Seq, Side: Target, ExternalID: ep.edge.TargetID}
				}
				if ep.missing == "" {
					ep.missing = Target
				}
				return ep, nil
			}
			ep.tgt = r.vertex.ID
			return ep, nil
		})
	if err != nil {
		return nil, nil, err
	}

	dropped, err := dataflow.Filter(ctx, withBoth, func(ep endpoints[K]) bool { return ep.missing != "" })
	if err != nil {
		return nil, nil, err
	}
	for _, ep := range dropped.Collect() {
		report.DroppedEdges.Add(ep.edge.Seq)
	}
	if n := report.DroppedEdges.GetCardinality(); n > 0 {
		o.logger.DebugContext(ctx, "dropped edges with unresolved endpoints", "count", n)
	}

	// Mint one ID per surviving edge.
	built, err := dataflow.FlatMap(ctx, withBoth, func(ep endpoints[K], emit func(model.Edge)) error {
		if ep.missing != "" {
			return nil
		}
		eid, err := o.generator.Next()
		if err != nil {
			return err
		}
		emit(model.Edge{
			ID:         eid,
			Label:      ep.edge.Label,
			SourceID:   ep.src,
			TargetID:   ep.tgt,
			Properties: ep.edge.Properties.Clone(),
			GraphIDs:   membership(ep.edge.Graphs),
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	builtVertices, err := withEndpointMembership(ctx, table, built)
	if err != nil {
		return nil, nil, err
	}

	report.Vertices = builtVertices.Count()
	report.Edges = built.Count()
	report.DuplicateVertices = duplicates.Load()
	report.ConflictingVertices = conflicts.Load()

	o.logger.DebugContext(ctx, "graph built",
		"vertices", report.Vertices,
		"edges", report.Edges,
		"graphs", report.Graphs,
		"duplicate_vertices", report.DuplicateVertices,
		"dropped_edges", report.DroppedEdges.GetCardinality(),
	)

	return &model.GraphCollection{
		Heads:    dataflow.FromSlice(env, heads),
		Vertices: builtVertices,
		Edges:    built,
	}, report, nil
}

// BuildLogicalGraph builds a graph collection and combines all its graphs
// into one logical graph.
func BuildLogicalGraph[K comparable](
	ctx context.Context,
	env *dataflow.Env,
	vertices *dataflow.Collection[model.ImportVertex[K]],
	edges *dataflow.Collection[model.ImportEdge[K]],
	optFns ...Option,
) (*model.LogicalGraph, *Report, error) {
	coll, report, err := Build(ctx, env, vertices, edges, optFns...)
	if err != nil {
		return nil, nil, err
	}

	o := applyOptions(optFns)
	g, err := operator.ReduceCombination(ctx, coll,
		operator.WithGenerator(o.generator),
		operator.WithCombinedLabel(o.graphLabel),
		operator.WithLogger(o.logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return g, report, nil
}

// withEndpointMembership adds every graph an edge belongs to to both of its
// endpoints, so each logical graph of the collection is referentially
// consistent even when vertex and edge graph keys disagree.
func withEndpointMembership[K comparable](
	ctx context.Context,
	table *dataflow.Collection[resolved[K]],
	edges *dataflow.Collection[model.Edge],
) (*dataflow.Collection[model.Vertex], error) {
	incident, err := dataflow.FlatMap(ctx, edges, func(e model.Edge, emit func(incidence)) error {
		emit(incidence{vertex: e.SourceID, graphs: e.GraphIDs})
		emit(incidence{vertex: e.TargetID, graphs: e.GraphIDs})
		return nil
	})
	if err != nil {
		return nil, err
	}
	merged, err := dataflow.GroupReduce(ctx, incident,
		func(in incidence) id.ID { return in.vertex },
		func(vid id.ID, group []incidence) (incidence, error) {
			s := id.NewSet()
			for _, in := range group {
				s.AddSet(in.graphs)
			}
			return incidence{vertex: vid, graphs: s}, nil
		})
	if err != nil {
		return nil, err
	}
	return dataflow.LeftOuterJoin(ctx, table, merged,
		func(r resolved[K]) id.ID { return r.vertex.ID },
		func(in incidence) id.ID { return in.vertex },
		func(r resolved[K], in incidence, ok bool) (model.Vertex, error) {
			v := r.vertex
			if ok && !v.GraphIDs.ContainsAllOf(in.graphs) {
				v.GraphIDs = id.Union(v.GraphIDs, in.graphs)
			}
			return v, nil
		})
}

// buildHeads mints one head per graph key named by any record. Records
// without keys belong to the default graph, stored under key "".
func buildHeads[K comparable](
	ctx context.Context,
	env *dataflow.Env,
	vertices *dataflow.Collection[model.ImportVertex[K]],
	edges *dataflow.Collection[model.ImportEdge[K]],
	o options,
) ([]model.GraphHead, map[string]id.ID, error) {
	emitKeys := func(graphs []string, emit func(string)) {
		if len(graphs) == 0 {
			emit("")
			return
		}
		for _, g := range graphs {
			emit(g)
		}
	}

	vk, err := dataflow.FlatMap(ctx, vertices, func(v model.ImportVertex[K], emit func(string)) error {
		emitKeys(v.Graphs, emit)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	ek, err := dataflow.FlatMap(ctx, edges, func(e model.ImportEdge[K], emit func(string)) error {
		emitKeys(e.Graphs, emit)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	distinct, err := dataflow.DistinctBy(ctx, dataflow.Union(vk, ek), func(s string) string { return s }, dataflow.KeepFirst)
	if err != nil {
		return nil, nil, err
	}

	keys := distinct.Collect()
	if len(keys) == 0 {
		keys = []string{""}
	}
	slices.Sort(keys)

	heads := make([]model.GraphHead, 0, len(keys))
	ids := make(map[string]id.ID, len(keys))
	for _, k := range keys {
		hid, err := o.generator.Next()
		if err != nil {
			return nil, nil, err
		}
		props := model.Properties{}
		if k != "" {
			props.Set(GraphKeyProperty, model.String(k))
		}
		heads = append(heads, model.GraphHead{ID: hid, Label: o.graphLabel, Properties: props})
		ids[k] = hid
	}
	return heads, ids, nil
}

func sameImportVertex[K comparable](a, b model.ImportVertex[K]) bool {
	return a.Label == b.Label && a.Properties.Equal(b.Properties) && slices.Equal(a.Graphs, b.Graphs)
}
