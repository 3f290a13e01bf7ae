package operator

import (
	"context"
	"io"
	"log/slog"

	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
)

// DefaultCombinedLabel is the label of the graph head created by Combine and
// ReduceCombination.
const DefaultCombinedLabel = "graph"

// DuplicatePolicy decides how elements with the same ID in several inputs
// are reconciled.
type DuplicatePolicy int

const (
	// MergeMembership unions the membership sets of equal elements. Elements
	// that share an ID but differ in data fail with ErrConflictingDuplicate.
	MergeMembership DuplicatePolicy = iota
	// RejectDuplicates fails with ErrDuplicateElement on any shared ID.
	RejectDuplicates
)

type options struct {
	generator *id.Generator
	policy    DuplicatePolicy
	label     string
	logger    *slog.Logger
}

// Option configures combination.
type Option func(*options)

// WithGenerator sets the generator used to mint the new graph head ID.
func WithGenerator(g *id.Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithDuplicatePolicy sets how duplicate element IDs are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithCombinedLabel sets the label of the new graph head.
func WithCombinedLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithLogger sets the logger. Pass nil to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		generator: id.Default(),
		policy:    MergeMembership,
		label:     DefaultCombinedLabel,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Combine unions the vertices and edges of graphs into a new logical graph
// with a freshly minted head. Every resulting element lists the new head in
// its membership in addition to the memberships it already had.
//
// The result does not depend on the order of graphs.
func Combine(ctx context.Context, graphs []*model.LogicalGraph, optFns ...Option) (*model.LogicalGraph, error) {
	if len(graphs) == 0 {
		return nil, ErrNoGraphs
	}
	o := applyOptions(optFns)

	vs := make([]*dataflow.Collection[model.Vertex], len(graphs))
	es := make([]*dataflow.Collection[model.Edge], len(graphs))
	for i, g := range graphs {
		vs[i] = g.Vertices
		es[i] = g.Edges
	}

	g, err := combine(ctx, dataflow.Union(vs[0], vs[1:]...), dataflow.Union(es[0], es[1:]...), o)
	if err != nil {
		return nil, err
	}
	o.logger.DebugContext(ctx, "graphs combined", "inputs", len(graphs), "head", g.Head.ID.String())
	return g, nil
}

// ReduceCombination combines every graph of coll into one logical graph.
// Elements that belong to several graphs appear once in the result.
func ReduceCombination(ctx context.Context, coll *model.GraphCollection, optFns ...Option) (*model.LogicalGraph, error) {
	o := applyOptions(optFns)

	g, err := combine(ctx, coll.Vertices, coll.Edges, o)
	if err != nil {
		return nil, err
	}
	o.logger.DebugContext(ctx, "graph collection reduced", "graphs", coll.Heads.Count(), "head", g.Head.ID.String())
	return g, nil
}

func combine(ctx context.Context, vertices *dataflow.Collection[model.Vertex], edges *dataflow.Collection[model.Edge], o options) (*model.LogicalGraph, error) {
	headID, err := o.generator.Next()
	if err != nil {
		return nil, err
	}
	head := model.GraphHead{ID: headID, Label: o.label, Properties: model.Properties{}}

	mergedVertices, err := dataflow.GroupReduce(ctx, vertices,
		func(v model.Vertex) id.ID { return v.ID },
		func(vid id.ID, group []model.Vertex) (model.Vertex, error) {
			out := group[0].Clone()
			for _, v := range group[1:] {
				if o.policy == RejectDuplicates || !out.SameData(v) {
					return model.Vertex{}, newConflictError("vertex", vid, o.policy)
				}
				out.GraphIDs.AddSet(v.GraphIDs)
			}
			out.GraphIDs.Add(headID)
			return out, nil
		})
	if err != nil {
		return nil, err
	}

	mergedEdges, err := dataflow.GroupReduce(ctx, edges,
		func(e model.Edge) id.ID { return e.ID },
		func(eid id.ID, group []model.Edge) (model.Edge, error) {
			out := group[0].Clone()
			for _, e := range group[1:] {
				if o.policy == RejectDuplicates || !out.SameData(e) {
					return model.Edge{}, newConflictError("edge", eid, o.policy)
				}
				out.GraphIDs.AddSet(e.GraphIDs)
			}
			out.GraphIDs.Add(headID)
			return out, nil
		})
	if err != nil {
		return nil, err
	}

	return &model.LogicalGraph{Head: head, Vertices: mergedVertices, Edges: mergedEdges}, nil
}
