package operator

import (
	"context"

	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
)

// WithCount pairs a value with a count.
type WithCount[K comparable] struct {
	Value K
	Count int64
}

// Direction selects which edges count towards a vertex degree.
type Direction int

const (
	// Outgoing counts edges whose source is the vertex.
	Outgoing Direction = iota
	// Incoming counts edges whose target is the vertex.
	Incoming
	// Both counts outgoing and incoming edges. A self loop counts twice.
	Both
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "outgoing"
	case Incoming:
		return "incoming"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// EdgeValueDistribution counts the edges per value returned by selector.
// Values that no edge produces are absent from the result.
func EdgeValueDistribution[K comparable](ctx context.Context, edges *dataflow.Collection[model.Edge], selector func(model.Edge) K) (*dataflow.Collection[WithCount[K]], error) {
	counts, err := dataflow.CountByKey(ctx, edges, selector)
	if err != nil {
		return nil, err
	}
	return dataflow.Map(ctx, counts, func(kc dataflow.KeyCount[K]) (WithCount[K], error) {
		return WithCount[K]{Value: kc.Key, Count: kc.Count}, nil
	})
}

// VertexDegrees returns exactly one (vertex ID, degree) pair per vertex of g.
// Vertices without edges in direction dir have degree 0.
func VertexDegrees(ctx context.Context, g *model.LogicalGraph, dir Direction) (*dataflow.Collection[WithCount[id.ID]], error) {
	var (
		counts *dataflow.Collection[WithCount[id.ID]]
		err    error
	)
	switch dir {
	case Outgoing:
		counts, err = EdgeValueDistribution(ctx, g.Edges, func(e model.Edge) id.ID { return e.SourceID })
	case Incoming:
		counts, err = EdgeValueDistribution(ctx, g.Edges, func(e model.Edge) id.ID { return e.TargetID })
	default:
		var ends *dataflow.Collection[id.ID]
		ends, err = dataflow.FlatMap(ctx, g.Edges, func(e model.Edge, emit func(id.ID)) error {
			emit(e.SourceID)
			emit(e.TargetID)
			return nil
		})
		if err != nil {
			return nil, err
		}
		var kc *dataflow.Collection[dataflow.KeyCount[id.ID]]
		kc, err = dataflow.CountByKey(ctx, ends, func(v id.ID) id.ID { return v })
		if err != nil {
			return nil, err
		}
		counts, err = dataflow.Map(ctx, kc, func(c dataflow.KeyCount[id.ID]) (WithCount[id.ID], error) {
			return WithCount[id.ID]{Value: c.Key, Count: c.Count}, nil
		})
	}
	if err != nil {
		return nil, err
	}

	vertexIDs, err := g.VertexIDs(ctx)
	if err != nil {
		return nil, err
	}

	return dataflow.RightOuterJoin(ctx, counts, vertexIDs,
		func(c WithCount[id.ID]) id.ID { return c.Value },
		func(v id.ID) id.ID { return v },
		func(c WithCount[id.ID], ok bool, v id.ID) (WithCount[id.ID], error) {
			if !ok {
				return WithCount[id.ID]{Value: v}, nil
			}
			return c, nil
		})
}

// OutgoingVertexDegrees returns the out-degree of every vertex of g.
func OutgoingVertexDegrees(ctx context.Context, g *model.LogicalGraph) (*dataflow.Collection[WithCount[id.ID]], error) {
	return VertexDegrees(ctx, g, Outgoing)
}

// IncomingVertexDegrees returns the in-degree of every vertex of g.
func IncomingVertexDegrees(ctx context.Context, g *model.LogicalGraph) (*dataflow.Collection[WithCount[id.ID]], error) {
	return VertexDegrees(ctx, g, Incoming)
}

// DegreeDistribution counts the vertices per degree.
func DegreeDistribution(ctx context.Context, degrees *dataflow.Collection[WithCount[id.ID]]) (*dataflow.Collection[WithCount[int64]], error) {
	counts, err := dataflow.CountByKey(ctx, degrees, func(d WithCount[id.ID]) int64 { return d.Count })
	if err != nil {
		return nil, err
	}
	return dataflow.Map(ctx, counts, func(kc dataflow.KeyCount[int64]) (WithCount[int64], error) {
		return WithCount[int64]{Value: kc.Key, Count: kc.Count}, nil
	})
}
