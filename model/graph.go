package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/graphflow/dataflow"
	"github.com/hupe1980/graphflow/id"
)

// LogicalGraph is a single graph: one head plus the vertices and edges that
// list the head in their membership.
type LogicalGraph struct {
	Head     GraphHead
	Vertices *dataflow.Collection[Vertex]
	Edges    *dataflow.Collection[Edge]
}

// Env returns the execution environment of the graph's collections.
func (g *LogicalGraph) Env() *dataflow.Env {
	return g.Vertices.Env()
}

// VertexIDs returns the IDs of all vertices.
func (g *LogicalGraph) VertexIDs(ctx context.Context) (*dataflow.Collection[id.ID], error) {
	return dataflow.Map(ctx, g.Vertices, func(v Vertex) (id.ID, error) { return v.ID, nil })
}

// Validate checks that every element is a member of the graph and that
// every edge endpoint is one of the graph's vertices.
func (g *LogicalGraph) Validate(ctx context.Context) error {
	head := g.Head.ID

	_, err := dataflow.Map(ctx, g.Vertices, func(v Vertex) (struct{}, error) {
		if !v.GraphIDs.Contains(head) {
			return struct{}{}, fmt.Errorf("%w: vertex %s, graph %s", ErrMembership, v.ID, head)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	_, err = dataflow.Map(ctx, g.Edges, func(e Edge) (struct{}, error) {
		if !e.GraphIDs.Contains(head) {
			return struct{}{}, fmt.Errorf("%w: edge %s, graph %s", ErrMembership, e.ID, head)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	return checkEndpoints(ctx, g.Vertices, g.Edges)
}

// checkEndpoints fails on the first edge whose source or target is missing.
func checkEndpoints(ctx context.Context, vertices *dataflow.Collection[Vertex], edges *dataflow.Collection[Edge]) error {
	type endpoint struct {
		edge   id.ID
		vertex id.ID
		side   string
	}
	ends, err := dataflow.FlatMap(ctx, edges, func(e Edge, emit func(endpoint)) error {
		emit(endpoint{edge: e.ID, vertex: e.SourceID, side: "source"})
		emit(endpoint{edge: e.ID, vertex: e.TargetID, side: "target"})
		return nil
	})
	if err != nil {
		return err
	}

	_, err = dataflow.LeftOuterJoin(ctx, ends, vertices,
		func(ep endpoint) id.ID { return ep.vertex },
		func(v Vertex) id.ID { return v.ID },
		func(ep endpoint, _ Vertex, ok bool) (struct{}, error) {
			if !ok {
				return struct{}{}, fmt.Errorf("%w: edge %s %s %s", ErrReferentialIntegrity, ep.edge, ep.side, ep.vertex)
			}
			return struct{}{}, nil
		})
	return err
}

// GraphCollection is a set of logical graphs over shared vertex and edge
// collections.
type GraphCollection struct {
	Heads    *dataflow.Collection[GraphHead]
	Vertices *dataflow.Collection[Vertex]
	Edges    *dataflow.Collection[Edge]
}

// Env returns the execution environment of the collection.
func (c *GraphCollection) Env() *dataflow.Env {
	return c.Heads.Env()
}

// Graph extracts the logical graph with the given head ID.
func (c *GraphCollection) Graph(ctx context.Context, headID id.ID) (*LogicalGraph, error) {
	heads, err := dataflow.Filter(ctx, c.Heads, func(h GraphHead) bool { return h.ID == headID })
	if err != nil {
		return nil, err
	}
	found := heads.Collect()
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGraphNotFound, headID)
	}

	vertices, err := dataflow.Filter(ctx, c.Vertices, func(v Vertex) bool { return v.GraphIDs.Contains(headID) })
	if err != nil {
		return nil, err
	}
	edges, err := dataflow.Filter(ctx, c.Edges, func(e Edge) bool { return e.GraphIDs.Contains(headID) })
	if err != nil {
		return nil, err
	}
	return &LogicalGraph{Head: found[0], Vertices: vertices, Edges: edges}, nil
}

// Validate checks referential integrity of all edges and that every
// element belongs to at least one head of the collection.
func (c *GraphCollection) Validate(ctx context.Context) error {
	heads := id.NewSet()
	for _, h := range c.Heads.Collect() {
		heads.Add(h.ID)
	}

	_, err := dataflow.Map(ctx, c.Vertices, func(v Vertex) (struct{}, error) {
		if !heads.ContainsAnyOf(v.GraphIDs) {
			return struct{}{}, fmt.Errorf("%w: vertex %s", ErrMembership, v.ID)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	_, err = dataflow.Map(ctx, c.Edges, func(e Edge) (struct{}, error) {
		if !heads.ContainsAnyOf(e.GraphIDs) {
			return struct{}{}, fmt.Errorf("%w: edge %s", ErrMembership, e.ID)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}
	return checkEndpoints(ctx, c.Vertices, c.Edges)
}
