package model

import (
	"github.com/hupe1980/graphflow/id"
)

// GraphHead holds the identity and data of a logical graph.
type GraphHead struct {
	ID         id.ID
	Label      string
	Properties Properties
}

// Vertex is a graph vertex. GraphIDs lists the heads of the graphs the
// vertex belongs to.
type Vertex struct {
	ID         id.ID
	Label      string
	Properties Properties
	GraphIDs   *id.Set
}

// Clone returns a deep copy of v.
func (v Vertex) Clone() Vertex {
	v.Properties = v.Properties.Clone()
	v.GraphIDs = cloneSet(v.GraphIDs)
	return v
}

// SameData reports whether v and o carry the same label and properties.
func (v Vertex) SameData(o Vertex) bool {
	return v.Label == o.Label && v.Properties.Equal(o.Properties)
}

// Edge is a directed graph edge between two vertex IDs.
type Edge struct {
	ID         id.ID
	Label      string
	SourceID   id.ID
	TargetID   id.ID
	Properties Properties
	GraphIDs   *id.Set
}

// Clone returns a deep copy of e.
func (e Edge) Clone() Edge {
	e.Properties = e.Properties.Clone()
	e.GraphIDs = cloneSet(e.GraphIDs)
	return e
}

// SameData reports whether e and o carry the same endpoints, label and
// properties.
func (e Edge) SameData(o Edge) bool {
	return e.SourceID == o.SourceID && e.TargetID == o.TargetID &&
		e.Label == o.Label && e.Properties.Equal(o.Properties)
}

// ImportVertex is a vertex keyed by an external identifier.
type ImportVertex[K comparable] struct {
	ExternalID K
	Label      string
	Properties Properties
	// Graphs names the graph keys the vertex belongs to. Empty means the
	// default graph.
	Graphs []string
}

// ImportEdge is an edge whose endpoints are external vertex identifiers.
// Seq identifies the record in error reports.
type ImportEdge[K comparable] struct {
	Seq        uint64
	SourceID   K
	TargetID   K
	Label      string
	Properties Properties
	Graphs     []string
}

func cloneSet(s *id.Set) *id.Set {
	if s == nil {
		return id.NewSet()
	}
	return s.Clone()
}
