package model

import "errors"

var (
	// ErrInvalidKind is returned when a property value carries an unknown kind.
	ErrInvalidKind = errors.New("model: invalid property kind")

	// ErrGraphNotFound is returned when a graph head ID is not part of a collection.
	ErrGraphNotFound = errors.New("model: graph not found")

	// ErrReferentialIntegrity is returned when an edge references a vertex
	// that is not part of the graph.
	ErrReferentialIntegrity = errors.New("model: referential integrity violation")

	// ErrMembership is returned when an element of a logical graph does not
	// list the graph head in its membership.
	ErrMembership = errors.New("model: element is not a member of the graph")
)
