package operator

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphflow/id"
)

var (
	// ErrNoGraphs is returned when Combine is called without input graphs.
	ErrNoGraphs = errors.New("operator: no input graphs")

	// ErrDuplicateElement is returned under RejectDuplicates when two inputs
	// contain an element with the same ID.
	ErrDuplicateElement = errors.New("operator: duplicate element")

	// ErrConflictingDuplicate is returned under MergeMembership when two
	// elements share an ID but differ in label, properties or endpoints.
	ErrConflictingDuplicate = errors.New("operator: conflicting duplicate element")
)

// ConflictError reports an element ID found with different data in two inputs.
type ConflictError struct {
	Kind string // "vertex" or "edge"
	ID   id.ID

	cause error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.ID, e.cause)
}

func (e *ConflictError) Unwrap() error { return e.cause }

func newConflictError(kind string, elem id.ID, policy DuplicatePolicy) error {
	if policy == RejectDuplicates {
		return &ConflictError{Kind: kind, ID: elem, cause: ErrDuplicateElement}
	}
	return &ConflictError{Kind: kind, ID: elem, cause: ErrConflictingDuplicate}
}
