package graphflow

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphflow/blobstore"
	"github.com/hupe1980/graphflow/construct"
	"github.com/hupe1980/graphflow/edgelist"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
	"github.com/hupe1980/graphflow/operator"
	"github.com/hupe1980/graphflow/wire"
)

var (
	// ErrNotFound is returned when an input blob or a graph does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input records cannot form a
	// consistent graph.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorrupt is returned when encoded data fails validation.
	ErrCorrupt = errors.New("corrupt data")
)

// Re-exported sentinels of the subpackages.
var (
	ErrCounterExhausted     = id.ErrCounterExhausted
	ErrEndOfSequence        = id.ErrEndOfSequence
	ErrReferentialIntegrity = model.ErrReferentialIntegrity
	ErrGraphNotFound        = model.ErrGraphNotFound
	ErrMalformedRecord      = edgelist.ErrMalformedRecord
	ErrNoGraphs             = operator.ErrNoGraphs
	ErrConflictingDuplicate = operator.ErrConflictingDuplicate
	ErrDuplicateElement     = operator.ErrDuplicateElement
)

// DanglingEdgeError is construct.DanglingEdgeError.
type DanglingEdgeError = construct.DanglingEdgeError

// MalformedRecordError is edgelist.MalformedRecordError.
type MalformedRecordError = edgelist.MalformedRecordError

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, model.ErrGraphNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Input normalization.
	switch {
	case errors.Is(err, model.ErrReferentialIntegrity),
		errors.Is(err, model.ErrMembership),
		errors.Is(err, edgelist.ErrMalformedRecord),
		errors.Is(err, operator.ErrNoGraphs),
		errors.Is(err, operator.ErrDuplicateElement),
		errors.Is(err, operator.ErrConflictingDuplicate):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var de *id.DecodeError
	if errors.As(err, &de) || errors.Is(err, wire.ErrCorrupt) || errors.Is(err, wire.ErrChecksumMismatch) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return err
}
