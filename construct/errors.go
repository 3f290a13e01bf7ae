package construct

import (
	"fmt"

	"github.com/hupe1980/graphflow/model"
)

// ErrReferentialIntegrity is wrapped by DanglingEdgeError.
var ErrReferentialIntegrity = model.ErrReferentialIntegrity

// Side names an edge endpoint.
type Side string

const (
	// Source is the edge source.
	Source Side = "source"
	// Target is the edge target.
	Target Side = "target"
)

// DanglingEdgeError reports an edge whose endpoint does not match any vertex.
type DanglingEdgeError struct {
	Seq        uint64
	Side       Side
	ExternalID any
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("%v: edge %d %s %v not found", ErrReferentialIntegrity, e.Seq, e.Side, e.ExternalID)
}

func (e *DanglingEdgeError) Unwrap() error { return ErrReferentialIntegrity }
