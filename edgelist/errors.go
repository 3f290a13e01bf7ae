package edgelist

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is wrapped by MalformedRecordError.
var ErrMalformedRecord = errors.New("edgelist: malformed record")

// MalformedRecordError reports a line that is not a valid edge record.
type MalformedRecordError struct {
	Line   int // 1-based; 0 when parsing a single line
	Raw    string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s: %q", ErrMalformedRecord, e.Line, e.Reason, e.Raw)
	}
	return fmt.Sprintf("%v: %s: %q", ErrMalformedRecord, e.Reason, e.Raw)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }
