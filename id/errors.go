package id

import (
	"errors"
	"fmt"
)

var (
	// ErrCounterExhausted is returned when a generator would mint more than
	// 2^24 IDs within one second. Minting aborts instead of producing a
	// colliding ID.
	ErrCounterExhausted = errors.New("id: counter exhausted within timestamp window")

	// ErrEndOfSequence is returned by Iterator.Next after the last element.
	ErrEndOfSequence = errors.New("id: end of sequence")

	// ErrInvalidLength is returned when decoding input that is not 12 bytes
	// (or 24 hex characters).
	ErrInvalidLength = errors.New("id: invalid length")
)

// DecodeError reports a failure while reading an encoded Set.
//
// The original underlying error can be accessed via errors.Unwrap.
type DecodeError struct {
	// Offset is the number of bytes consumed before the failure.
	Offset int64
	cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("id: decode set at offset %d: %v", e.Offset, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }
