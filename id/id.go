package id

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// Size is the encoded width of an ID in bytes.
const Size = 12

// ID is a globally unique, totally ordered identifier.
// The zero value is Nil and never produced by a Generator.
type ID [Size]byte

// Nil is the zero ID.
var Nil ID

// FromUint64 builds a deterministic ID that embeds n in the low-order eight
// bytes; the upper four bytes are zero. The order of such IDs matches the
// numeric order of n. It is meant for reproducible inputs, not uniqueness.
func FromUint64(n uint64) ID {
	var id ID
	binary.BigEndian.PutUint64(id[4:], n)
	return id
}

// FromBytes copies b into an ID. b must be exactly Size bytes long.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != Size {
		return Nil, ErrInvalidLength
	}
	copy(id[:], b)
	return id, nil
}

// Parse decodes the 24 character hex form produced by String.
func Parse(s string) (ID, error) {
	var id ID
	if len(s) != 2*Size {
		return Nil, ErrInvalidLength
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Nil, err
	}
	return id, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Compare returns -1, 0 or +1 comparing a and b byte-wise.
func Compare(a, b ID) int {
	return bytes.Compare(a[:], b[:])
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	return Compare(id, other) < 0
}

// IsZero reports whether id is Nil.
func (id ID) IsZero() bool {
	return id == Nil
}

// Timestamp returns the creation second encoded in the ID.
func (id ID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0).UTC()
}

// Bytes returns a copy of the encoded form.
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// String returns the lowercase hex form.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	b := make([]byte, 2*Size)
	hex.Encode(b, id[:])
	return b, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id ID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	parsed, err := FromBytes(data)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
