package id

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"iter"
	"slices"
)

// Set is a collection of distinct IDs.
//
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation; each partition owns its own instance.
type Set struct {
	m map[ID]struct{}
}

// NewSet returns a set holding the given IDs.
func NewSet(ids ...ID) *Set {
	s := &Set{m: make(map[ID]struct{}, len(ids))}
	s.AddAll(ids...)
	return s
}

// SetFromUint64s returns a set of FromUint64(seed) for every seed.
func SetFromUint64s(seeds ...uint64) *Set {
	s := &Set{m: make(map[ID]struct{}, len(seeds))}
	for _, n := range seeds {
		s.Add(FromUint64(n))
	}
	return s
}

func (s *Set) init() {
	if s.m == nil {
		s.m = make(map[ID]struct{})
	}
}

// Add inserts id. Adding an existing id is a no-op.
func (s *Set) Add(id ID) {
	s.init()
	s.m[id] = struct{}{}
}

// AddAll inserts every id.
func (s *Set) AddAll(ids ...ID) {
	s.init()
	for _, id := range ids {
		s.m[id] = struct{}{}
	}
}

// AddSet inserts every element of other.
func (s *Set) AddSet(other *Set) {
	if other == nil {
		return
	}
	s.init()
	for id := range other.m {
		s.m[id] = struct{}{}
	}
}

// Remove deletes id if present.
func (s *Set) Remove(id ID) {
	if s == nil {
		return
	}
	delete(s.m, id)
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[id]
	return ok
}

// ContainsAll reports whether every id is in the set.
// It is true for an empty argument list.
func (s *Set) ContainsAll(ids ...ID) bool {
	for _, id := range ids {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one id is in the set.
// It is false for an empty argument list.
func (s *Set) ContainsAny(ids ...ID) bool {
	for _, id := range ids {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

// ContainsAllOf reports whether every element of other is in the set.
func (s *Set) ContainsAllOf(other *Set) bool {
	if other == nil {
		return true
	}
	for id := range other.m {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// ContainsAnyOf reports whether at least one element of other is in the set.
func (s *Set) ContainsAnyOf(other *Set) bool {
	if s == nil || other == nil {
		return false
	}
	small, large := other, s
	if s.Len() < other.Len() {
		small, large = s, other
	}
	for id := range small.m {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct IDs.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// IsEmpty reports whether Len() == 0.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// Clear removes all elements.
func (s *Set) Clear() {
	if s == nil {
		return
	}
	clear(s.m)
}

// Slice returns a snapshot of the elements. The order is unspecified and may
// differ between calls.
func (s *Set) Slice() []ID {
	if s == nil {
		return nil
	}
	out := make([]ID, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	return out
}

// Sorted returns a snapshot of the elements in ascending order.
func (s *Set) Sorted() []ID {
	out := s.Slice()
	slices.SortFunc(out, Compare)
	return out
}

// All returns an iterator over the elements for use with range.
func (s *Set) All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if s == nil {
			return
		}
		for id := range s.m {
			if !yield(id) {
				return
			}
		}
	}
}

// Iterator returns a single-pass iterator over a snapshot of the elements
// taken now. Later mutations of the set are not observed.
func (s *Set) Iterator() *Iterator {
	return &Iterator{ids: s.Slice()}
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := &Set{m: make(map[ID]struct{}, s.Len())}
	c.AddSet(s)
	return c
}

// Equal reports whether both sets hold the same elements.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	return s.ContainsAllOf(other)
}

// Union returns a new set holding the elements of a and b.
func Union(a, b *Set) *Set {
	u := &Set{m: make(map[ID]struct{}, a.Len()+b.Len())}
	u.AddSet(a)
	u.AddSet(b)
	return u
}

// Intersect returns a new set holding the elements present in both a and b.
func Intersect(a, b *Set) *Set {
	out := &Set{m: make(map[ID]struct{})}
	small, large := a, b
	if b.Len() < a.Len() {
		small, large = b, a
	}
	for id := range small.All() {
		if large.Contains(id) {
			out.m[id] = struct{}{}
		}
	}
	return out
}

// EncodedSize returns the number of bytes WriteTo produces.
func (s *Set) EncodedSize() int {
	return 4 + s.Len()*Size
}

// WriteTo writes the set as [u32 count][count x 12-byte ID] in iteration order.
// It implements io.WriterTo.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(s.Len()))
	n, err := bw.Write(hdr[:])
	written := int64(n)
	if err != nil {
		return written, err
	}
	for id := range s.All() {
		n, err = bw.Write(id[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// ReadFrom replaces the content of s with a set decoded from r. Exactly
// 4 + count*12 bytes are consumed. It implements io.ReaderFrom.
func (s *Set) ReadFrom(r io.Reader) (int64, error) {
	var hdr [4]byte
	n, err := io.ReadFull(r, hdr[:])
	read := int64(n)
	if err != nil {
		return read, &DecodeError{Offset: read, cause: noEOF(err)}
	}
	count := binary.BigEndian.Uint32(hdr[:])

	// Cap the up-front allocation; a corrupt count must not reserve gigabytes.
	s.m = make(map[ID]struct{}, min(count, 1<<16))

	var id ID
	for range count {
		n, err = io.ReadFull(r, id[:])
		read += int64(n)
		if err != nil {
			return read, &DecodeError{Offset: read, cause: noEOF(err)}
		}
		s.m[id] = struct{}{}
	}
	return read, nil
}

// AppendBinary appends the encoded set to b.
func (s *Set) AppendBinary(b []byte) ([]byte, error) {
	b = binary.BigEndian.AppendUint32(b, uint32(s.Len()))
	for id := range s.All() {
		b = append(b, id[:]...)
	}
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Set) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, s.EncodedSize()))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// Trailing bytes after the encoded set are rejected.
func (s *Set) UnmarshalBinary(data []byte) error {
	rest, err := s.decode(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return &DecodeError{Offset: int64(len(data) - len(rest)), cause: errors.New("trailing bytes")}
	}
	return nil
}

// DecodeSet decodes one set from the front of data and returns the
// remaining bytes.
func DecodeSet(data []byte) (*Set, []byte, error) {
	s := &Set{}
	rest, err := s.decode(data)
	if err != nil {
		return nil, nil, err
	}
	return s, rest, nil
}

func (s *Set) decode(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, &DecodeError{Offset: 0, cause: io.ErrUnexpectedEOF}
	}
	count := binary.BigEndian.Uint32(data)
	body := data[4:]
	need := uint64(count) * Size
	if uint64(len(body)) < need {
		return nil, &DecodeError{Offset: int64(len(data)), cause: io.ErrUnexpectedEOF}
	}
	s.m = make(map[ID]struct{}, count)
	for i := range count {
		var id ID
		copy(id[:], body[i*Size:(i+1)*Size])
		s.m[id] = struct{}{}
	}
	return body[need:], nil
}

func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Iterator walks a snapshot of a Set once.
type Iterator struct {
	ids []ID
	pos int
}

// HasNext reports whether Next will return another element.
func (it *Iterator) HasNext() bool {
	return it.pos < len(it.ids)
}

// Next returns the next element, or ErrEndOfSequence when exhausted.
func (it *Iterator) Next() (ID, error) {
	if it.pos >= len(it.ids) {
		return Nil, ErrEndOfSequence
	}
	id := it.ids[it.pos]
	it.pos++
	return id, nil
}
