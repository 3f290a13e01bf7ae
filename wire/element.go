package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/graphflow/codec"
	"github.com/hupe1980/graphflow/id"
	"github.com/hupe1980/graphflow/model"
)

// Smallest encodings of one element: IDs, two zero lengths and, for
// vertices and edges, an empty membership set.
const (
	minHeadSize   = id.Size + 2
	minVertexSize = minHeadSize + 4
	minEdgeSize   = 3*id.Size + 2 + 4
)

// checkCount rejects a header count the payload cannot possibly hold, so a
// corrupt count never drives the allocation.
func checkCount(count uint32, raw []byte, minSize int) error {
	if uint64(count)*uint64(minSize) > uint64(len(raw)) {
		return fmt.Errorf("%w: count %d exceeds payload of %d bytes", ErrCorrupt, count, len(raw))
	}
	return nil
}

// EncodeHeads writes heads as one frame.
func EncodeHeads(w io.Writer, heads []model.GraphHead, optFns ...Option) error {
	o := applyOptions(optFns)
	var raw []byte
	for _, h := range heads {
		var err error
		raw = append(raw, h.ID[:]...)
		if raw, err = appendData(raw, h.Label, h.Properties, o.codec); err != nil {
			return err
		}
	}
	return writeFrame(w, KindHeads, len(heads), raw, o)
}

// DecodeHeads reads one frame of heads.
func DecodeHeads(r io.Reader) ([]model.GraphHead, error) {
	h, raw, err := readFrame(r, KindHeads)
	if err != nil {
		return nil, err
	}
	if err := checkCount(h.count, raw, minHeadSize); err != nil {
		return nil, err
	}
	d := decoder{buf: raw, codec: h.codec}
	out := make([]model.GraphHead, 0, h.count)
	for range h.count {
		if d.err != nil {
			break
		}
		var g model.GraphHead
		g.ID = d.id()
		g.Label, g.Properties = d.data()
		out = append(out, g)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeVertices writes vertices as one frame.
func EncodeVertices(w io.Writer, vertices []model.Vertex, optFns ...Option) error {
	o := applyOptions(optFns)
	var raw []byte
	for _, v := range vertices {
		var err error
		raw = append(raw, v.ID[:]...)
		if raw, err = appendData(raw, v.Label, v.Properties, o.codec); err != nil {
			return err
		}
		if raw, err = appendMembership(raw, v.GraphIDs); err != nil {
			return err
		}
	}
	return writeFrame(w, KindVertices, len(vertices), raw, o)
}

// DecodeVertices reads one frame of vertices.
func DecodeVertices(r io.Reader) ([]model.Vertex, error) {
	h, raw, err := readFrame(r, KindVertices)
	if err != nil {
		return nil, err
	}
	if err := checkCount(h.count, raw, minVertexSize); err != nil {
		return nil, err
	}
	d := decoder{buf: raw, codec: h.codec}
	out := make([]model.Vertex, 0, h.count)
	for range h.count {
		if d.err != nil {
			break
		}
		var v model.Vertex
		v.ID = d.id()
		v.Label, v.Properties = d.data()
		v.GraphIDs = d.membership()
		out = append(out, v)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeEdges writes edges as one frame.
func EncodeEdges(w io.Writer, edges []model.Edge, optFns ...Option) error {
	o := applyOptions(optFns)
	var raw []byte
	for _, e := range edges {
		var err error
		raw = append(raw, e.ID[:]...)
		raw = append(raw, e.SourceID[:]...)
		raw = append(raw, e.TargetID[:]...)
		if raw, err = appendData(raw, e.Label, e.Properties, o.codec); err != nil {
			return err
		}
		if raw, err = appendMembership(raw, e.GraphIDs); err != nil {
			return err
		}
	}
	return writeFrame(w, KindEdges, len(edges), raw, o)
}

// DecodeEdges reads one frame of edges.
func DecodeEdges(r io.Reader) ([]model.Edge, error) {
	h, raw, err := readFrame(r, KindEdges)
	if err != nil {
		return nil, err
	}
	if err := checkCount(h.count, raw, minEdgeSize); err != nil {
		return nil, err
	}
	d := decoder{buf: raw, codec: h.codec}
	out := make([]model.Edge, 0, h.count)
	for range h.count {
		if d.err != nil {
			break
		}
		var e model.Edge
		e.ID = d.id()
		e.SourceID = d.id()
		e.TargetID = d.id()
		e.Label, e.Properties = d.data()
		e.GraphIDs = d.membership()
		out = append(out, e)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return out, nil
}

func appendData(b []byte, label string, props model.Properties, c codec.Codec) ([]byte, error) {
	b = binary.AppendUvarint(b, uint64(len(label)))
	b = append(b, label...)
	enc, err := codec.MarshalProperties(c, props)
	if err != nil {
		return nil, err
	}
	b = binary.AppendUvarint(b, uint64(len(enc)))
	return append(b, enc...), nil
}

func appendMembership(b []byte, s *id.Set) ([]byte, error) {
	if s == nil {
		s = id.NewSet()
	}
	return s.AppendBinary(b)
}

// decoder reads elements from a raw payload. The first error sticks and
// turns every later read into a no-op.
type decoder struct {
	buf   []byte
	off   int
	codec codec.Codec
	err   error
}

func (d *decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: offset %d: %s", ErrCorrupt, d.off, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) id() id.ID {
	var v id.ID
	if d.err != nil {
		return v
	}
	if len(d.buf)-d.off < id.Size {
		d.fail("short id")
		return v
	}
	copy(v[:], d.buf[d.off:])
	d.off += id.Size
	return v
}

func (d *decoder) bytes() []byte {
	if d.err != nil {
		return nil
	}
	n, k := binary.Uvarint(d.buf[d.off:])
	if k <= 0 {
		d.fail("bad length")
		return nil
	}
	d.off += k
	if n > uint64(len(d.buf)-d.off) {
		d.fail("length %d exceeds payload", n)
		return nil
	}
	out := d.buf[d.off : d.off+int(n)]
	d.off += int(n)
	return out
}

func (d *decoder) data() (string, model.Properties) {
	label := string(d.bytes())
	enc := d.bytes()
	if d.err != nil {
		return label, nil
	}
	props, err := codec.UnmarshalProperties(d.codec, enc)
	if err != nil {
		d.fail("properties: %v", err)
		return label, nil
	}
	return label, props
}

func (d *decoder) membership() *id.Set {
	if d.err != nil {
		return nil
	}
	s, rest, err := id.DecodeSet(d.buf[d.off:])
	if err != nil {
		d.fail("membership: %v", err)
		return nil
	}
	d.off = len(d.buf) - len(rest)
	return s
}

func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if d.off != len(d.buf) {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(d.buf)-d.off)
	}
	return nil
}
