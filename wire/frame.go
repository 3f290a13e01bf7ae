package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/graphflow/codec"
	"github.com/hupe1980/graphflow/internal/hash"
)

const (
	magic = "GFWB"

	// Version is the frame format version written by this package.
	Version uint8 = 1

	// MaxPayloadSize bounds raw and stored payload sizes accepted on decode.
	MaxPayloadSize = 1 << 30
)

// Kind is the element kind held by a frame.
type Kind uint8

const (
	// KindHeads marks a frame of graph heads.
	KindHeads Kind = 1
	// KindVertices marks a frame of vertices.
	KindVertices Kind = 2
	// KindEdges marks a frame of edges.
	KindEdges Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeads:
		return "heads"
	case KindVertices:
		return "vertices"
	case KindEdges:
		return "edges"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

type options struct {
	compression Compression
	codec       codec.Codec
}

// Option configures encoding.
type Option func(*options)

// WithCompression sets the payload compression. Default: CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec sets the property codec. Default: codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{compression: CompressionNone, codec: codec.Default}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

// header is the decoded fixed part of a frame.
type header struct {
	kind        Kind
	compression Compression
	codec       codec.Codec
	count       uint32
	rawLen      uint32
	payloadLen  uint32
	crc         uint32
}

func writeFrame(w io.Writer, kind Kind, count int, raw []byte, o options) error {
	name := o.codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("wire: codec name %q too long", name)
	}
	stored, comp, err := compress(raw, o.compression)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(magic) + 4 + len(name) + 16 + len(stored))
	buf.WriteString(magic)
	buf.WriteByte(Version)
	buf.WriteByte(byte(kind))
	buf.WriteByte(byte(comp))
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)

	var fixed [16]byte
	binary.BigEndian.PutUint32(fixed[0:], uint32(count))
	binary.BigEndian.PutUint32(fixed[4:], uint32(len(raw)))
	binary.BigEndian.PutUint32(fixed[8:], uint32(len(stored)))
	binary.BigEndian.PutUint32(fixed[12:], hash.CRC32C(stored))
	buf.Write(fixed[:])
	buf.Write(stored)

	_, err = w.Write(buf.Bytes())
	return err
}

func readHeader(r io.Reader) (header, error) {
	var h header

	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return h, err
	}
	if string(pre[:4]) != magic {
		return h, ErrBadMagic
	}
	if pre[4] != Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, pre[4])
	}
	h.kind = Kind(pre[5])
	h.compression = Compression(pre[6])
	if h.compression > CompressionZSTD {
		return h, fmt.Errorf("%w: %d", ErrUnknownCompression, pre[6])
	}

	name := make([]byte, pre[7])
	if _, err := io.ReadFull(r, name); err != nil {
		return h, noEOF(err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return h, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	h.codec = c

	var fixed [16]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return h, noEOF(err)
	}
	h.count = binary.BigEndian.Uint32(fixed[0:])
	h.rawLen = binary.BigEndian.Uint32(fixed[4:])
	h.payloadLen = binary.BigEndian.Uint32(fixed[8:])
	h.crc = binary.BigEndian.Uint32(fixed[12:])
	if h.rawLen > MaxPayloadSize || h.payloadLen > MaxPayloadSize {
		return h, ErrFrameTooLarge
	}
	return h, nil
}

// readFrame reads one frame of the wanted kind and returns its raw payload.
func readFrame(r io.Reader, want Kind) (header, []byte, error) {
	h, err := readHeader(r)
	if err != nil {
		return h, nil, err
	}
	if h.kind != want {
		return h, nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, h.kind, want)
	}

	stored := make([]byte, h.payloadLen)
	if _, err := io.ReadFull(r, stored); err != nil {
		return h, nil, noEOF(err)
	}
	if hash.CRC32C(stored) != h.crc {
		return h, nil, ErrChecksumMismatch
	}

	raw, err := decompress(stored, h.compression, int(h.rawLen))
	if err != nil {
		return h, nil, err
	}
	return h, raw, nil
}

// noEOF reports a frame cut short as io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
