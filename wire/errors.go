package wire

import "errors"

var (
	// ErrBadMagic is returned when a frame does not start with "GFWB".
	ErrBadMagic = errors.New("wire: bad magic")
	// ErrUnsupportedVersion is returned for frames of an unknown version.
	ErrUnsupportedVersion = errors.New("wire: unsupported version")
	// ErrKindMismatch is returned when a frame holds another element kind
	// than requested.
	ErrKindMismatch = errors.New("wire: element kind mismatch")
	// ErrUnknownCodec is returned when the frame names an unknown codec.
	ErrUnknownCodec = errors.New("wire: unknown codec")
	// ErrUnknownCompression is returned for an unknown compression byte.
	ErrUnknownCompression = errors.New("wire: unknown compression")
	// ErrChecksumMismatch is returned when the payload CRC32C does not match.
	ErrChecksumMismatch = errors.New("wire: checksum mismatch")
	// ErrCorrupt is returned when the payload cannot be parsed.
	ErrCorrupt = errors.New("wire: corrupt payload")
	// ErrFrameTooLarge is returned when a frame exceeds MaxPayloadSize.
	ErrFrameTooLarge = errors.New("wire: frame too large")
)
