// Package codec encodes element property payloads.
//
// Exchange frames store the codec name in their header; decoders select the
// codec by that name. Changing a codec's output is a format break.
package codec

import (
	"fmt"

	"github.com/hupe1980/graphflow/model"
)

// Codec turns a property map into a frame payload and back.
//
// A codec must round-trip every property kind exactly, reject payloads
// naming an unknown kind, and keep its output stable for a given Name.
// Frames are encoded from many partitions at once, so implementations must
// be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case JSON{}.Name():
		return JSON{}, true
	case GoJSON{}.Name():
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MarshalProperties encodes props with c. Empty maps encode to nil so
// property-less elements carry no payload. A nil codec means Default.
func MarshalProperties(c Codec, props model.Properties) ([]byte, error) {
	if len(props) == 0 {
		return nil, nil
	}
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("codec %s: marshal properties: %w", c.Name(), err)
	}
	return b, nil
}

// UnmarshalProperties decodes a payload written by MarshalProperties.
// Empty input yields nil properties.
func UnmarshalProperties(c Codec, data []byte) (model.Properties, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if c == nil {
		c = Default
	}
	var props model.Properties
	if err := c.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("codec %s: unmarshal properties: %w", c.Name(), err)
	}
	return props, nil
}
