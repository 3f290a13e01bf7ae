package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes property payloads with github.com/goccy/go-json. Frames it
// writes decode with JSON and the other way round, so readers may switch
// codecs without rewriting stored frames.
type GoJSON struct{}

// Marshal encodes a property map. Property values carry their kind tag, so
// an int and a float of the same magnitude stay distinct after a round trip.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes a payload written by either JSON codec.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name is the identifier stored in frame headers.
func (GoJSON) Name() string { return "go-json" }
