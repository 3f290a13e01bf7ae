package codec

import "encoding/json"

// JSON encodes property payloads with encoding/json. It is slower than
// GoJSON and exists for readers that verify frames against the standard
// decoder.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name is the identifier stored in frame headers.
func (JSON) Name() string { return "json" }

// Default is the codec frames are written with unless WithCodec says
// otherwise.
var Default Codec = GoJSON{}
