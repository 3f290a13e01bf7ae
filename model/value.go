package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
)

// Kind identifies the concrete type stored in a PropertyValue.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// PropertyValue is a small typed value attached to graph elements.
//
// NOTE: the JSON form is part of the wire format; keep it stable.
type PropertyValue struct {
	Kind Kind    `json:"k"`
	I64  int64   `json:"i,omitempty"`
	F64  float64 `json:"f,omitempty"`
	S    string  `json:"s,omitempty"`
	B    bool    `json:"b,omitempty"`
}

// Null returns a null value.
func Null() PropertyValue { return PropertyValue{Kind: KindNull} }

// Int returns an int64 value.
func Int(v int64) PropertyValue { return PropertyValue{Kind: KindInt, I64: v} }

// Float returns a float64 value.
func Float(v float64) PropertyValue { return PropertyValue{Kind: KindFloat, F64: v} }

// String returns a string value.
func String(v string) PropertyValue { return PropertyValue{Kind: KindString, S: v} }

// Bool returns a boolean value.
func Bool(v bool) PropertyValue { return PropertyValue{Kind: KindBool, B: v} }

// AsInt64 returns the int64 value if Kind is KindInt.
func (v PropertyValue) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v PropertyValue) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v PropertyValue) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v PropertyValue) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// Equal reports whether both values have the same kind and content.
// Floats compare by bit pattern, so NaN equals NaN.
func (v PropertyValue) Equal(o PropertyValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.I64 == o.I64
	case KindFloat:
		return math.Float64bits(v.F64) == math.Float64bits(o.F64)
	case KindString:
		return v.S == o.S
	case KindBool:
		return v.B == o.B
	default:
		return true
	}
}

// String renders the value for logs.
func (v PropertyValue) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.S)
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return "invalid"
	}
}

// UnmarshalJSON implements json.Unmarshaler and rejects unknown kinds.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	type alias PropertyValue
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Kind == KindInvalid || aux.Kind > KindBool {
		return fmt.Errorf("%w: %d", ErrInvalidKind, aux.Kind)
	}
	*v = PropertyValue(aux)
	return nil
}

// Properties maps property keys to values.
type Properties map[string]PropertyValue

// Get returns the value stored under key.
func (p Properties) Get(key string) (PropertyValue, bool) {
	v, ok := p[key]
	return v, ok
}

// Set stores v under key. p must not be nil.
func (p Properties) Set(key string, v PropertyValue) {
	p[key] = v
}

// Clone returns a copy of p. Values are immutable, so a shallow copy is
// independent of the original.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Equal reports whether both maps hold the same keys and values.
// A nil map equals an empty one.
func (p Properties) Equal(o Properties) bool {
	return maps.EqualFunc(p, o, PropertyValue.Equal)
}
