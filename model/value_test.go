package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyValue_Accessors(t *testing.T) {
	i, ok := Int(7).AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = Int(7).AsString()
	assert.False(t, ok)

	s, ok := String("EN").AsString()
	assert.True(t, ok)
	assert.Equal(t, "EN", s)

	f, ok := Float(1.5).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)
}

func TestPropertyValue_Equal(t *testing.T) {
	assert.True(t, Int(1).Equal(Int(1)))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.False(t, String("a").Equal(String("b")))
}

func TestPropertyValue_JSONKeepsKind(t *testing.T) {
	props := Properties{
		"n": Null(),
		"i": Int(0),
		"f": Float(2.25),
		"s": String(""),
		"b": Bool(false),
	}
	data, err := json.Marshal(props)
	require.NoError(t, err)

	var got Properties
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, props.Equal(got))
	assert.Equal(t, KindInt, got["i"].Kind)
	assert.Equal(t, KindString, got["s"].Kind)
}

func TestPropertyValue_RejectsUnknownKind(t *testing.T) {
	var v PropertyValue
	err := json.Unmarshal([]byte(`{"k":42}`), &v)
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestProperties_CloneIsIndependent(t *testing.T) {
	p := Properties{"a": Int(1)}
	c := p.Clone()
	c.Set("a", Int(2))

	v, _ := p.Get("a")
	assert.True(t, v.Equal(Int(1)))
	assert.Nil(t, Properties(nil).Clone())
	assert.True(t, Properties(nil).Equal(Properties{}))
}
