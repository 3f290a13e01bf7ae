package codec

import (
	"testing"

	"github.com/hupe1980/graphflow/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Properties(t *testing.T) {
	props := model.Properties{
		"name":  model.String("EN"),
		"speak": model.Int(1_500_000_000),
		"ratio": model.Float(0.25),
		"alive": model.Bool(true),
		"none":  model.Null(),
	}
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(props)
			require.NoError(t, err)

			var got model.Properties
			require.NoError(t, c.Unmarshal(data, &got))
			assert.True(t, props.Equal(got))
		})
	}

	// Both codecs read each other's output.
	data, err := MarshalProperties(JSON{}, props)
	require.NoError(t, err)
	got, err := UnmarshalProperties(GoJSON{}, data)
	require.NoError(t, err)
	assert.True(t, props.Equal(got))
}

func TestProperties_Empty(t *testing.T) {
	data, err := MarshalProperties(nil, model.Properties{})
	require.NoError(t, err)
	assert.Nil(t, data)

	got, err := UnmarshalProperties(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshalProperties_Corrupt(t *testing.T) {
	_, err := UnmarshalProperties(JSON{}, []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json")
}
