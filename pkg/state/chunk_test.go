package state

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRoundTrip(t *testing.T) {
	c := &Chunk{
		Props: []Property{
			{KeyURI: "urn:test:prop-a", TypeURI: "http://www.w3.org/2001/XMLSchema#string", Value: []byte("hello")},
			{KeyURI: "urn:test:prop-b", TypeURI: "http://lv2plug.in/ns/ext/atom#Int", Flags: 1, Value: []byte{0, 0, 0, 7}},
		},
		Values: []PortValue{
			{Symbol: "gain", Value: 0.5},
			{Symbol: "drive", Value: 1.0},
			{Symbol: "tone", Value: -3.0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Props, got.Props)
	assert.Equal(t, c.Values, got.Values)
}

func TestDecodeEmptyChunk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Chunk{}).Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, got.Props)
	assert.Empty(t, got.Values)
}

func TestDecodeTruncatedBufferFails(t *testing.T) {
	var buf bytes.Buffer
	c := &Chunk{Values: []PortValue{{Symbol: "gain", Value: 1}}}
	require.NoError(t, c.Encode(&buf))

	truncated := buf.Bytes()[:buf.Len()-2]
	_, err := Decode(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestDecodeRejectsAbsurdStringLength(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 1, 0, 0, 0, 0}) // n_props=1, n_values=0
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff}) // key length ~4 billion
	_, err := Decode(&buf)
	assert.Error(t, err)
}
