package atomforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireLengthByStatusByte(t *testing.T) {
	cases := map[byte]int{
		0x90: 3, // note on
		0x80: 3, // note off
		0xb0: 3, // CC
		0xc0: 2, // program change
		0xd0: 2, // channel pressure
		0xf1: 2, // MTC quarter frame
		0xf3: 2, // song select
		0xf8: 1, // clock
		0xfe: 1, // active sensing
		0xff: 1, // reset
	}
	for status, want := range cases {
		assert.Equal(t, want, WireLength(status), "status 0x%02x", status)
	}
}

func TestSequenceAppendEventRoundTrip(t *testing.T) {
	buf := make([]byte, 256)
	seq := NewSequence(buf, 42)

	ok := seq.AppendEvent(0, 7, []byte{0x90, 0x40, 0x7f})
	require.True(t, ok)
	ok = seq.AppendEvent(10, 7, []byte{0x80, 0x40, 0x00})
	require.True(t, ok)

	assert.Greater(t, seq.Len(), uint32(atomHeaderSize))
	assert.LessOrEqual(t, seq.Len(), uint32(len(buf)))
}

func TestSequenceRejectsEventThatDoesNotFit(t *testing.T) {
	buf := make([]byte, atomHeaderSize+eventHeaderSize) // room for exactly one 0-byte event
	seq := NewSequence(buf, 1)

	require.True(t, seq.AppendEvent(0, 1, nil))
	assert.False(t, seq.AppendEvent(0, 1, []byte{0x01}))
}

func TestSequenceResetClearsSize(t *testing.T) {
	buf := make([]byte, 64)
	seq := NewSequence(buf, 1)
	require.True(t, seq.AppendEvent(0, 1, []byte{1, 2, 3}))
	require.Greater(t, seq.Len(), uint32(atomHeaderSize))

	seq.Reset()
	assert.Equal(t, uint32(atomHeaderSize), seq.Len())
}
