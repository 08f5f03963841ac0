package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSpaceInvariant(t *testing.T) {
	r := New(16)
	assert.EqualValues(t, r.capacity, r.ReadSpace()+r.WriteSpace()+1)

	r.Write([]byte("hello"))
	assert.EqualValues(t, r.capacity, r.ReadSpace()+r.WriteSpace()+1)

	buf := make([]byte, 3)
	r.Read(buf)
	assert.EqualValues(t, r.capacity, r.ReadSpace()+r.WriteSpace()+1)
}

func TestFIFOOrderAcrossWrap(t *testing.T) {
	r := New(8)
	// force wraparound with many small writes/reads
	var out []byte
	var in []byte
	for i := 0; i < 100; i++ {
		chunk := []byte{byte(i)}
		in = append(in, chunk...)
		require.EqualValues(t, 1, r.Write(chunk))
		buf := make([]byte, 1)
		n := r.Read(buf)
		require.EqualValues(t, 1, n)
		out = append(out, buf...)
	}
	assert.Equal(t, in, out)
}

func TestWriteDropsWhenFull(t *testing.T) {
	r := New(4) // 3 usable bytes
	n := r.Write([]byte{1, 2, 3, 4, 5})
	assert.EqualValues(t, 3, n)
	assert.EqualValues(t, 0, r.WriteSpace())
}

func TestFrameRoundTrip(t *testing.T) {
	r := New(64)
	ok := r.TryWriteFrame([]byte("payload"))
	require.True(t, ok)
	frame, ok := r.ReadFrame()
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), frame)
}

func TestReadFrameIntoDoesNotAllocate(t *testing.T) {
	r := New(64)
	require.True(t, r.TryWriteFrame([]byte("payload")))

	dst := make([]byte, 7)
	n, ok := r.ReadFrameInto(dst)
	require.True(t, ok)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, []byte("payload"), dst[:n])

	payload := []byte("payload")
	allocs := testing.AllocsPerRun(100, func() {
		r.TryWriteFrame(payload)
		r.ReadFrameInto(dst)
	})
	assert.Zero(t, allocs)
}

func TestReadFrameIntoLeavesFrameQueuedWhenDstTooSmall(t *testing.T) {
	r := New(64)
	require.True(t, r.TryWriteFrame([]byte("payload")))

	dst := make([]byte, 3)
	n, ok := r.ReadFrameInto(dst)
	assert.False(t, ok)
	assert.EqualValues(t, 7, n)

	dst = make([]byte, 7)
	n, ok = r.ReadFrameInto(dst)
	require.True(t, ok)
	assert.EqualValues(t, 7, n)
	assert.Equal(t, []byte("payload"), dst[:n])
}

func TestFrameDroppedWhenNoRoom(t *testing.T) {
	r := New(8)
	ok := r.TryWriteFrame([]byte("this is too big for the ring"))
	assert.False(t, ok)
	_, ok = r.ReadFrame()
	assert.False(t, ok)
}

func TestRingPropertyBased(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cap := uint32(rapid.IntRange(2, 64).Draw(t, "cap"))
		r := New(cap)

		var written, read []byte
		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			if rapid.Bool().Draw(t, "doWrite") {
				chunk := rapid.SliceOfN(rapid.Byte(), 0, 5).Draw(t, "chunk")
				n := r.Write(chunk)
				written = append(written, chunk[:n]...)
			} else {
				buf := make([]byte, rapid.IntRange(0, 5).Draw(t, "readLen"))
				n := r.Read(buf)
				read = append(read, buf[:n]...)
			}
			assert.EqualValues(t, cap, r.ReadSpace()+r.WriteSpace()+1)
		}
		// drain remaining
		for r.ReadSpace() > 0 {
			buf := make([]byte, r.ReadSpace())
			n := r.Read(buf)
			read = append(read, buf[:n]...)
		}
		assert.Equal(t, written, read)
	})
}
