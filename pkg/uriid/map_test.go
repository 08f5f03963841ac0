package uriid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMapUnmapInverse(t *testing.T) {
	m := New()
	id := m.Map("http://example.org/a")
	require.NotZero(t, id)
	assert.Equal(t, "http://example.org/a", m.Unmap(id))
}

func TestMapIdempotent(t *testing.T) {
	m := New()
	a := m.Map("http://example.org/a")
	b := m.Map("http://example.org/a")
	assert.Equal(t, a, b)
}

func TestZeroIDReservedInvalid(t *testing.T) {
	m := New()
	m.Map("http://example.org/a")
	assert.Equal(t, "", m.Unmap(0))
}

func TestUnmapOutOfRange(t *testing.T) {
	m := New()
	assert.Equal(t, "", m.Unmap(1))
	assert.Equal(t, "", m.Unmap(999))
}

func TestIDsNeverReused(t *testing.T) {
	m := New()
	seen := make(map[uint32]string)
	for i := 0; i < 50; i++ {
		uri := rapid.StringMatching(`[a-z]{1,12}`).Example(i)
		id := m.Map(uri + "#")
		if prev, ok := seen[id]; ok {
			assert.Equal(t, prev, uri+"#", "id %d reused for a different uri", id)
		} else {
			seen[id] = uri + "#"
		}
	}
}

func TestMapUnmapPropertyBased(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := New()
		uris := rapid.SliceOfDistinct(rapid.StringMatching(`urn:test:[a-z]{1,8}`), func(s string) string { return s }).Draw(t, "uris")

		ids := make(map[string]uint32, len(uris))
		for _, u := range uris {
			ids[u] = m.Map(u)
		}
		for _, u := range uris {
			id := m.Map(u) // idempotent
			assert.Equal(t, ids[u], id)
			assert.Equal(t, u, m.Unmap(id))
		}
	})
}
