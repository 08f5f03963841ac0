// Package uriid implements the bridge's URI-integer map: a monotonic,
// append-only interning table shared by the DSP side, the UI side, and
// state (de)serialization (spec component C1).
package uriid

import "sync"

// Map is a bidirectional URI<->ID interning table. ID 0 is reserved
// "invalid"; valid IDs start at 1 and are assigned in call order. A Map
// is safe for concurrent use, but map/unmap are only ever invoked off
// the audio thread (plugin init, UI open, state chunk (de)serialization).
type Map struct {
	mu   sync.Mutex
	uris []string
	ids  map[string]uint32
}

// New returns an empty map.
func New() *Map {
	return &Map{
		ids: make(map[string]uint32, 64),
	}
}

// Map interns uri and returns its ID, allocating a new one if this is
// the first time uri has been seen. Not real-time safe: it may allocate.
func (m *Map) Map(uri string) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.ids[uri]; ok {
		return id
	}
	m.uris = append(m.uris, uri)
	id := uint32(len(m.uris))
	m.ids[uri] = id
	return id
}

// Unmap returns the URI previously assigned to id, or "" if id is 0 or
// out of range. Constant-time index lookup.
func (m *Map) Unmap(id uint32) string {
	if id == 0 {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(m.uris) {
		return ""
	}
	return m.uris[idx]
}

// Len reports how many URIs have been interned.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uris)
}
