package bridge

import (
	"bytes"
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
	"github.com/go-lv2/lv2vst/pkg/state"
)

// effGetChunk answers effGetChunk (spec §4.5.5): it asks the plugin's
// state:interface to save, captures every ControlIn port's current
// value by symbol, and encodes both into the bridge's chunk format.
// onlyCurrentPreset is accepted for API symmetry with the host's
// program/bank distinction; this bridge keeps a single chunk shape for
// both, matching original_source/src/lv2vst.cc's single getChunk path.
func (c *Core) effGetChunk(ptr unsafe.Pointer, onlyCurrentPreset bool) int64 {
	if ptr == nil {
		return 0
	}

	chunk := &state.Chunk{}

	if c.stateIface != nil {
		store := func(key uint32, value []byte, valueType uint32, flags uint32) error {
			chunk.Props = append(chunk.Props, state.Property{
				KeyURI:  c.urid.Unmap(key),
				TypeURI: c.urid.Unmap(valueType),
				Flags:   flags,
				Value:   append([]byte(nil), value...),
			})
			return nil
		}
		if err := c.stateIface.Save(store, 0); err != nil {
			logging.Warn("bridge: state save: %v", err)
		}
	}

	for i := range c.ports {
		ps := &c.ports[i]
		if ps.desc.Kind == lv2model.ControlIn {
			chunk.Values = append(chunk.Values, state.PortValue{Symbol: ps.desc.Symbol, Value: ps.ctrlValue})
		}
	}

	var buf bytes.Buffer
	if err := chunk.Encode(&buf); err != nil {
		logging.Warn("bridge: encoding state chunk: %v", err)
		return 0
	}

	// the host reads *(void**)ptr after this call returns; the backing
	// buffer must outlive the call, so it is kept on Core rather than
	// freed at function exit.
	c.chunkBuf = buf.Bytes()
	*(*unsafe.Pointer)(ptr) = unsafe.Pointer(&c.chunkBuf[0])
	return int64(len(c.chunkBuf))
}

// effSetChunk answers effSetChunk: it decodes the host-supplied buffer
// and restores port values directly (audio-thread-safe, plain float
// writes) and state properties through the plugin's state:interface
// restore() callback.
func (c *Core) effSetChunk(ptr unsafe.Pointer, size int, onlyCurrentPreset bool) int64 {
	if ptr == nil || size <= 0 {
		return 0
	}
	raw := unsafe.Slice((*byte)(ptr), size)

	chunk, err := state.Decode(bytes.NewReader(raw))
	if err != nil {
		logging.Warn("bridge: decoding state chunk: %v", err)
		return 0
	}

	for _, v := range chunk.Values {
		for i := range c.ports {
			ps := &c.ports[i]
			if ps.desc.Kind == lv2model.ControlIn && ps.desc.Symbol == v.Symbol {
				ps.ctrlValue = v.Value
				c.notifyParameterAutomated(ps)
				break
			}
		}
	}

	if c.stateIface != nil && len(chunk.Props) > 0 {
		byKey := make(map[uint32]state.Property, len(chunk.Props))
		for _, p := range chunk.Props {
			byKey[c.urid.Map(p.KeyURI)] = p
		}
		retrieve := func(key uint32) ([]byte, uint32, uint32, bool) {
			p, ok := byKey[key]
			if !ok {
				return nil, 0, 0, false
			}
			return p.Value, c.urid.Map(p.TypeURI), p.Flags, true
		}
		if err := c.stateIface.Restore(retrieve, 0); err != nil {
			logging.Warn("bridge: state restore: %v", err)
		}
	}

	c.mu.Lock()
	c.uiSync = true
	c.mu.Unlock()

	return 1
}
