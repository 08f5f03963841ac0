// Package ring implements the bridge's single-producer/single-consumer
// lock-free byte FIFO (spec component C2). Five instances of it carry
// the bridge's audio-thread <-> UI-thread and audio-thread <-> worker
// traffic: ctrl_to_ui, atom_to_ui, atom_from_ui, and the worker's
// requests/responses rings.
//
// Wait-free for both ends: write_space/read_space observe only the
// opposite index with a sequentially-consistent atomic load, and each
// of write/read publishes its own index last, after the payload copy.
package ring

import "sync/atomic"

// Ring is a fixed-capacity circular byte buffer. One goroutine may write
// to it while a different goroutine reads from it concurrently; any
// other usage pattern is undefined.
type Ring struct {
	buf      []byte
	capacity uint32
	writePtr atomic.Uint32
	readPtr  atomic.Uint32
}

// New returns a Ring able to hold capacity-1 bytes before write_space
// reaches zero (one slot is always kept empty to disambiguate full from
// empty without a separate counter).
func New(capacity uint32) *Ring {
	if capacity < 2 {
		capacity = 2
	}
	return &Ring{
		buf:      make([]byte, capacity),
		capacity: capacity,
	}
}

// Capacity returns the buffer's total size in bytes.
func (r *Ring) Capacity() uint32 {
	return r.capacity
}

// WriteSpace returns how many bytes can be written without blocking.
func (r *Ring) WriteSpace() uint32 {
	w := r.writePtr.Load()
	rd := r.readPtr.Load()
	if w > rd {
		return ((rd - w + r.capacity) % r.capacity) - 1
	} else if w < rd {
		return (rd - w) - 1
	}
	return r.capacity - 1
}

// ReadSpace returns how many bytes are available to read.
func (r *Ring) ReadSpace() uint32 {
	w := r.writePtr.Load()
	rd := r.readPtr.Load()
	if w >= rd {
		return w - rd
	}
	return w - rd + r.capacity
}

// Write copies up to len(src) bytes into the ring, writing at most
// WriteSpace() bytes, and returns the number actually written. The new
// write index is published last so a concurrent reader never observes
// a partially written record.
func (r *Ring) Write(src []byte) uint32 {
	free := r.WriteSpace()
	n := uint32(len(src))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	w := r.writePtr.Load()
	end := w + n
	var n1, n2 uint32
	if end > r.capacity {
		n1 = r.capacity - w
		n2 = end % r.capacity
	} else {
		n1 = n
		n2 = 0
	}

	copy(r.buf[w:w+n1], src[:n1])
	w = (w + n1) % r.capacity
	if n2 > 0 {
		copy(r.buf[0:n2], src[n1:n1+n2])
		w = n2
	}

	r.writePtr.Store(w)
	return n
}

// Read copies up to len(dst) bytes out of the ring, reading at most
// ReadSpace() bytes, and returns the number actually read. The new read
// index is published last.
func (r *Ring) Read(dst []byte) uint32 {
	avail := r.ReadSpace()
	n := uint32(len(dst))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}

	rd := r.readPtr.Load()
	end := rd + n
	var n1, n2 uint32
	if end > r.capacity {
		n1 = r.capacity - rd
		n2 = end % r.capacity
	} else {
		n1 = n
		n2 = 0
	}

	copy(dst[:n1], r.buf[rd:rd+n1])
	rd = (rd + n1) % r.capacity
	if n2 > 0 {
		copy(dst[n1:n1+n2], r.buf[0:n2])
		rd = n2
	}

	r.readPtr.Store(rd)
	return n
}

// Reset empties the ring. Callers must ensure no concurrent
// reader/writer is active.
func (r *Ring) Reset() {
	r.writePtr.Store(0)
	r.readPtr.Store(0)
}

// TryWriteFrame writes a length-prefixed frame (4-byte big-endian size
// followed by payload) if there is room for the whole frame, dropping it
// silently otherwise. Used by ctrl_to_ui-style rings where a partially
// written frame would desynchronize the reader. Returns whether the
// frame was written.
func (r *Ring) TryWriteFrame(payload []byte) bool {
	need := uint32(4 + len(payload))
	if r.WriteSpace() < need {
		return false
	}
	var hdr [4]byte
	putU32(hdr[:], uint32(len(payload)))
	r.Write(hdr[:])
	r.Write(payload)
	return true
}

// ReadFrame reads one length-prefixed frame into a freshly sized slice,
// or returns ok=false if fewer than 4 bytes are available (no complete
// frame header yet). Allocates every call; reserved for non-RT readers
// (the UI/idle thread). RT-thread readers must use ReadFrameInto.
func (r *Ring) ReadFrame() (frame []byte, ok bool) {
	if r.ReadSpace() < 4 {
		return nil, false
	}
	var hdr [4]byte
	r.Read(hdr[:])
	size := getU32(hdr[:])
	frame = make([]byte, size)
	r.Read(frame)
	return frame, true
}

// ReadFrameInto reads one length-prefixed frame into dst without
// allocating. It peeks the frame's size before consuming anything: if
// dst is too small to hold it, the frame is left queued and ok is
// false, so a caller can distinguish "nothing queued" from "my scratch
// buffer is undersized" by checking size. Safe to call only from the
// single reader goroutine, same as every other Ring method.
func (r *Ring) ReadFrameInto(dst []byte) (size uint32, ok bool) {
	if r.ReadSpace() < 4 {
		return 0, false
	}
	rd := r.readPtr.Load()
	var hdr [4]byte
	for i := range hdr {
		hdr[i] = r.buf[(rd+uint32(i))%r.capacity]
	}
	size = getU32(hdr[:])
	if size > uint32(len(dst)) {
		return size, false
	}
	r.Read(hdr[:])
	r.Read(dst[:size])
	return size, true
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
