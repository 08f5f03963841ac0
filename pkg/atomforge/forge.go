// Package atomforge builds LV2 Atom Sequences by hand: the bridge has
// no use for the full liblv2-atom forge API (it only ever writes one
// shape of sequence — optional transport position, then injected UI
// atoms, then injected MIDI events), so this is a minimal, spec-exact
// byte writer rather than a binding to an ecosystem forge library (none
// of the retrieved example repos vendors one). Layout and the 8-byte
// event padding follow original_source/src/lv2vst.cc's run() body.
package atomforge

import "encoding/binary"

// Atom header: 4-byte size (of the body, not including this header)
// followed by a 4-byte type URID. All LV2 Atoms share this header.
const atomHeaderSize = 8

// eventHeaderSize is sizeof(LV2_Atom_Event): an 8-byte frame-time field
// followed by one atom header.
const eventHeaderSize = 8 + atomHeaderSize

// Sequence accumulates LV2_Atom_Event records into a fixed-capacity
// byte buffer, same shape as the atom-in port buffer the bridge hands
// the plugin each cycle.
type Sequence struct {
	buf  []byte
	size uint32 // bytes written so far into buf[atomHeaderSize:]
	cap  uint32 // total capacity, including the leading atom header

	eventBuf []Event // scratch reused by Events across calls
}

// NewSequence wraps buf (which must be at least atomHeaderSize bytes)
// as an empty Atom Sequence, writing the outer Atom header's type
// immediately (the size field is rewritten by AppendEvent and Reset).
func NewSequence(buf []byte, sequenceBodyType uint32) *Sequence {
	s := &Sequence{buf: buf, cap: uint32(len(buf))}
	binary.LittleEndian.PutUint32(buf[4:8], sequenceBodyType)
	s.writeSizeHeader()
	return s
}

func (s *Sequence) writeSizeHeader() {
	binary.LittleEndian.PutUint32(s.buf[0:4], s.size)
}

// Reset clears the sequence back to empty without reallocating.
func (s *Sequence) Reset() {
	s.size = 0
	s.writeSizeHeader()
}

// Remaining reports how many more bytes of event payload the buffer
// has room for (mirrors the bridge's `min_atom_bufsiz` budget check).
func (s *Sequence) Remaining() uint32 {
	used := atomHeaderSize + s.size
	if used >= s.cap {
		return 0
	}
	return s.cap - used
}

// paddedEventSize rounds an event's total wire size up to an 8-byte
// boundary, matching `(sizeof(LV2_Atom_Event) + size + 7) & ~7`.
func paddedEventSize(payloadSize uint32) uint32 {
	total := eventHeaderSize + payloadSize
	return (total + 7) &^ 7
}

// AppendEvent writes one LV2_Atom_Event at frame offset `frames` with
// body type `atomType` and raw payload `data`, returning false (and
// writing nothing) if it would not fit in the remaining budget.
func (s *Sequence) AppendEvent(frames int64, atomType uint32, data []byte) bool {
	padded := paddedEventSize(uint32(len(data)))
	if padded > s.Remaining() {
		return false
	}

	off := atomHeaderSize + s.size
	binary.LittleEndian.PutUint64(s.buf[off:off+8], uint64(frames))
	binary.LittleEndian.PutUint32(s.buf[off+8:off+12], uint32(len(data)))
	binary.LittleEndian.PutUint32(s.buf[off+12:off+16], atomType)
	copy(s.buf[off+16:], data)

	s.size += padded
	s.writeSizeHeader()
	return true
}

// Len returns the total encoded size, outer header included.
func (s *Sequence) Len() uint32 {
	return atomHeaderSize + s.size
}

// Bytes returns the encoded sequence, outer header included.
func (s *Sequence) Bytes() []byte {
	return s.buf[:s.Len()]
}

// Event is one decoded LV2_Atom_Event.
type Event struct {
	Frames int64
	Type   uint32
	Data   []byte
}

// Events decodes every event currently stored in the sequence, in wire
// order, into a buffer owned by s and reused across calls: once it has
// grown to the cycle's high-water mark it no longer allocates, making
// this safe to call from the audio thread. The returned slice (and the
// Data slices within it, which alias s.buf) are only valid until the
// next call to Events, AppendEvent, or Reset.
func (s *Sequence) Events() []Event {
	s.eventBuf = s.eventBuf[:0]
	off := atomHeaderSize
	end := int(s.Len())
	for off+eventHeaderSize <= end {
		frames := int64(binary.LittleEndian.Uint64(s.buf[off : off+8]))
		size := binary.LittleEndian.Uint32(s.buf[off+8 : off+12])
		typ := binary.LittleEndian.Uint32(s.buf[off+12 : off+16])
		dataStart := off + 16
		dataEnd := dataStart + int(size)
		if dataEnd > end {
			break
		}
		s.eventBuf = append(s.eventBuf, Event{Frames: frames, Type: typ, Data: s.buf[dataStart:dataEnd]})
		off += int(paddedEventSize(size))
	}
	return s.eventBuf
}
