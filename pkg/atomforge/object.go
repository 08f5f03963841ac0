package atomforge

import (
	"encoding/binary"
	"math"
)

// propHeaderSize is sizeof(LV2_Atom_Property_Body) plus its value's
// atom header: a 4-byte key URID, a 4-byte context URID (always 0, the
// bridge never uses blank-node contexts), and the value's own 8-byte
// atom header (size, type).
const propHeaderSize = 4 + 4 + atomHeaderSize

// objectBodyHeaderSize is sizeof(LV2_Atom_Object_Body): a 4-byte blank
// id (always 0, the bridge never forges blank-node identity) and a
// 4-byte otype URID.
const objectBodyHeaderSize = 8

// Property is one key/value pair of a forged Atom Object, e.g.
// time:speed = 1.0f.
type Property struct {
	Key     uint32
	ValType uint32
	Value   []byte
}

// paddedPropSize rounds one property's total wire size (key, context,
// value atom header, value bytes) up to an 8-byte boundary.
func paddedPropSize(valueLen int) uint32 {
	total := uint32(propHeaderSize + valueLen)
	return (total + 7) &^ 7
}

// ObjectBody encodes an LV2_Atom_Object's body (id, otype, then each
// property padded to 8 bytes) into a freshly allocated buffer. Pass the
// result as AppendEvent's data with atomType set to atom:Object's URID.
func ObjectBody(otype uint32, props []Property) []byte {
	size := objectBodyHeaderSize
	for _, p := range props {
		size += int(paddedPropSize(len(p.Value)))
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], 0) // id: never a blank node
	binary.LittleEndian.PutUint32(buf[4:8], otype)

	off := objectBodyHeaderSize
	for _, p := range props {
		binary.LittleEndian.PutUint32(buf[off:off+4], p.Key)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], 0) // context: unused
		binary.LittleEndian.PutUint32(buf[off+8:off+12], uint32(len(p.Value)))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], p.ValType)
		copy(buf[off+16:], p.Value)
		off += int(paddedPropSize(len(p.Value)))
	}
	return buf
}

// Float32Bytes little-endian-encodes a float32 property value.
func Float32Bytes(v float32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	return buf
}

// Int32Bytes little-endian-encodes an int32 property value.
func Int32Bytes(v int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

// Int64Bytes little-endian-encodes an int64 property value (time:frame
// is an atom:Long).
func Int64Bytes(v int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

// Float64Bytes little-endian-encodes a float64 property value
// (time:beatsPerMinute and time:barBeat are atom:Double).
func Float64Bytes(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}
