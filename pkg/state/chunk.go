// Package state implements the bridge's opaque VST chunk format
// (spec §4.5.5): a plugin's state:interface properties plus its
// control-in port values, serialized big-endian for byte-exact
// round-tripping across host saves. Adapted from the teacher's
// framework/state.Manager — same io.Writer/io.Reader, binary.Read/Write
// save/load shape — generalized from "VST3GO-magic-headered parameter
// list" to the spec's property+port-value chunk, and switched from
// little-endian to big-endian per the wire format's htonl/ntohl note.
package state

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Property is one state:interface key/value pair, as produced by a
// plugin's save() store callback.
type Property struct {
	KeyURI  string
	TypeURI string
	Flags   uint32
	Value   []byte
}

// PortValue is one control-in port's current value, identified by its
// stable lv2:symbol rather than its port index (indices can shift
// across plugin versions; symbols are required to stay stable).
type PortValue struct {
	Symbol string
	Value  float32
}

// Chunk is the full decoded contents of a get_chunk/set_chunk byte
// buffer.
type Chunk struct {
	Props  []Property
	Values []PortValue
}

// Encode writes c in the wire format: a {n_props, n_values} header,
// then every property record, then every port-value record.
func (c *Chunk) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(c.Props))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(c.Values))); err != nil {
		return err
	}
	for _, p := range c.Props {
		if err := writeString(w, p.KeyURI); err != nil {
			return err
		}
		if err := writeString(w, p.TypeURI); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, p.Flags); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(p.Value))); err != nil {
			return err
		}
		if _, err := w.Write(p.Value); err != nil {
			return err
		}
	}
	for _, v := range c.Values {
		var raw [4]byte
		binary.BigEndian.PutUint32(raw[:], math.Float32bits(v.Value))
		if _, err := w.Write(raw[:]); err != nil {
			return err
		}
		if err := writeString(w, v.Symbol); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses a chunk produced by Encode. A malformed or truncated
// buffer returns an error and leaves the receiver untouched; per spec
// §8 that translates to set_chunk returning 0 without disturbing the
// plugin's running state.
func Decode(r io.Reader) (*Chunk, error) {
	var nProps, nValues uint32
	if err := binary.Read(r, binary.BigEndian, &nProps); err != nil {
		return nil, fmt.Errorf("state: reading n_props: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &nValues); err != nil {
		return nil, fmt.Errorf("state: reading n_values: %w", err)
	}

	c := &Chunk{
		Props:  make([]Property, 0, nProps),
		Values: make([]PortValue, 0, nValues),
	}

	for i := uint32(0); i < nProps; i++ {
		key, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("state: property %d key: %w", i, err)
		}
		typ, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("state: property %d type: %w", i, err)
		}
		var flags, size uint32
		if err := binary.Read(r, binary.BigEndian, &flags); err != nil {
			return nil, fmt.Errorf("state: property %d flags: %w", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, fmt.Errorf("state: property %d size: %w", i, err)
		}
		value := make([]byte, size)
		if _, err := io.ReadFull(r, value); err != nil {
			return nil, fmt.Errorf("state: property %d value: %w", i, err)
		}
		c.Props = append(c.Props, Property{KeyURI: key, TypeURI: typ, Flags: flags, Value: value})
	}

	for i := uint32(0); i < nValues; i++ {
		var raw [4]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, fmt.Errorf("state: value %d float: %w", i, err)
		}
		symbol, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("state: value %d symbol: %w", i, err)
		}
		c.Values = append(c.Values, PortValue{
			Symbol: symbol,
			Value:  math.Float32frombits(binary.BigEndian.Uint32(raw[:])),
		})
	}

	return c, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	const maxStringLen = 1 << 20
	if n > maxStringLen {
		return "", fmt.Errorf("state: string length %d exceeds sanity limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
