package lv2ext

import (
	"encoding/binary"
	"math"

	"github.com/go-lv2/lv2vst/pkg/rdfworld"
)

// SampleRateOption builds the param:sampleRate option value, resolving
// its key and type URIDs through urid (normally uriid.Map.Map).
func SampleRateOption(urid URIDMapFunc, hz float64) OptionValue {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(hz)))
	return OptionValue{
		Key:   urid(rdfworld.ParamSampleRate),
		Type:  urid(rdfworld.AtomFloat),
		Value: buf,
	}
}

// intOption builds an atom:Int-typed option value for any of the
// buf-size block/sequence-size options, all of which share this shape.
func intOption(urid URIDMapFunc, uri string, n int32) OptionValue {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(n))
	return OptionValue{Key: urid(uri), Type: urid(rdfworld.AtomInt), Value: buf}
}

// MinBlockLengthOption builds the buf-size:minBlockLength option.
func MinBlockLengthOption(urid URIDMapFunc, n int32) OptionValue {
	return intOption(urid, rdfworld.BufSizeMinBlockLength, n)
}

// MaxBlockLengthOption builds the buf-size:maxBlockLength option.
func MaxBlockLengthOption(urid URIDMapFunc, n int32) OptionValue {
	return intOption(urid, rdfworld.BufSizeMaxBlockLength, n)
}

// SequenceSizeOption builds the buf-size:sequenceSize option, set to
// the descriptor's min_atom_bufsiz.
func SequenceSizeOption(urid URIDMapFunc, n int32) OptionValue {
	return intOption(urid, rdfworld.BufSizeSequenceSize, n)
}

// StandardOptions assembles every option the bridge always supplies
// (spec §4.3 step 4's full supported-options list) for one instance.
func StandardOptions(urid URIDMapFunc, sampleRate float64, minBlock, maxBlock, seqSize int32) []OptionValue {
	return []OptionValue{
		SampleRateOption(urid, sampleRate),
		MinBlockLengthOption(urid, minBlock),
		MaxBlockLengthOption(urid, maxBlock),
		SequenceSizeOption(urid, seqSize),
	}
}
