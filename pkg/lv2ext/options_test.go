package lv2ext

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeURID(uri string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(uri); i++ {
		h ^= uint32(uri[i])
		h *= 16777619
	}
	return h
}

func TestSampleRateOptionEncodesFloat32(t *testing.T) {
	opt := SampleRateOption(fakeURID, 48000)
	got := math.Float32frombits(binary.LittleEndian.Uint32(opt.Value))
	assert.Equal(t, float32(48000), got)
	assert.Equal(t, fakeURID("http://lv2plug.in/ns/ext/parameters#sampleRate"), opt.Key)
}

func TestStandardOptionsProducesFourEntries(t *testing.T) {
	opts := StandardOptions(fakeURID, 44100, 64, 8192, 8192)
	assert.Len(t, opts, 4)
}
