package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
)

func TestCanDoGatedOnDescriptor(t *testing.T) {
	full := &lv2model.PluginDescriptor{
		Counts:         lv2model.PortCounts{MidiIn: 1, MidiOut: 1},
		EnableCtrlPort: 0,
	}
	for _, s := range []string{"receiveVstMidiEvent", "sendVstMidiEvent", "receiveVstEvents", "sendVstEvents", "midiProgramNames", "bypass"} {
		assert.EqualValues(t, 1, canDo(full, s), s)
	}
	assert.EqualValues(t, 0, canDo(full, "somethingUnsupported"))

	bare := &lv2model.PluginDescriptor{EnableCtrlPort: -1}
	for _, s := range []string{"receiveVstMidiEvent", "sendVstMidiEvent", "receiveVstEvents", "sendVstEvents", "midiProgramNames", "bypass"} {
		assert.EqualValues(t, 0, canDo(bare, s), s)
	}
}

func TestCategoryToVST(t *testing.T) {
	cases := []struct {
		in  lv2model.Category
		out int32
	}{
		{lv2model.CategoryInstrument, vst2.KPlugCategSynth},
		{lv2model.CategoryGenerator, vst2.KPlugCategGenerator},
		{lv2model.CategorySpatial, vst2.KPlugCategSpacializer},
		{lv2model.CategoryShell, vst2.KPlugCategShell},
		{lv2model.CategoryEffect, vst2.KPlugCategEffect},
		{lv2model.CategoryUnknown, vst2.KPlugCategEffect},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, categoryToVST(c.in))
	}
}

func TestPadTo3(t *testing.T) {
	assert.Equal(t, []byte{0x90, 0x40, 0}, padTo3([]byte{0x90, 0x40}))
	assert.Equal(t, []byte{0xf8, 0, 0}, padTo3([]byte{0xf8}))
	assert.Len(t, padTo3(nil), 3)
}
