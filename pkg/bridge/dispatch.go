package bridge

import (
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/lv2ext"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
)

// Dispatch implements internal/vst2.Instance: it is the single entry
// point the VST2 host's dispatcher call is routed to (spec §4.5.2).
// Called from the audio thread for most opcodes, from the UI/main
// thread for edit/chunk/canDo — logging and allocation here must stay
// confined to the non-RT branches.
func (c *Core) Dispatch(opcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	switch opcode {
	case vst2.EffOpen:
		return 0

	case vst2.EffClose:
		c.Close()
		return 0

	case vst2.EffSetSampleRate:
		c.setSampleRate(float64(opt))
		return 0

	case vst2.EffSetBlockSize:
		c.setBlockSize(int32(value))
		return 0

	case vst2.EffMainsChanged:
		if value != 0 {
			c.resume()
		} else {
			c.suspend()
		}
		return 0

	case vst2.EffEditGetRect:
		return c.editGetRect(ptr)
	case vst2.EffEditOpen:
		return c.editOpen()
	case vst2.EffEditClose:
		return c.editClose()
	case vst2.EffEditIdle:
		c.editIdle()
		return 0

	case vst2.EffGetChunk:
		return c.effGetChunk(ptr, index != 0)
	case vst2.EffSetChunk:
		return c.effSetChunk(ptr, int(value), index != 0)

	case vst2.EffProcessEvents:
		c.processEvents(ptr)
		return 1

	case vst2.EffCanBeAutomated:
		return 1

	case vst2.EffGetPlugCategory:
		return int64(categoryToVST(c.desc.Category))

	case vst2.EffCanDo:
		return canDo(c.desc, cString(ptr))

	case vst2.EffSetBypass:
		return c.setBypass(value != 0)

	case vst2.EffGetParameterProperties:
		return 0

	case vst2.EffShellGetNextPlugin:
		return c.shellGetNextPlugin(ptr)

	default:
		return 0
	}
}

// SetParameter and GetParameter satisfy internal/vst2.Instance.
func (c *Core) SetParameter(index int32, value float32) { c.setParameter(index, value) }
func (c *Core) GetParameter(index int32) float32        { return c.getParameter(index) }

func (c *Core) setSampleRate(hz float64) {
	if hz == c.sampleRate || hz <= 0 {
		return
	}
	c.sampleRate = hz
	if c.optionsIface != nil {
		opt := lv2ext.SampleRateOption(c.urid.Map, hz)
		if err := c.optionsIface.Set(opt); err != nil {
			logging.Warn("bridge: forwarding sample rate change: %v", err)
		}
	}
}

func (c *Core) setBlockSize(n int32) {
	if n == c.blockSize || n <= 0 {
		return
	}
	c.blockSize = n
	if c.optionsIface != nil {
		opt := lv2ext.MaxBlockLengthOption(c.urid.Map, n)
		if err := c.optionsIface.Set(opt); err != nil {
			logging.Warn("bridge: forwarding block size change: %v", err)
		}
	}
}

func (c *Core) resume() {
	if c.active {
		return
	}
	c.instance.Activate()
	c.active = true
	if c.desc.Counts.MidiIn > 0 {
		c.host.Call(vst2.AudioMasterIOChanged, 0, 0, nil, 0)
	}
}

func (c *Core) suspend() {
	if !c.active {
		return
	}
	c.instance.Deactivate()
	c.active = false
}

func (c *Core) processEvents(ptr unsafe.Pointer) {
	events := vst2.DecodeVstEvents(ptr)
	for _, e := range events {
		c.pendingMidi = append(c.pendingMidi, pendingMidiIn{deltaFrames: e.DeltaFrames, data: [3]byte(padTo3(e.Data))})
	}
}

func padTo3(data []byte) []byte {
	out := make([]byte, 3)
	copy(out, data)
	return out
}

func categoryToVST(cat lv2model.Category) int32 {
	switch cat {
	case lv2model.CategoryInstrument:
		return vst2.KPlugCategSynth
	case lv2model.CategoryGenerator:
		return vst2.KPlugCategGenerator
	case lv2model.CategorySpatial:
		return vst2.KPlugCategSpacializer
	case lv2model.CategoryShell:
		return vst2.KPlugCategShell
	default:
		return vst2.KPlugCategEffect
	}
}

// canDo answers effCanDo for the small set of capability strings the
// bridge actually implements, mirroring original_source/src/lv2vst.cc's
// canDo table: MIDI capabilities are gated on the descriptor's MIDI
// port counts, not declared unconditionally, and bypass is gated on the
// plugin actually exposing an enable control port.
func canDo(desc *lv2model.PluginDescriptor, s string) int64 {
	switch s {
	case "receiveVstMidiEvent", "receiveVstEvents":
		return boolToInt64(desc.Counts.MidiIn > 0)
	case "sendVstMidiEvent", "sendVstEvents":
		return boolToInt64(desc.Counts.MidiOut > 0)
	case "midiProgramNames":
		return boolToInt64(desc.Counts.MidiIn > 0 || desc.Counts.MidiOut > 0)
	case "bypass":
		return boolToInt64(desc.EnableCtrlPort != -1)
	default:
		return 0
	}
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// setBypass implements effSetBypass by writing (and automating) the
// plugin's dedicated enable control port, mirroring
// original_source/src/lv2vst.cc's bypass_plugin: returns 0 when the
// plugin declares no such port, 1 otherwise.
func (c *Core) setBypass(bypass bool) int64 {
	if c.desc.EnableCtrlPort == -1 {
		return 0
	}
	ps := &c.ports[c.desc.EnableCtrlPort]
	if bypass {
		ps.ctrlValue = 0
	} else {
		ps.ctrlValue = 1
	}

	c.mu.Lock()
	uiOpen := c.uiOpen
	c.mu.Unlock()
	if uiOpen {
		c.pushCtrlToUI(ps.index, ps.ctrlValue)
	}
	c.notifyParameterAutomated(ps)
	return 1
}

func cString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	return vst2.GoStringFromC(ptr)
}
