package bridge

import (
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/atomforge"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
)

// pendingMidiIn is filled by effProcessEvents (dispatch.go) between
// process cycles and drained at the top of the next Process call.
type pendingMidiIn struct {
	deltaFrames int32
	data        [3]byte
}

// Process runs one VST2 process cycle, implementing the full 11-step
// algorithm of spec §4.5.4. Called only from the host's audio thread.
// It does not log, but it briefly takes c.mu to read the UI flags, and
// it allocates when it forges a time:Position object and when it hands
// MIDI output to the host.
func (c *Core) Process(inputs, outputs [][]float32, sampleFrames int32) {
	n := uint32(sampleFrames)

	// Step 1: re-point audio port buffers to this cycle's host buffers.
	c.connectAudioPorts(inputs, outputs)

	// Step 2: query the host's transport position.
	c.queryTransport()

	// Step 3: build the input atom sequence (time position, UI-forwarded
	// atoms, queued MIDI input), if the plugin has an atom/MIDI input port.
	if in := c.atomInPort(); in != nil {
		in.seq.Reset()
		if c.desc.SendTimeInfo && c.transportChanged() {
			c.appendTimePosition(in.seq)
		}
		c.drainAtomFromUI(in.seq)
		c.drainMidiIn(in.seq)
	}

	// Step 4: reset the output atom/MIDI sequence so the plugin starts
	// this cycle with an empty one.
	if out := c.atomOutPort(); out != nil {
		out.seq.Reset()
	}

	// Step 5: snapshot pre-run control values for the post-run diff.
	c.snapshotControlsPre()

	// Step 6: run the plugin.
	c.instance.Run(n)

	// Step 7: drain worker responses produced by prior Work() calls.
	if c.worker != nil {
		c.worker.EmitResponse()
	}

	// Step 8: advance the cached sample position if the transport is rolling.
	if c.transport.playing {
		c.transport.samplePos += int64(n)
	}

	// Step 9: publish control changes to the UI ring.
	c.publishControlsToUI()

	// Step 10: forward atom/MIDI output to the UI ring and the host.
	if out := c.atomOutPort(); out != nil && out.seq.Len() > atomHeaderLen {
		c.pushAtomToUI(out.seq)
		c.sendMidiOutToHost(out.seq)
	}

	// Step 11: let the plugin know this cycle (and its worker responses) is done.
	if c.worker != nil {
		c.worker.EndRun()
	}

	c.pendingMidi = c.pendingMidi[:0]
}

// atomHeaderLen is the size of an empty Atom Sequence's outer header.
const atomHeaderLen = 8

func (c *Core) connectAudioPorts(inputs, outputs [][]float32) {
	in, out := 0, 0
	for i := range c.ports {
		ps := &c.ports[i]
		switch ps.desc.Kind {
		case lv2model.AudioIn:
			if in < len(inputs) {
				c.instance.ConnectPort(ps.index, floatPtr(inputs[in]))
			}
			in++
		case lv2model.AudioOut:
			if out < len(outputs) {
				c.instance.ConnectPort(ps.index, floatPtr(outputs[out]))
			}
			out++
		}
	}
}

func floatPtr(buf []float32) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}

func (c *Core) atomInPort() *portState {
	for i := range c.ports {
		if k := c.ports[i].desc.Kind; k == lv2model.AtomIn || k == lv2model.MidiIn {
			return &c.ports[i]
		}
	}
	return nil
}

func (c *Core) atomOutPort() *portState {
	for i := range c.ports {
		if k := c.ports[i].desc.Kind; k == lv2model.AtomOut || k == lv2model.MidiOut {
			return &c.ports[i]
		}
	}
	return nil
}

// queryTransport asks the host for the current transport position via
// audioMasterGetTime, filling c.transport from the returned VstTimeInfo.
func (c *Core) queryTransport() {
	c.prevTransport = c.transport

	wantFlags := vst2.VstPpqPosValid | vst2.VstTimeSigValid | vst2.VstTempoValid
	ret := c.host.Call(vst2.AudioMasterGetTime, 0, int64(wantFlags), nil, 0)
	if ret == 0 {
		return
	}
	ti := (*vstTimeInfo)(unsafe.Pointer(uintptr(ret)))

	c.transport.valid = true
	c.transport.playing = ti.flags&vst2.VstTransportPlaying != 0
	c.transport.samplePos = int64(ti.samplePos)
	c.transport.havePpqBar = ti.flags&vst2.VstPpqPosValid != 0

	if c.transport.havePpqBar {
		beatsPerBar := float64(ti.timeSigNumerator)
		denominator := float64(ti.timeSigDenominator)
		c.transport.ppqPos = ti.ppqPos
		c.transport.bar = int32(ti.ppqPos / (beatsPerBar * 4.0 / denominator))
		c.transport.beatsPerBar = beatsPerBar
		c.transport.beatUnit = ti.timeSigDenominator
		barStartPpq := float64(c.transport.bar) * (beatsPerBar * 4.0 / denominator)
		c.transport.barBeat = ti.ppqPos - barStartPpq
	}
	if ti.flags&vst2.VstTempoValid != 0 {
		c.transport.bpm = ti.tempo
	}
}

// transportChanged reports whether the host's transport position moved
// since the last cycle, diffed against the cached prevTransport snapshot
// queryTransport takes at the top of every cycle. Mirrors
// original_source/src/lv2vst.cc's run() comparing the freshly queried
// VstTimeInfo against its cached _ti rather than recomputed bar/beat
// (which derives from samplePos and would differ every cycle anyway
// while rolling).
func (c *Core) transportChanged() bool {
	p, t := c.prevTransport, c.transport
	return !p.valid ||
		p.playing != t.playing ||
		p.samplePos != t.samplePos ||
		p.bpm != t.bpm ||
		p.beatUnit != t.beatUnit ||
		p.beatsPerBar != t.beatsPerBar
}

func (c *Core) appendTimePosition(seq *atomforge.Sequence) {
	props := []atomforge.Property{
		{Key: c.timeFrameURID, ValType: c.atomLongURID, Value: atomforge.Int64Bytes(c.transport.samplePos)},
		{Key: c.timeSpeedURID, ValType: c.atomFloatURID, Value: atomforge.Float32Bytes(speedOf(c.transport.playing))},
	}
	if c.transport.havePpqBar {
		props = append(props,
			atomforge.Property{Key: c.timeBarBeatURID, ValType: c.atomDoubleURID, Value: atomforge.Float64Bytes(c.transport.barBeat)},
			atomforge.Property{Key: c.timeBarURID, ValType: c.atomDoubleURID, Value: atomforge.Float64Bytes(float64(c.transport.bar))},
			atomforge.Property{Key: c.timeBeatUnitURID, ValType: c.atomIntURID, Value: atomforge.Int32Bytes(c.transport.beatUnit)},
			atomforge.Property{Key: c.timeBeatsPerBarURID, ValType: c.atomDoubleURID, Value: atomforge.Float64Bytes(c.transport.beatsPerBar)},
			atomforge.Property{Key: c.timeBPMURID, ValType: c.atomDoubleURID, Value: atomforge.Float64Bytes(c.transport.bpm)},
		)
	}
	body := atomforge.ObjectBody(c.timePositionURID, props)
	seq.AppendEvent(0, c.atomObjectURID, body)
}

func speedOf(playing bool) float32 {
	if playing {
		return 1
	}
	return 0
}

// drainAtomFromUI copies every frame the UI thread has queued into the
// plugin's input sequence at frame 0, stopping early (silently dropping
// the rest this cycle) once the sequence runs out of room. Reads into
// c.atomFromUIScratch rather than allocating per frame.
func (c *Core) drainAtomFromUI(seq *atomforge.Sequence) {
	for {
		n, ok := c.atomFromUI.ReadFrameInto(c.atomFromUIScratch)
		if !ok {
			return
		}
		if !seq.AppendEvent(0, c.atomObjectURID, c.atomFromUIScratch[:n]) {
			return
		}
	}
}

func (c *Core) drainMidiIn(seq *atomforge.Sequence) {
	for _, ev := range c.pendingMidi {
		n := atomforge.WireLength(ev.data[0])
		if !seq.AppendEvent(int64(ev.deltaFrames), c.midiEventURID, ev.data[:n]) {
			return
		}
	}
}

func (c *Core) snapshotControlsPre() {
	for i := range c.ports {
		ps := &c.ports[i]
		if ps.desc.Kind == lv2model.ControlOut {
			ps.preRunValue = ps.ctrlValue
		}
	}
}

// publishControlsToUI emits every ControlIn value on a pending UI sync,
// and every ControlOut value that changed during the run (all of them on
// a pending sync); nothing is emitted while the UI is closed — matching
// spec §4.5.4 step 9. It also mirrors any latency port into the VST2
// effect's initialDelay.
func (c *Core) publishControlsToUI() {
	c.mu.Lock()
	uiOpen := c.uiOpen
	uiSync := c.uiSync
	c.mu.Unlock()

	if uiSync && uiOpen {
		for i := range c.ports {
			ps := &c.ports[i]
			if ps.desc.Kind == lv2model.ControlIn {
				c.pushCtrlToUI(ps.index, ps.ctrlValue)
			}
		}
	}

	for i := range c.ports {
		ps := &c.ports[i]
		if ps.desc.Kind != lv2model.ControlOut {
			continue
		}
		if ps.ctrlValue != ps.preRunValue || uiSync {
			if uiOpen {
				c.pushCtrlToUI(ps.index, ps.ctrlValue)
			}
		}
		if i == c.desc.LatencyCtrlPort {
			c.effect.SetInitialDelay(int32(ps.ctrlValue))
		}
	}

	if uiOpen && uiSync {
		c.mu.Lock()
		c.uiSync = false
		c.mu.Unlock()
	}
}

// pushAtomToUI forwards the output sequence's bytes to the UI ring,
// dropping them silently if there is no room.
func (c *Core) pushAtomToUI(seq *atomforge.Sequence) {
	c.atomToUI.TryWriteFrame(seq.Bytes())
}

// sendMidiOutToHost re-frames any MIDI-typed events in the output
// sequence as VstEvents and calls audioMasterProcessEvents. Non-MIDI
// atom output (a plugin's own custom event types) is UI-only and is
// not forwarded to the host, which only understands VstMidiEvent.
func (c *Core) sendMidiOutToHost(seq *atomforge.Sequence) {
	c.midiOutScratch = c.midiOutScratch[:0]
	for _, ev := range seq.Events() {
		if ev.Type != c.midiEventURID {
			continue
		}
		c.midiOutScratch = append(c.midiOutScratch, vst2.MidiOutEvent{DeltaFrames: int32(ev.Frames), Data: ev.Data})
	}
	if len(c.midiOutScratch) == 0 {
		return
	}

	ptr, free := vst2.BuildVstEvents(c.midiOutScratch)
	defer free()
	c.host.Call(vst2.AudioMasterProcessEvents, 0, 0, ptr, 0)
}

// vstTimeInfo mirrors VstTimeInfo's field layout for the fields the
// bridge reads out of audioMasterGetTime's returned pointer.
type vstTimeInfo struct {
	samplePos         float64
	sampleRate        float64
	nanoSeconds       float64
	ppqPos            float64
	tempo             float64
	barStartPos       float64
	cycleStartPos     float64
	cycleEndPos       float64
	timeSigNumerator  int32
	timeSigDenominator int32
	smpteOffset       int32
	smpteFrameRate    int32
	samplesToNextClock int32
	flags             int32
}
