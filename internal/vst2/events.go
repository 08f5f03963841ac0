package vst2

/*
#include <stdlib.h>
#include "vestige.h"

static struct VstEvents* lv2vst_new_vst_events(int n) {
	size_t sz = sizeof(struct VstEvents) + (n > 2 ? (n - 2) : 0) * sizeof(struct VstEvent*);
	struct VstEvents* ev = (struct VstEvents*)calloc(1, sz);
	ev->numEvents = n;
	return ev;
}

static void lv2vst_set_vst_event(struct VstEvents* evs, int i, struct VstEvent* e) {
	evs->events[i] = e;
}

static struct VstEvent* lv2vst_new_midi_event(int32_t deltaFrames, const char* data, int len) {
	struct VstMidiEvent* e = (struct VstMidiEvent*)calloc(1, sizeof(struct VstMidiEvent));
	e->type = 1; // kVstMidiType
	e->byteSize = sizeof(struct VstMidiEvent);
	e->deltaFrames = deltaFrames;
	for (int i = 0; i < len && i < 4; i++) {
		e->midiData[i] = data[i];
	}
	return (struct VstEvent*)e;
}
*/
import "C"

import "unsafe"

// MidiOutEvent is one forged MIDI message ready to cross back to the
// host, trimmed to what VstMidiEvent needs.
type MidiOutEvent struct {
	DeltaFrames int32
	Data        []byte
}

// BuildVstEvents marshals events into a host-ready VstEvents* and
// returns a closure that frees every byte it allocated. Call free once
// the host's audioMasterProcessEvents call returns — the host does not
// retain the pointer past that call, per the VST2 contract.
func BuildVstEvents(events []MidiOutEvent) (unsafe.Pointer, func()) {
	n := len(events)
	evs := C.lv2vst_new_vst_events(C.int(n))
	raw := make([]*C.struct_VstEvent, n)

	for i, e := range events {
		cData := C.CBytes(e.Data)
		ev := C.lv2vst_new_midi_event(C.int32_t(e.DeltaFrames), (*C.char)(cData), C.int(len(e.Data)))
		C.free(cData)
		raw[i] = ev
		C.lv2vst_set_vst_event(evs, C.int(i), ev)
	}

	free := func() {
		for _, ev := range raw {
			C.free(unsafe.Pointer(ev))
		}
		C.free(unsafe.Pointer(evs))
	}
	return unsafe.Pointer(evs), free
}

// kVstMidiType is VstEvent.type's value for a VstMidiEvent.
const kVstMidiType = 1

// DecodeVstEvents reads a host-owned VstEvents* (as received by
// effProcessEvents) into plain Go structs. The host owns the memory;
// callers must not retain slices into it past the dispatcher call.
func DecodeVstEvents(ptr unsafe.Pointer) []MidiOutEvent {
	if ptr == nil {
		return nil
	}
	evs := (*C.struct_VstEvents)(ptr)
	n := int(evs.numEvents)
	if n <= 0 {
		return nil
	}
	eventPtrs := unsafe.Slice((**C.struct_VstEvent)(unsafe.Pointer(&evs.events[0])), n)

	out := make([]MidiOutEvent, 0, n)
	for _, ev := range eventPtrs {
		if ev == nil || ev._type != kVstMidiType {
			continue
		}
		midi := (*C.struct_VstMidiEvent)(unsafe.Pointer(ev))
		data := C.GoBytes(unsafe.Pointer(&midi.midiData[0]), 4)
		out = append(out, MidiOutEvent{DeltaFrames: int32(midi.deltaFrames), Data: data})
	}
	return out
}
