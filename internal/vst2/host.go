package vst2

/*
#include "vestige.h"

static intptr_t lv2vst_call_host(audioMasterCallback cb, AEffect* effect, int32_t opcode, int32_t index, intptr_t value, void* ptr, float opt) {
	if (!cb) {
		return 0;
	}
	return cb(effect, opcode, index, value, ptr, opt);
}
*/
import "C"

import "unsafe"

// Host is the audioMasterCallback the host passed to VSTPluginMain,
// bound to the Effect it controls so the bridge core can call back
// into the host (audioMasterProcessEvents, audioMasterGetTime, ...)
// without threading the raw callback pointer through every call site.
type Host struct {
	cb     C.audioMasterCallback
	effect *Effect
}

// NewHost wraps a raw audioMasterCallback captured from VSTPluginMain.
func NewHost(cb unsafe.Pointer, effect *Effect) *Host {
	return &Host{cb: C.audioMasterCallback(cb), effect: effect}
}

// Call invokes the host's callback, mirroring the dispatcher signature
// but in the opposite direction.
func (h *Host) Call(opcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	if h == nil || h.cb == nil {
		return 0
	}
	r := C.lv2vst_call_host(h.cb, h.effect.ptr, C.int32_t(opcode), C.int32_t(index), C.intptr_t(value), ptr, C.float(opt))
	return int64(r)
}
