// Package vst2 is the cgo boundary between a hosted LV2 plugin and the
// VST 2.4 host: it allocates and owns the AEffect C struct every VST2
// host expects, and routes the four callbacks a host invokes
// (dispatcher, process, setParameter, getParameter) to a Go-side
// Instance. Modeled on the teacher's plugin/wrapper.go pattern — a
// global, mutex-protected registry of wrappers keyed by an integer ID
// rather than a raw Go pointer, since passing a Go pointer through a C
// void* and back is unsafe once the garbage collector can move or
// collect it.
package vst2

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
#include <string.h>
#include "vestige.h"

extern intptr_t lv2vstDispatch(AEffect* effect, int32_t opcode, int32_t index, intptr_t value, void* ptr, float opt);
extern void lv2vstProcess(AEffect* effect, float** inputs, float** outputs, int32_t sampleFrames);
extern void lv2vstSetParameter(AEffect* effect, int32_t index, float value);
extern float lv2vstGetParameter(AEffect* effect, int32_t index);

static AEffect* lv2vst_new_aeffect(void) {
	AEffect* e = (AEffect*)calloc(1, sizeof(AEffect));
	if (!e) {
		return NULL;
	}
	e->magic = 0x56737450; // 'VstP'
	e->dispatcher = (dispatcherCallback)lv2vstDispatch;
	e->process = (processCallback)lv2vstProcess;
	e->processReplacing = (processCallback)lv2vstProcess;
	e->setParameter = (setParameterCallback)lv2vstSetParameter;
	e->getParameter = (getParameterCallback)lv2vstGetParameter;
	return e;
}

static void lv2vst_set_user(AEffect* e, uintptr_t id) {
	e->user = (void*)id;
}

static uintptr_t lv2vst_get_user(AEffect* e) {
	return (uintptr_t)e->user;
}
*/
import "C"

import (
	"unsafe"
)

// Effect is an opaque handle to the AEffect struct a host talks to.
type Effect struct {
	ptr *C.AEffect
}

// Pointer returns the raw AEffect* for the host (e.g. to return from
// VSTPluginMain).
func (e *Effect) Pointer() unsafe.Pointer { return unsafe.Pointer(e.ptr) }

func newAEffect() *Effect {
	return &Effect{ptr: C.lv2vst_new_aeffect()}
}

func (e *Effect) setUser(id uintptr) {
	C.lv2vst_set_user(e.ptr, C.uintptr_t(id))
}

func userID(effect *C.AEffect) uintptr {
	return uintptr(C.lv2vst_get_user(effect))
}

func (e *Effect) setCounts(numParams, numPrograms, numInputs, numOutputs int32) {
	e.ptr.numParams = C.int32_t(numParams)
	e.ptr.numPrograms = C.int32_t(numPrograms)
	e.ptr.numInputs = C.int32_t(numInputs)
	e.ptr.numOutputs = C.int32_t(numOutputs)
}

func (e *Effect) setFlags(flags int32) {
	e.ptr.flags = C.int32_t(flags)
}

func (e *Effect) setUniqueID(id int32) {
	e.ptr.uniqueID = C.int32_t(id)
}

func (e *Effect) setVersion(v int32) {
	e.ptr.version = C.int32_t(v)
}

// SetInitialDelay sets the AEffect's reported plugin latency, in samples.
func (e *Effect) SetInitialDelay(n int32) {
	e.ptr.initialDelay = C.int32_t(n)
}
