package vst2

/*
#include "vestige.h"
*/
import "C"

import "unsafe"

//export lv2vstDispatch
func lv2vstDispatch(effect *C.AEffect, opcode, index C.int32_t, value C.intptr_t, ptr unsafe.Pointer, opt C.float) C.intptr_t {
	inst := lookup(userID(effect))
	if inst == nil {
		return 0
	}
	result := inst.Dispatch(int32(opcode), int32(index), int64(value), ptr, float32(opt))
	return C.intptr_t(result)
}

//export lv2vstProcess
func lv2vstProcess(effect *C.AEffect, inputs, outputs **C.float, sampleFrames C.int32_t) {
	inst := lookup(userID(effect))
	if inst == nil {
		return
	}
	numIn := int(effect.numInputs)
	numOut := int(effect.numOutputs)
	n := int(sampleFrames)

	in := channelSlices(inputs, numIn, n)
	out := channelSlices(outputs, numOut, n)
	inst.Process(in, out, int32(sampleFrames))
}

//export lv2vstSetParameter
func lv2vstSetParameter(effect *C.AEffect, index C.int32_t, value C.float) {
	if inst := lookup(userID(effect)); inst != nil {
		inst.SetParameter(int32(index), float32(value))
	}
}

//export lv2vstGetParameter
func lv2vstGetParameter(effect *C.AEffect, index C.int32_t) C.float {
	inst := lookup(userID(effect))
	if inst == nil {
		return 0
	}
	return C.float(inst.GetParameter(int32(index)))
}

// channelSlices reinterprets a host-owned float** as a slice of
// per-channel Go float32 slices, each sampleFrames long. The backing
// arrays are host memory valid only for the duration of this process
// call — callers must not retain them past return.
func channelSlices(channels **C.float, numChannels, sampleFrames int) [][]float32 {
	if channels == nil || numChannels == 0 {
		return nil
	}
	chanPtrs := unsafe.Slice(channels, numChannels)
	out := make([][]float32, numChannels)
	for i, p := range chanPtrs {
		if p == nil {
			continue
		}
		out[i] = unsafe.Slice((*float32)(unsafe.Pointer(p)), sampleFrames)
	}
	return out
}
