package vst2

import (
	"sync"
	"unsafe"
)

// Instance is the Go-side object the four AEffect callbacks are routed
// to. pkg/bridge.Core implements this. ptr is the dispatcher's raw
// void* argument, whose meaning depends on opcode — pkg/bridge/dispatch.go
// interprets it per opcode.
type Instance interface {
	Dispatch(opcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64
	Process(inputs, outputs [][]float32, sampleFrames int32)
	SetParameter(index int32, value float32)
	GetParameter(index int32) float32
}

var (
	registryMu sync.RWMutex
	registry   = make(map[uintptr]Instance)
	nextID     uintptr = 1
)

// NewInstance allocates an AEffect, registers inst under a fresh
// integer ID stashed in AEffect.user, and returns the Effect handle the
// caller returns to the host (from VSTPluginMain).
func NewInstance(inst Instance, numParams, numPrograms, numInputs, numOutputs int32, uniqueID, version int32, flags int32) *Effect {
	e := newAEffect()
	e.setCounts(numParams, numPrograms, numInputs, numOutputs)
	e.setUniqueID(uniqueID)
	e.setVersion(version)
	e.setFlags(flags)

	registryMu.Lock()
	id := nextID
	nextID++
	registry[id] = inst
	registryMu.Unlock()

	e.setUser(id)
	return e
}

// Release removes an instance's registry entry. Call exactly once,
// from effClose.
func Release(e *Effect) {
	id := userID(e.ptr)
	registryMu.Lock()
	delete(registry, id)
	registryMu.Unlock()
}

func lookup(id uintptr) Instance {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[id]
}
