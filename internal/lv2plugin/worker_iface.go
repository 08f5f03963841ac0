package lv2plugin

/*
#include "lv2core.h"

extern LV2_Worker_Status lv2pluginRespond(LV2_Worker_Respond_Handle handle, uint32_t size, const void* data);

static LV2_Worker_Status lv2vst_worker_work(const LV2_Worker_Interface* w, LV2_Handle h, LV2_Worker_Respond_Handle rh, uint32_t size, const void* data) {
	return w->work(h, lv2pluginRespond, rh, size, data);
}

static LV2_Worker_Status lv2vst_worker_response(const LV2_Worker_Interface* w, LV2_Handle h, uint32_t size, const void* body) {
	if (!w->work_response) return LV2_WORKER_SUCCESS;
	return w->work_response(h, size, body);
}

static LV2_Worker_Status lv2vst_worker_end_run(const LV2_Worker_Interface* w, LV2_Handle h) {
	if (!w->end_run) return LV2_WORKER_SUCCESS;
	return w->end_run(h);
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

// WorkerInterface wraps a plugin's worker:interface extension data,
// letting pkg/worker.Worker drive it without its own cgo.
type WorkerInterface struct {
	iface  *C.LV2_Worker_Interface
	handle C.LV2_Handle

	respondID uintptr
}

type respondEntry struct {
	respond func([]byte) error
}

var (
	respondMu       sync.RWMutex
	respondRegistry = make(map[uintptr]*respondEntry)
	nextRespondID   uintptr = 1
)

// NewWorkerInterface wraps extData (the return of Instance.ExtensionData
// for worker:interface) bound to instance's handle. Returns nil if
// extData is nil (plugin has no worker interface).
func NewWorkerInterface(in *Instance, extData unsafe.Pointer) *WorkerInterface {
	if extData == nil {
		return nil
	}
	return &WorkerInterface{
		iface:  (*C.LV2_Worker_Interface)(extData),
		handle: in.handle,
	}
}

// Work calls the plugin's work() entry point, routing zero or more
// respond() calls back to respond. Signature matches pkg/worker.Interface.
func (w *WorkerInterface) Work(respond func([]byte) error, data []byte) error {
	respondMu.Lock()
	id := nextRespondID
	nextRespondID++
	respondRegistry[id] = &respondEntry{respond: respond}
	respondMu.Unlock()
	defer func() {
		respondMu.Lock()
		delete(respondRegistry, id)
		respondMu.Unlock()
	}()

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = C.CBytes(data)
		defer C.free(dataPtr)
	}
	rh := C.lv2vst_id_to_handle(C.uintptr_t(id))
	status := C.lv2vst_worker_work(w.iface, w.handle, rh, C.uint32_t(len(data)), dataPtr)
	if status != C.LV2_WORKER_SUCCESS {
		return fmt.Errorf("lv2plugin: worker.work returned status %d", int(status))
	}
	return nil
}

// WorkResponse delivers one response frame already drained from the
// worker's response ring back into the plugin (audio thread context).
func (w *WorkerInterface) WorkResponse(data []byte) error {
	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = C.CBytes(data)
		defer C.free(dataPtr)
	}
	status := C.lv2vst_worker_response(w.iface, w.handle, C.uint32_t(len(data)), dataPtr)
	if status != C.LV2_WORKER_SUCCESS {
		return fmt.Errorf("lv2plugin: worker.work_response returned status %d", int(status))
	}
	return nil
}

// EndRun calls the plugin's optional end_run hook.
func (w *WorkerInterface) EndRun() {
	C.lv2vst_worker_end_run(w.iface, w.handle)
}

//export lv2pluginRespond
func lv2pluginRespond(handle C.LV2_Worker_Respond_Handle, size C.uint32_t, data unsafe.Pointer) C.LV2_Worker_Status {
	respondMu.RLock()
	e := respondRegistry[uintptr(C.lv2vst_handle_to_id(unsafe.Pointer(handle)))]
	respondMu.RUnlock()
	if e == nil {
		return C.LV2_WORKER_ERR_UNKNOWN
	}
	buf := C.GoBytes(data, C.int(size))
	if err := e.respond(buf); err != nil {
		return C.LV2_WORKER_ERR_NO_SPACE
	}
	return C.LV2_WORKER_SUCCESS
}
