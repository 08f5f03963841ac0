package lv2plugin

/*
#include <stdlib.h>
#include "lv2core.h"

extern LV2_URID lv2pluginURIDMap(LV2_URID_Map_Handle handle, const char* uri);
extern const char* lv2pluginURIDUnmap(LV2_URID_Unmap_Handle handle, LV2_URID urid);
extern LV2_Worker_Status lv2pluginWorkerSchedule(LV2_Worker_Schedule_Handle handle, uint32_t size, const void* data);

static void* lv2vst_id_to_handle(uintptr_t id) {
	return (void*)id;
}

static uintptr_t lv2vst_handle_to_id(void* h) {
	return (uintptr_t)h;
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// HostCallbacks are the Go-side implementations of the three feature
// callbacks every instance receives: urid:map/unmap and worker:schedule.
// pkg/bridge supplies closures over its uriid.Map and pkg/worker.Worker.
type HostCallbacks struct {
	Map      func(uri string) uint32
	Unmap    func(id uint32) string
	Schedule func(data []byte) error
}

type hostEntry struct {
	cb HostCallbacks

	mu         sync.Mutex
	unmapCache map[uint32]*C.char
}

var (
	hostMu       sync.RWMutex
	hostRegistry = make(map[uintptr]*hostEntry)
	nextHostID   uintptr = 1
)

// RegisterHost installs cb under a fresh integer handle, passed to the
// plugin as the feature's C handle rather than a raw Go pointer.
func RegisterHost(cb HostCallbacks) uintptr {
	hostMu.Lock()
	defer hostMu.Unlock()
	id := nextHostID
	nextHostID++
	hostRegistry[id] = &hostEntry{cb: cb, unmapCache: make(map[uint32]*C.char)}
	return id
}

// UnregisterHost releases a handle's registry entry and any cached
// unmap strings. Call once, from the bridge's cleanup path.
func UnregisterHost(id uintptr) {
	hostMu.Lock()
	e := hostRegistry[id]
	delete(hostRegistry, id)
	hostMu.Unlock()

	if e == nil {
		return
	}
	e.mu.Lock()
	for _, s := range e.unmapCache {
		C.free(unsafe.Pointer(s))
	}
	e.mu.Unlock()
}

func lookupHost(id uintptr) *hostEntry {
	hostMu.RLock()
	defer hostMu.RUnlock()
	return hostRegistry[id]
}

//export lv2pluginURIDMap
func lv2pluginURIDMap(handle C.LV2_URID_Map_Handle, uri *C.char) C.LV2_URID {
	e := lookupHost(uintptr(C.lv2vst_handle_to_id(unsafe.Pointer(handle))))
	if e == nil {
		return 0
	}
	return C.LV2_URID(e.cb.Map(C.GoString(uri)))
}

//export lv2pluginURIDUnmap
func lv2pluginURIDUnmap(handle C.LV2_URID_Unmap_Handle, urid C.LV2_URID) *C.char {
	e := lookupHost(uintptr(C.lv2vst_handle_to_id(unsafe.Pointer(handle))))
	if e == nil {
		return nil
	}
	id := uint32(urid)

	e.mu.Lock()
	defer e.mu.Unlock()
	if cached, ok := e.unmapCache[id]; ok {
		return cached
	}
	uri := e.cb.Unmap(id)
	cStr := C.CString(uri)
	e.unmapCache[id] = cStr
	return cStr
}

//export lv2pluginWorkerSchedule
func lv2pluginWorkerSchedule(handle C.LV2_Worker_Schedule_Handle, size C.uint32_t, data unsafe.Pointer) C.LV2_Worker_Status {
	e := lookupHost(uintptr(C.lv2vst_handle_to_id(unsafe.Pointer(handle))))
	if e == nil {
		return C.LV2_WORKER_ERR_UNKNOWN
	}
	buf := C.GoBytes(data, C.int(size))
	if err := e.cb.Schedule(buf); err != nil {
		return C.LV2_WORKER_ERR_NO_SPACE
	}
	return C.LV2_WORKER_SUCCESS
}
