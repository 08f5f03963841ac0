package lv2plugin

/*
#include "lv2core.h"

extern LV2_State_Status lv2pluginStore(LV2_State_Handle handle, LV2_URID key, const void* value, size_t size, LV2_URID type, uint32_t flags);
extern const void* lv2pluginRetrieve(LV2_State_Handle handle, LV2_URID key, size_t* size, LV2_URID* type, uint32_t* flags);

static LV2_State_Status lv2vst_state_save(const LV2_State_Interface* s, LV2_Handle h, LV2_State_Handle sh, uint32_t flags) {
	return s->save(h, lv2pluginStore, sh, flags, NULL);
}

static LV2_State_Status lv2vst_state_restore(const LV2_State_Interface* s, LV2_Handle h, LV2_State_Handle sh, uint32_t flags) {
	return s->restore(h, lv2pluginRetrieve, sh, flags, NULL);
}
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-lv2/lv2vst/pkg/lv2ext"
)

// StateInterface wraps a plugin's state:interface extension data.
type StateInterface struct {
	iface  *C.LV2_State_Interface
	handle C.LV2_Handle
}

// NewStateInterface wraps extData, or returns nil if the plugin has no
// state interface.
func NewStateInterface(in *Instance, extData unsafe.Pointer) *StateInterface {
	if extData == nil {
		return nil
	}
	return &StateInterface{iface: (*C.LV2_State_Interface)(extData), handle: in.handle}
}

type stateSession struct {
	store    lv2ext.StoreFunc
	retrieve lv2ext.RetrieveFunc

	mu       sync.Mutex
	liveBufs []unsafe.Pointer
}

var (
	stateMu       sync.RWMutex
	stateSessions = make(map[uintptr]*stateSession)
	nextStateID   uintptr = 1
)

// Save drives the plugin's save() entry point, routing every
// store() call it makes into store.
func (s *StateInterface) Save(store lv2ext.StoreFunc, flags uint32) error {
	id := registerSession(&stateSession{store: store})
	defer unregisterSession(id)

	sh := C.lv2vst_id_to_handle(C.uintptr_t(id))
	status := C.lv2vst_state_save(s.iface, s.handle, sh, C.uint32_t(flags))
	if status != C.LV2_STATE_SUCCESS {
		return fmt.Errorf("lv2plugin: state.save returned status %d", int(status))
	}
	return nil
}

// Restore drives the plugin's restore() entry point, routing every
// retrieve() call it makes into retrieve.
func (s *StateInterface) Restore(retrieve lv2ext.RetrieveFunc, flags uint32) error {
	session := &stateSession{retrieve: retrieve}
	id := registerSession(session)
	defer func() {
		unregisterSession(id)
		for _, p := range session.liveBufs {
			C.free(p)
		}
	}()

	sh := C.lv2vst_id_to_handle(C.uintptr_t(id))
	status := C.lv2vst_state_restore(s.iface, s.handle, sh, C.uint32_t(flags))
	if status != C.LV2_STATE_SUCCESS {
		return fmt.Errorf("lv2plugin: state.restore returned status %d", int(status))
	}
	return nil
}

func registerSession(s *stateSession) uintptr {
	stateMu.Lock()
	defer stateMu.Unlock()
	id := nextStateID
	nextStateID++
	stateSessions[id] = s
	return id
}

func unregisterSession(id uintptr) {
	stateMu.Lock()
	defer stateMu.Unlock()
	delete(stateSessions, id)
}

func lookupSession(handle unsafe.Pointer) *stateSession {
	id := uintptr(C.lv2vst_handle_to_id(handle))
	stateMu.RLock()
	defer stateMu.RUnlock()
	return stateSessions[id]
}

//export lv2pluginStore
func lv2pluginStore(handle C.LV2_State_Handle, key C.LV2_URID, value unsafe.Pointer, size C.size_t, valueType C.LV2_URID, flags C.uint32_t) C.LV2_State_Status {
	s := lookupSession(unsafe.Pointer(handle))
	if s == nil || s.store == nil {
		return C.LV2_STATE_ERR_UNKNOWN
	}
	buf := C.GoBytes(value, C.int(size))
	if err := s.store(uint32(key), buf, uint32(valueType), uint32(flags)); err != nil {
		return C.LV2_STATE_ERR_UNKNOWN
	}
	return C.LV2_STATE_SUCCESS
}

//export lv2pluginRetrieve
func lv2pluginRetrieve(handle C.LV2_State_Handle, key C.LV2_URID, size *C.size_t, valueType *C.LV2_URID, flags *C.uint32_t) unsafe.Pointer {
	s := lookupSession(unsafe.Pointer(handle))
	if s == nil || s.retrieve == nil {
		return nil
	}
	value, typ, fl, ok := s.retrieve(uint32(key))
	if !ok {
		return nil
	}

	*size = C.size_t(len(value))
	*valueType = C.LV2_URID(typ)
	*flags = C.uint32_t(fl)
	if len(value) == 0 {
		return nil
	}

	cBuf := C.CBytes(value)
	s.mu.Lock()
	s.liveBufs = append(s.liveBufs, cBuf)
	s.mu.Unlock()
	return cBuf
}
