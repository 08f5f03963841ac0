package lv2plugin

/*
#include <stdlib.h>
#include "lv2core.h"

extern LV2_URID lv2pluginURIDMap(LV2_URID_Map_Handle handle, const char* uri);
extern const char* lv2pluginURIDUnmap(LV2_URID_Unmap_Handle handle, LV2_URID urid);
extern LV2_Worker_Status lv2pluginWorkerSchedule(LV2_Worker_Schedule_Handle handle, uint32_t size, const void* data);

static LV2_URID_Map* lv2vst_new_urid_map(void* handle) {
	LV2_URID_Map* m = (LV2_URID_Map*)malloc(sizeof(LV2_URID_Map));
	m->handle = handle;
	m->map = lv2pluginURIDMap;
	return m;
}

static LV2_URID_Unmap* lv2vst_new_urid_unmap(void* handle) {
	LV2_URID_Unmap* m = (LV2_URID_Unmap*)malloc(sizeof(LV2_URID_Unmap));
	m->handle = handle;
	m->unmap = lv2pluginURIDUnmap;
	return m;
}

static LV2_Worker_Schedule* lv2vst_new_worker_schedule(void* handle) {
	LV2_Worker_Schedule* s = (LV2_Worker_Schedule*)malloc(sizeof(LV2_Worker_Schedule));
	s->handle = handle;
	s->schedule_work = lv2pluginWorkerSchedule;
	return s;
}

static LV2_Options_Option* lv2vst_new_options_array(int n) {
	return (LV2_Options_Option*)calloc(n + 1, sizeof(LV2_Options_Option));
}

static void lv2vst_set_option(LV2_Options_Option* arr, int i, LV2_URID key, LV2_URID type, uint32_t size, const void* value) {
	arr[i].context = LV2_OPTIONS_INSTANCE;
	arr[i].subject = 0;
	arr[i].key = key;
	arr[i].type = type;
	arr[i].size = size;
	arr[i].value = value;
}

static LV2_Feature* lv2vst_new_feature(const char* uri, void* data) {
	LV2_Feature* f = (LV2_Feature*)malloc(sizeof(LV2_Feature));
	f->URI = uri;
	f->data = data;
	return f;
}

static LV2_Feature** lv2vst_new_feature_array(int n) {
	return (LV2_Feature**)calloc(n + 1, sizeof(LV2_Feature*));
}

static void lv2vst_set_feature(LV2_Feature** arr, int i, LV2_Feature* f) {
	arr[i] = f;
}
*/
import "C"

import (
	"unsafe"

	"github.com/go-lv2/lv2vst/pkg/lv2ext"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
)

// Feature is one entry of the LV2_Feature array passed to instantiate().
// Data is freed by buildFeatureArray's returned closure, never by the
// caller.
type Feature struct {
	URI  string
	Data unsafe.Pointer
}

// InstanceFeatures builds the full LV2_Feature list the bridge always
// supplies: urid:map, urid:unmap, worker:schedule, options:options, and
// buf-size:boundedBlockLength (spec §4.3 step 3/step 4). hostID is the
// handle previously returned by RegisterHost for this instance.
func InstanceFeatures(hostID uintptr, options []lv2ext.OptionValue) []Feature {
	handle := C.lv2vst_id_to_handle(C.uintptr_t(hostID))

	uridMap := C.lv2vst_new_urid_map(handle)
	uridUnmap := C.lv2vst_new_urid_unmap(handle)
	schedule := C.lv2vst_new_worker_schedule(handle)
	optArray := buildOptionsArray(options)

	return []Feature{
		{URI: rdfworld.URIDMap, Data: unsafe.Pointer(uridMap)},
		{URI: rdfworld.URIDUnmap, Data: unsafe.Pointer(uridUnmap)},
		{URI: rdfworld.WorkerSchedule, Data: unsafe.Pointer(schedule)},
		{URI: rdfworld.OptionsInterface, Data: unsafe.Pointer(optArray)},
		{URI: rdfworld.BufSizeBoundedBlockLength, Data: nil},
	}
}

func buildOptionsArray(options []lv2ext.OptionValue) *C.LV2_Options_Option {
	arr := C.lv2vst_new_options_array(C.int(len(options)))
	for i, opt := range options {
		var valuePtr unsafe.Pointer
		if len(opt.Value) > 0 {
			valuePtr = C.CBytes(opt.Value)
		}
		C.lv2vst_set_option(arr, C.int(i), C.LV2_URID(opt.Key), C.LV2_URID(opt.Type), C.uint32_t(len(opt.Value)), valuePtr)
	}
	return arr
}

// buildFeatureArray marshals a []Feature into a NULL-terminated
// `const LV2_Feature* const*` and returns a closure that frees every
// byte it allocated, to be called once instantiate() returns.
func buildFeatureArray(features []Feature) (**C.LV2_Feature, func()) {
	n := len(features)
	arr := C.lv2vst_new_feature_array(C.int(n))
	cFeatures := make([]*C.LV2_Feature, n)
	cURIs := make([]*C.char, n)

	for i, f := range features {
		cURI := C.CString(f.URI)
		cURIs[i] = cURI
		cf := C.lv2vst_new_feature(cURI, f.Data)
		cFeatures[i] = cf
		C.lv2vst_set_feature(arr, C.int(i), cf)
	}

	free := func() {
		for i, cf := range cFeatures {
			if cf.data != nil {
				C.free(cf.data)
			}
			C.free(unsafe.Pointer(cURIs[i]))
			C.free(unsafe.Pointer(cf))
		}
		C.free(unsafe.Pointer(arr))
	}

	return arr, free
}
