// Package lv2plugin is the cgo boundary between the bridge core and a
// hosted LV2 plugin's shared object: it resolves lv2_descriptor,
// selects a descriptor by index, and drives instantiate/connect_port/
// activate/run/deactivate/cleanup/extension_data through it. Mirrors
// original_source/src/lv2vst.cc's LV2Host, generalized from one fixed
// plugin per process to any descriptor the resolver selected.
package lv2plugin

/*
#include <stdlib.h>
#include "lv2core.h"

static const LV2_Descriptor* lv2vst_get_descriptor(LV2_Descriptor_Function fn, uint32_t index) {
	return fn(index);
}

static LV2_Handle lv2vst_instantiate(const LV2_Descriptor* d, double sample_rate, const char* bundle_path, LV2_Feature** features) {
	return d->instantiate(d, sample_rate, bundle_path, (const LV2_Feature* const*)features);
}

static void lv2vst_connect_port(const LV2_Descriptor* d, LV2_Handle h, uint32_t port, void* data) {
	d->connect_port(h, port, data);
}

static void lv2vst_activate(const LV2_Descriptor* d, LV2_Handle h) {
	if (d->activate) d->activate(h);
}

static void lv2vst_run(const LV2_Descriptor* d, LV2_Handle h, uint32_t n) {
	d->run(h, n);
}

static void lv2vst_deactivate(const LV2_Descriptor* d, LV2_Handle h) {
	if (d->deactivate) d->deactivate(h);
}

static void lv2vst_cleanup(const LV2_Descriptor* d, LV2_Handle h) {
	d->cleanup(h);
}

static const void* lv2vst_extension_data(const LV2_Descriptor* d, const char* uri) {
	if (!d->extension_data) return NULL;
	return d->extension_data(uri);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Descriptor is one LV2_Descriptor selected by index from a library's
// lv2_descriptor entry point.
type Descriptor struct {
	ptr *C.LV2_Descriptor
}

// URI returns the descriptor's plugin URI.
func (d *Descriptor) URI() string {
	return C.GoString(d.ptr.URI)
}

// Open resolves lv2_descriptor in a dlopen'd library (given its raw
// symbol address from pkg/dynload) and returns a typed lookup function.
func Open(descriptorFnAddr uintptr) (func(index uint32) (*Descriptor, error), error) {
	if descriptorFnAddr == 0 {
		return nil, fmt.Errorf("lv2plugin: nil lv2_descriptor address")
	}
	fn := C.LV2_Descriptor_Function(unsafe.Pointer(descriptorFnAddr))
	return func(index uint32) (*Descriptor, error) {
		d := C.lv2vst_get_descriptor(fn, C.uint32_t(index))
		if d == nil {
			return nil, fmt.Errorf("lv2plugin: no descriptor at index %d", index)
		}
		return &Descriptor{ptr: d}, nil
	}, nil
}

// FindByURI walks lookup(0), lookup(1), ... until it finds a descriptor
// whose URI matches uri or the library runs out of descriptors, mirroring
// lv2vst.cc's linear scan over the shared object's plugin shelf.
func FindByURI(lookup func(index uint32) (*Descriptor, error), uri string) (*Descriptor, error) {
	for i := uint32(0); ; i++ {
		d, err := lookup(i)
		if err != nil {
			return nil, fmt.Errorf("lv2plugin: URI %s not found in library: %w", uri, err)
		}
		if d.URI() == uri {
			return d, nil
		}
	}
}

// Instance is a live, instantiated plugin.
type Instance struct {
	desc   *C.LV2_Descriptor
	handle C.LV2_Handle
}

// Instantiate calls LV2_Descriptor.instantiate. bundlePath must stay
// valid only for the duration of the call, matching the LV2 contract.
func (d *Descriptor) Instantiate(sampleRate float64, bundlePath string, features []Feature) (*Instance, error) {
	cBundle := C.CString(bundlePath)
	defer C.free(unsafe.Pointer(cBundle))

	cFeatures, free := buildFeatureArray(features)
	defer free()

	h := C.lv2vst_instantiate(d.ptr, C.double(sampleRate), cBundle, cFeatures)
	if h == nil {
		return nil, fmt.Errorf("lv2plugin: instantiate failed for %s", d.URI())
	}
	return &Instance{desc: d.ptr, handle: h}, nil
}

// ConnectPort binds a port index to a data buffer owned by the caller.
// ptr must remain valid until the next ConnectPort call for that index
// or Cleanup, whichever comes first — never called from the audio
// thread with a newly allocated buffer (spec: allocation happens at
// instantiate/activate time only).
func (in *Instance) ConnectPort(port uint32, ptr unsafe.Pointer) {
	C.lv2vst_connect_port(in.desc, in.handle, C.uint32_t(port), ptr)
}

// Activate transitions the plugin into the running state.
func (in *Instance) Activate() {
	C.lv2vst_activate(in.desc, in.handle)
}

// Run executes one process cycle of sampleCount frames.
func (in *Instance) Run(sampleCount uint32) {
	C.lv2vst_run(in.desc, in.handle, C.uint32_t(sampleCount))
}

// Deactivate transitions the plugin out of the running state.
func (in *Instance) Deactivate() {
	C.lv2vst_deactivate(in.desc, in.handle)
}

// Cleanup destroys the instance. The Instance must not be used again.
func (in *Instance) Cleanup() {
	C.lv2vst_cleanup(in.desc, in.handle)
}

// ExtensionData resolves one of the plugin's extension_data entries
// (worker:interface, options:interface, state:interface), or nil if it
// does not implement uri.
func (in *Instance) ExtensionData(uri string) unsafe.Pointer {
	cURI := C.CString(uri)
	defer C.free(unsafe.Pointer(cURI))
	return unsafe.Pointer(C.lv2vst_extension_data(in.desc, cURI))
}
