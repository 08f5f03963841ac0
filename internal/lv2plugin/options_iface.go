package lv2plugin

/*
#include <stdlib.h>
#include "lv2core.h"

static uint32_t lv2vst_options_set(const LV2_Options_Interface* o, LV2_Handle h, const LV2_Options_Option* opts) {
	if (!o->set) return LV2_OPTIONS_ERR_UNKNOWN;
	return o->set(h, opts);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/go-lv2/lv2vst/pkg/lv2ext"
)

// OptionsInterface wraps a plugin's options:interface extension data,
// used to forward a changed block length from effSetBlockSize (spec
// §4.5.2) after instantiation without a full re-init.
type OptionsInterface struct {
	iface  *C.LV2_Options_Interface
	handle C.LV2_Handle
}

// NewOptionsInterface wraps extData, or returns nil if the plugin has
// no options interface.
func NewOptionsInterface(in *Instance, extData unsafe.Pointer) *OptionsInterface {
	if extData == nil {
		return nil
	}
	return &OptionsInterface{iface: (*C.LV2_Options_Interface)(extData), handle: in.handle}
}

// Set pushes one updated option (e.g. buf-size:nominalBlockLength) into
// the running plugin.
func (o *OptionsInterface) Set(opt lv2ext.OptionValue) error {
	var valuePtr unsafe.Pointer
	if len(opt.Value) > 0 {
		valuePtr = C.CBytes(opt.Value)
		defer C.free(valuePtr)
	}

	carr := C.lv2vst_new_options_array(1)
	defer C.free(unsafe.Pointer(carr))
	C.lv2vst_set_option(carr, 0, C.LV2_URID(opt.Key), C.LV2_URID(opt.Type), C.uint32_t(len(opt.Value)), valuePtr)

	status := C.lv2vst_options_set(o.iface, o.handle, carr)
	if status != C.LV2_OPTIONS_SUCCESS {
		return fmt.Errorf("lv2plugin: options.set returned status %d", int(status))
	}
	return nil
}
