package vst2

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// GoStringFromC copies a NUL-terminated C string the host passed
// through a dispatcher ptr argument (e.g. effCanDo's capability name).
func GoStringFromC(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	return C.GoString((*C.char)(ptr))
}
