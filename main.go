// Command lv2vst is the VST 2.4 shared-library shell: compiled with
// -buildmode=c-shared, it exports VSTPluginMain, the C-linkage entry
// point every VST2 host dlopens and calls. Grounded on
// original_source/src/vstmain.cc's VSTPluginMain/wrap pair — same
// "probe audioMasterVersion, instantiate, return AEffect*" shape, same
// main-alias trick for non-Windows hosts that look up the symbol
// "main" instead of "VSTPluginMain".
package main

/*
#cgo CFLAGS: -I${SRCDIR}/internal/vst2
#include <dlfcn.h>
#include "vestige.h"

extern AEffect* goVSTPluginMain(audioMasterCallback audioMaster);

__attribute__ ((visibility ("default")))
AEffect* VSTPluginMain(audioMasterCallback audioMaster) {
	return goVSTPluginMain(audioMaster);
}

#if !defined(_WIN32)
__attribute__ ((visibility ("default")))
AEffect* lv2vst_main_alias(audioMasterCallback audioMaster) asm("main");
AEffect* lv2vst_main_alias(audioMasterCallback audioMaster) {
	return goVSTPluginMain(audioMaster);
}
#endif

static intptr_t lv2vst_probe_host(audioMasterCallback cb) {
	return cb(0, 1, 0, 0, 0, 0); // audioMasterVersion
}

static const char* lv2vst_own_path(void) {
	Dl_info info;
	if (dladdr((void*)lv2vst_own_path, &info) && info.dli_fname) {
		return info.dli_fname;
	}
	return "";
}
*/
import "C"

import (
	"path/filepath"
	"sync"
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/pkg/bridge"
	"github.com/go-lv2/lv2vst/pkg/dynload"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
	"github.com/go-lv2/lv2vst/pkg/resolver"
)

// globalState is the process-wide configuration, set once by the first
// VSTPluginMain call (spec §9 "Global state": "the shared library needs
// to know its own on-disk path for relative bundle loading").
var globalState struct {
	once sync.Once
	cfg  *bridge.Config
	root *shellRoot
}

func ownDir() string {
	path := C.GoString(C.lv2vst_own_path())
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

func initGlobalState() {
	globalState.once.Do(func() {
		dir := ownDir()
		cfg, err := bridge.LoadConfig(dir)
		if err != nil {
			logging.Warn("lv2vst: loading config from %s: %v", dir, err)
			cfg = &bridge.Config{}
		}
		globalState.cfg = cfg
		globalState.root = &shellRoot{
			r:         resolver.New(rdfworld.NewTurtleWorld(), dynload.Opener{}),
			bundles:   cfg.BundlePaths,
			whitelist: cfg.Whitelist,
			blacklist: cfg.Blacklist,
		}
	})
}

//export goVSTPluginMain
func goVSTPluginMain(audioMaster C.audioMasterCallback) *C.AEffect {
	if audioMaster == nil {
		return nil
	}
	if C.lv2vst_probe_host(audioMaster) == 0 {
		return nil
	}

	initGlobalState()
	cfg := globalState.cfg

	var uri string
	if len(cfg.Whitelist) == 1 {
		uri = cfg.Whitelist[0]
	} else if pending := globalState.root.takePendingURI(); pending != "" {
		uri = pending
	}

	if uri == "" {
		return (*C.AEffect)(globalState.root.Effect().Pointer())
	}

	r := resolver.New(rdfworld.NewTurtleWorld(), dynload.Opener{})
	desc, err := r.ResolveByURI(uri, cfg.BundlePaths)
	if err != nil {
		logging.Error("lv2vst: resolving %s: %v", uri, err)
		return nil
	}

	core, err := bridge.New(desc, unsafe.Pointer(audioMaster))
	if err != nil {
		logging.Error("lv2vst: instantiating %s: %v", desc.DSPURI, err)
		return nil
	}
	core.ConfigureShell(r, cfg.BundlePaths, cfg.Whitelist, cfg.Blacklist)

	return (*C.AEffect)(core.Effect().Pointer())
}

func main() {}
