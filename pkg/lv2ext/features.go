// Package lv2ext models the LV2 extension interfaces the bridge wires
// into every plugin instance: urid:map/unmap, worker:schedule, and
// options:options. Each is expressed as a plain Go function type or
// struct rather than the raw C_ABI LV2_Feature array the plugin
// actually receives — internal/lv2plugin is where that marshaling to the
// C-compatible layout happens, once per instantiate() call.
package lv2ext

import "github.com/go-lv2/lv2vst/pkg/rdfworld"

// URIDMapFunc mirrors LV2_URID_Map's map() entry point.
type URIDMapFunc func(uri string) uint32

// URIDUnmapFunc mirrors LV2_URID_Unmap's unmap() entry point.
type URIDUnmapFunc func(id uint32) string

// WorkerScheduleFunc mirrors worker:schedule's schedule() entry point.
type WorkerScheduleFunc func(data []byte) error

// OptionValue is one entry of an options:options feature array.
type OptionValue struct {
	Key   uint32 // URID of the option's URI
	Type  uint32 // URID of the value's atom type
	Value []byte
}

// Bundle is the full set of host-provided features assembled for one
// plugin instance.
type Bundle struct {
	Map      URIDMapFunc
	Unmap    URIDUnmapFunc
	Schedule WorkerScheduleFunc
	Options  []OptionValue

	// BoundedBlockLength is always true: the bridge always calls the
	// plugin with a fixed maximum block size (spec §4.3 step 3).
	BoundedBlockLength bool
}

// SupportedFeatureURIs re-exports the resolver's verification table so
// the instantiate path can cross-check a descriptor's required
// features against what this Bundle actually offers, without the two
// ever drifting apart.
func SupportedFeatureURIs() map[string]bool {
	return rdfworld.SupportedFeatures
}
