package main

import (
	"sync"
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/resolver"
)

// shellRoot answers the host's very first VSTPluginMain call when the
// binary's .whitelist does not pin exactly one plugin: a minimal
// vst2.Instance that only knows how to walk the resolver's enumeration
// for effShellGetNextPlugin (spec §4.5.6, §6 "shell"). Every other
// opcode is inert since no DSP is loaded yet. shellRoot.lastURI records
// the URI of the entry Dispatch last handed out, so that when the host
// picks a sub-plugin by calling VSTPluginMain again, that call knows
// which concrete plugin to resolve and instantiate for real via
// bridge.New.
type shellRoot struct {
	mu                   sync.Mutex
	r                    *resolver.Resolver
	bundles              []string
	whitelist, blacklist []string
	entries              []resolver.EnumEntry
	idx                  int
	nameBuf              [64]byte
	lastURI              string

	effectOnce sync.Once
	effect     *vst2.Effect
}

// Effect lazily registers this shellRoot with internal/vst2 so the
// host has a real AEffect to dispatch effShellGetNextPlugin against.
func (s *shellRoot) Effect() *vst2.Effect {
	s.effectOnce.Do(func() {
		s.effect = vst2.NewInstance(s, 0, 1, 0, 0, shellRootUniqueID, 1000, 0)
	})
	return s.effect
}

// shellRootUniqueID is a fixed placeholder unique ID for the shell's
// root AEffect; real sub-plugins are identified by CRC32(dsp_uri).
const shellRootUniqueID = 0x73686c32 // 'shl2'

func (s *shellRoot) Dispatch(opcode, index int32, value int64, ptr unsafe.Pointer, opt float32) int64 {
	if opcode != vst2.EffShellGetNextPlugin {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		entries, err := s.r.Enumerate(s.bundles, s.whitelist, s.blacklist)
		if err != nil {
			logging.Warn("shell: enumerating plugins: %v", err)
			return 0
		}
		s.entries = entries
		s.idx = 0
	}
	if s.idx >= len(s.entries) {
		s.entries = nil
		s.lastURI = ""
		return 0
	}

	entry := s.entries[s.idx]
	s.idx++
	s.lastURI = entry.URI

	if ptr != nil {
		n := copy(s.nameBuf[:len(s.nameBuf)-1], entry.Name)
		s.nameBuf[n] = 0
		dst := unsafe.Slice((*byte)(ptr), len(s.nameBuf))
		copy(dst, s.nameBuf[:])
	}
	return int64(entry.ID)
}

func (s *shellRoot) Process(inputs, outputs [][]float32, sampleFrames int32) {}
func (s *shellRoot) SetParameter(index int32, value float32)                {}
func (s *shellRoot) GetParameter(index int32) float32                       { return 0 }

// takePendingURI returns and clears the URI shellGetNextPlugin last
// handed out, if any — the sub-plugin the following VSTPluginMain call
// should resolve and instantiate for real.
func (s *shellRoot) takePendingURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri := s.lastURI
	s.lastURI = ""
	return uri
}
