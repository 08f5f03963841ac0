// Package bridge is the bridge core (spec component C5): it owns one
// hosted LV2 plugin instance end to end — loading its shared object,
// instantiating it with the host-provided feature set, wiring its
// ports to VST2 buffers, and driving its process cycle and dispatcher
// opcodes. Grounded on original_source/src/lv2vst.cc's LV2Host, the
// single class that plays the same role in the C++ original.
package bridge

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-lv2/lv2vst/internal/logging"
	"github.com/go-lv2/lv2vst/internal/lv2plugin"
	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/atomforge"
	"github.com/go-lv2/lv2vst/pkg/dynload"
	"github.com/go-lv2/lv2vst/pkg/lv2ext"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
	"github.com/go-lv2/lv2vst/pkg/rdfworld"
	"github.com/go-lv2/lv2vst/pkg/resolver"
	"github.com/go-lv2/lv2vst/pkg/ring"
	"github.com/go-lv2/lv2vst/pkg/uriid"
	"github.com/go-lv2/lv2vst/pkg/worker"
)

// ringMultiplier is the number of process cycles' worth of events each
// UI/worker-facing ring can hold before it starts dropping (spec
// §4.5.1: "1 + R*nports_ctrl", R=60 — one second of events at a 60Hz
// UI idle rate).
const ringMultiplier = 60

// defaultBlockSize is assumed until the host calls effSetBlockSize.
const defaultBlockSize = 1024

// defaultSampleRate is assumed until the host calls effSetSampleRate.
const defaultSampleRate = 44100.0

// portState is the bridge's per-port runtime binding: the descriptor's
// static metadata plus whatever live buffer is currently connected.
type portState struct {
	desc  *lv2model.Port
	index uint32

	ctrlValue   float32 // backing storage for Control{In,Out} ports
	preRunValue float32 // ControlOut value before the last Run(), for change detection

	seq *atomforge.Sequence // backing storage for Atom/Midi {In,Out} ports
}

// Core is one hosted LV2 plugin instance, reachable from the VST2 host
// through internal/vst2's registry as an Instance.
type Core struct {
	desc *lv2model.PluginDescriptor
	host *vst2.Host

	lib        *dynload.Library
	descriptor *lv2plugin.Descriptor
	instance   *lv2plugin.Instance

	urid   *uriid.Map
	hostID uintptr

	worker       *worker.Worker
	workerIface  *lv2plugin.WorkerInterface
	optionsIface *lv2plugin.OptionsInterface
	stateIface   *lv2plugin.StateInterface

	ports      []portState
	paramPorts []*portState

	ctrlToUI   *ring.Ring
	atomToUI   *ring.Ring
	atomFromUI *ring.Ring

	sampleRate float64
	blockSize  int32
	active     bool

	// URIDs interned once at init, reused every process cycle.
	midiEventURID    uint32
	atomSequenceURID uint32
	atomObjectURID   uint32
	timePositionURID uint32
	timeFrameURID    uint32
	timeSpeedURID    uint32
	timeBarBeatURID  uint32
	timeBarURID      uint32
	timeBeatUnitURID uint32
	timeBeatsPerBarURID uint32
	timeBPMURID      uint32
	atomLongURID     uint32
	atomDoubleURID   uint32
	atomIntURID      uint32
	atomFloatURID    uint32

	transport     transportState
	prevTransport transportState // last cycle's transport, for transportChanged's diff

	// atomFromUIScratch/midiOutScratch are pre-allocated so draining
	// atom_from_ui and re-framing atom-out MIDI for the host never
	// allocates on the audio thread.
	atomFromUIScratch []byte
	midiOutScratch    []vst2.MidiOutEvent

	uiOpen bool
	uiSync bool
	mu     sync.Mutex // guards uiOpen/uiSync; the UI thread sets them, the audio thread clears uiSync
	rect   eRect       // backing storage returned by effEditGetRect

	// pendingMidi holds VST MIDI events queued by effProcessEvents
	// (dispatch.go) between process cycles, drained at Process's start.
	pendingMidi []pendingMidiIn

	// chunkBuf keeps the last effGetChunk encoding alive: the host reads
	// its bytes after the dispatcher call returns.
	chunkBuf []byte

	// shell* back effShellGetNextPlugin (spec §4.5.6); populated via
	// ConfigureShell once a Resolver and bundle/filter paths are known.
	shellResolver  *resolver.Resolver
	shellBundles   []string
	shellWhitelist []string
	shellBlacklist []string
	shellEntries   []resolver.EnumEntry
	shellIdx       int
	shellNameBuf   [64]byte

	effect *vst2.Effect
}

// transportState is the cached host transport position, compared each
// cycle to decide whether to forge a new time:Position object (spec
// §4.5.4 step 2/3).
type transportState struct {
	valid      bool
	playing    bool
	samplePos  int64
	ppqPos     float64
	bar        int32
	barBeat    float64
	beatUnit   int32
	beatsPerBar float64
	bpm        float64
	havePpqBar bool
}

// New loads desc's DSP library, instantiates the plugin, connects its
// ports, and registers it with internal/vst2 under the counts and flags
// the host needs. hostCB is the raw audioMasterCallback captured from
// VSTPluginMain.
func New(desc *lv2model.PluginDescriptor, hostCB unsafe.Pointer) (*Core, error) {
	c := &Core{
		desc:       desc,
		urid:       uriid.New(),
		sampleRate: defaultSampleRate,
		blockSize:  defaultBlockSize,
	}
	c.transport.playing = false

	c.internURIDs()

	lib, err := dynload.Open(desc.DSPPath)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	c.lib = lib

	descFnAddr, err := lib.Sym("lv2_descriptor")
	if err != nil {
		lib.Close()
		return nil, fmt.Errorf("bridge: %w", err)
	}
	lookup, err := lv2plugin.Open(descFnAddr)
	if err != nil {
		lib.Close()
		return nil, err
	}
	lv2desc, err := lv2plugin.FindByURI(lookup, desc.DSPURI)
	if err != nil {
		lib.Close()
		return nil, err
	}
	c.descriptor = lv2desc

	nctrl := desc.Counts.ControlIn + desc.Counts.ControlOut
	c.ctrlToUI = ring.New(uint32(1 + ringMultiplier*max1(nctrl)*8))
	c.atomToUI = ring.New(uint32(1 + ringMultiplier*int(desc.MinAtomBufSiz)))
	c.atomFromUI = ring.New(uint32(1 + ringMultiplier*int(desc.MinAtomBufSiz)))
	c.atomFromUIScratch = make([]byte, desc.MinAtomBufSiz)
	c.midiOutScratch = make([]vst2.MidiOutEvent, 0, 16)

	c.hostID = lv2plugin.RegisterHost(lv2plugin.HostCallbacks{
		Map:      c.urid.Map,
		Unmap:    c.urid.Unmap,
		Schedule: c.scheduleWork,
	})

	options := lv2ext.StandardOptions(c.urid.Map, c.sampleRate, c.blockSize, c.blockSize, int32(desc.MinAtomBufSiz))
	features := lv2plugin.InstanceFeatures(c.hostID, options)

	instance, err := lv2desc.Instantiate(c.sampleRate, desc.BundlePath, features)
	if err != nil {
		lv2plugin.UnregisterHost(c.hostID)
		lib.Close()
		return nil, err
	}
	c.instance = instance

	c.allocatePorts()
	c.connectStaticPorts()
	c.buildParamPorts()

	if workerExt := instance.ExtensionData("http://lv2plug.in/ns/ext/worker#interface"); workerExt != nil {
		c.workerIface = lv2plugin.NewWorkerInterface(instance, workerExt)
		c.worker = worker.New(c)
	}
	if optsExt := instance.ExtensionData("http://lv2plug.in/ns/ext/options#interface"); optsExt != nil {
		c.optionsIface = lv2plugin.NewOptionsInterface(instance, optsExt)
	}
	if stateExt := instance.ExtensionData(rdfworld.StateInterface); stateExt != nil {
		c.stateIface = lv2plugin.NewStateInterface(instance, stateExt)
	}

	flags := vst2.EffFlagsCanReplacing
	if c.stateIface != nil {
		flags |= vst2.EffFlagsProgramChunks
	}

	c.effect = vst2.NewInstance(c, int32(desc.NumEligibleParams()), 1, int32(desc.Counts.AudioIn), int32(desc.Counts.AudioOut),
		int32(desc.ID), 1000, flags)
	c.host = vst2.NewHost(hostCB, c.effect)

	logging.Debug("bridge: instantiated %s (%d ports, %d params)", desc.Name, len(c.ports), desc.NumEligibleParams())
	return c, nil
}

// Effect returns the registered VST2 handle to return from VSTPluginMain.
func (c *Core) Effect() *vst2.Effect { return c.effect }

// ConfigureShell equips this Core to answer effShellGetNextPlugin
// (spec §4.5.6) by enumerating the same bundle/whitelist/blacklist
// scope main.go resolved this instance from.
func (c *Core) ConfigureShell(r *resolver.Resolver, bundles, whitelist, blacklist []string) {
	c.shellResolver = r
	c.shellBundles = bundles
	c.shellWhitelist = whitelist
	c.shellBlacklist = blacklist
}

func (c *Core) internURIDs() {
	c.midiEventURID = c.urid.Map(rdfworld.MidiEvent)
	c.atomSequenceURID = c.urid.Map(rdfworld.AtomSequence)
	c.atomObjectURID = c.urid.Map(rdfworld.AtomObject)
	c.timePositionURID = c.urid.Map(rdfworld.TimePosition)
	c.timeFrameURID = c.urid.Map(rdfworld.TimeFrame)
	c.timeSpeedURID = c.urid.Map(rdfworld.TimeSpeed)
	c.timeBarBeatURID = c.urid.Map(rdfworld.TimeBarBeat)
	c.timeBarURID = c.urid.Map(rdfworld.TimeBar)
	c.timeBeatUnitURID = c.urid.Map(rdfworld.TimeBeatUnit)
	c.timeBeatsPerBarURID = c.urid.Map(rdfworld.TimeBeatsPerBar)
	c.timeBPMURID = c.urid.Map(rdfworld.TimeBeatsPerMinute)
	c.atomLongURID = c.urid.Map(rdfworld.AtomLong)
	c.atomDoubleURID = c.urid.Map(rdfworld.AtomDouble)
	c.atomIntURID = c.urid.Map(rdfworld.AtomInt)
	c.atomFloatURID = c.urid.Map(rdfworld.AtomFloat)
}

func (c *Core) allocatePorts() {
	c.ports = make([]portState, len(c.desc.Ports))
	for i := range c.desc.Ports {
		p := &c.desc.Ports[i]
		ps := portState{desc: p, index: uint32(i)}
		switch p.Kind {
		case lv2model.AtomIn, lv2model.AtomOut, lv2model.MidiIn, lv2model.MidiOut:
			bufSiz := p.MinAtomBufSiz
			if bufSiz < c.desc.MinAtomBufSiz {
				bufSiz = c.desc.MinAtomBufSiz
			}
			ps.seq = atomforge.NewSequence(make([]byte, bufSiz), c.atomSequenceURID)
		case lv2model.ControlIn:
			ps.ctrlValue = float32(p.Default)
		}
		c.ports[i] = ps
	}
}

// connectStaticPorts binds control and atom/MIDI port buffers once;
// audio ports are re-pointed every process cycle (step 1 of §4.5.4).
func (c *Core) connectStaticPorts() {
	for i := range c.ports {
		ps := &c.ports[i]
		switch ps.desc.Kind {
		case lv2model.ControlIn, lv2model.ControlOut:
			c.instance.ConnectPort(ps.index, ptrTo(&ps.ctrlValue))
		case lv2model.AtomIn, lv2model.AtomOut, lv2model.MidiIn, lv2model.MidiOut:
			c.instance.ConnectPort(ps.index, bytesPtr(ps.seq.Bytes()))
		}
	}
}

// Close tears the instance down in the spec's mandated order: stop the
// worker, deactivate, cleanup, release the feature registry, close the
// library.
func (c *Core) Close() {
	if c.worker != nil {
		c.worker.Close()
	}
	if c.active {
		c.instance.Deactivate()
		c.active = false
	}
	c.instance.Cleanup()
	lv2plugin.UnregisterHost(c.hostID)
	if c.effect != nil {
		vst2.Release(c.effect)
	}
	if err := c.lib.Close(); err != nil {
		logging.Warn("bridge: closing %s: %v", c.desc.DSPPath, err)
	}
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
