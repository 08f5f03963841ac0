package lv2model

// Category classifies a plugin for effGetPlugCategory, read from its
// rdf:type in the manifest.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryEffect
	CategoryInstrument
	CategorySpatial
	CategoryGenerator
	CategoryUtility
	CategoryShell
)

// PortCounts tallies ports by kind for the invariant checks in §3/§8.
type PortCounts struct {
	ControlIn, ControlOut int
	AudioIn, AudioOut     int
	MidiIn, MidiOut       int
	AtomIn, AtomOut       int
}

// Total returns the total number of ports across all kinds.
func (c PortCounts) Total() int {
	return c.ControlIn + c.ControlOut + c.AudioIn + c.AudioOut +
		c.MidiIn + c.MidiOut + c.AtomIn + c.AtomOut
}

// MinAtomBufSizFloor is the minimum atom-sequence buffer size the bridge
// must always allocate, per spec invariant "min_atom_bufsiz >= 8192".
const MinAtomBufSizFloor = 8192

// PluginDescriptor is the compact, resolver-produced description owned
// by the bridge core for the lifetime of one VST instance (spec C3/C5).
type PluginDescriptor struct {
	DSPURI string
	GUIURI string // "" if no companion UI was found

	ID uint32 // CRC32(DSPURI) & 0x7f7f7f7f

	Name   string
	Vendor string

	BundlePath string
	DSPPath    string
	GUIPath    string // "" if no usable UI library was found

	VersionMinor int32
	VersionMicro int32

	Ports []Port
	Counts PortCounts

	MinAtomBufSiz uint32

	// LatencyCtrlPort/EnableCtrlPort are port indices into Ports, or -1
	// if the plugin declares neither.
	LatencyCtrlPort int
	EnableCtrlPort  int

	SendTimeInfo     bool
	HasStateInterface bool

	Category Category
}

// NumEligibleParams returns how many control-in ports are eligible for a
// VST parameter slot: neither NotOnGUI nor NotAutomatic (spec §3
// "Parameter mapping").
func (d *PluginDescriptor) NumEligibleParams() int {
	n := 0
	for i := range d.Ports {
		p := &d.Ports[i]
		if p.Kind == ControlIn && !p.Flags.NotOnGUI && !p.Flags.NotAutomatic {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants from spec §3: at most one
// MIDI-or-atom port per direction, at least one port total, a non-empty
// name, and a atom buffer floor of 8192 bytes (raised further by any
// port's declared minimumSize, which the resolver already folds into
// MinAtomBufSiz before calling Validate).
func (d *PluginDescriptor) Validate() error {
	if d.Name == "" {
		return errNoName
	}
	if d.Counts.Total() == 0 {
		return errNoPorts
	}
	if d.Counts.MidiIn+d.Counts.AtomIn > 1 {
		return errTooManyAtomIn
	}
	if d.Counts.MidiOut+d.Counts.AtomOut > 1 {
		return errTooManyAtomOut
	}
	if d.MinAtomBufSiz < MinAtomBufSizFloor {
		d.MinAtomBufSiz = MinAtomBufSizFloor
	}
	return nil
}
