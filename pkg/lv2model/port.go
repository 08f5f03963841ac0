// Package lv2model holds the compact in-memory description the resolver
// (C3) produces from an LV2 manifest: Port and PluginDescriptor, plus the
// port-flag and category vocabulary the bridge core (C5) reads at
// process-cycle time. Adapted from the parameter-range/curve modeling in
// the teacher's framework/param package, generalized from "a VST3
// parameter the plugin author declares in Go" to "an LV2 port read off an
// RDF manifest".
package lv2model

// Kind classifies a port by its LV2 class and atom content.
type Kind int

const (
	ControlIn Kind = iota
	ControlOut
	AudioIn
	AudioOut
	MidiIn
	MidiOut
	AtomIn
	AtomOut
)

func (k Kind) String() string {
	switch k {
	case ControlIn:
		return "ControlIn"
	case ControlOut:
		return "ControlOut"
	case AudioIn:
		return "AudioIn"
	case AudioOut:
		return "AudioOut"
	case MidiIn:
		return "MidiIn"
	case MidiOut:
		return "MidiOut"
	case AtomIn:
		return "AtomIn"
	case AtomOut:
		return "AtomOut"
	default:
		return "Unknown"
	}
}

// IsInput reports whether the port receives data from the host.
func (k Kind) IsInput() bool {
	switch k {
	case ControlIn, AudioIn, MidiIn, AtomIn:
		return true
	default:
		return false
	}
}

// IsAtomLike reports whether the port carries a MIDI or Atom sequence,
// as opposed to a scalar control value or raw audio signal.
func (k Kind) IsAtomLike() bool {
	switch k {
	case MidiIn, MidiOut, AtomIn, AtomOut:
		return true
	default:
		return false
	}
}

// Flags holds the boolean properties read off an LV2 port's RDF
// description (lv2:portProperty values).
type Flags struct {
	Toggled      bool
	IntegerStep  bool
	Logarithmic  bool
	SRDependent  bool // sampleRate-dependent range
	Enumeration  bool
	NotOnGUI     bool
	NotAutomatic bool
}

// Port mirrors one LV2 port's manifest-derived description.
type Port struct {
	Kind Kind
	Name string
	// Symbol is the port's stable machine-readable identifier
	// (lv2:symbol), used to key state chunk port-value records.
	Symbol string
	Doc    string

	Default float64
	Min     float64
	Max     float64
	Steps   int32 // rangeSteps, default 100 when absent

	Flags Flags

	// MinAtomBufSiz is only meaningful for AtomIn/AtomOut/MidiIn/MidiOut
	// ports that declare resize-port:minimumSize.
	MinAtomBufSiz uint32
}

// Clamp restricts v to [p.Min, p.Max].
func (p *Port) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}
