package bridge

import (
	"math"

	"github.com/go-lv2/lv2vst/internal/vst2"
	"github.com/go-lv2/lv2vst/pkg/lv2model"
)

// buildParamPorts caches the control-in ports eligible for a VST
// parameter slot, in port order — the same order NumEligibleParams
// counted, so parameter index i always names the same port. Computed
// once at instantiation: set_parameter/get_parameter are audio-thread
// calls and must not allocate.
func (c *Core) buildParamPorts() {
	c.paramPorts = c.paramPorts[:0]
	for i := range c.ports {
		ps := &c.ports[i]
		if ps.desc.Kind == lv2model.ControlIn && !ps.desc.Flags.NotOnGUI && !ps.desc.Flags.NotAutomatic {
			c.paramPorts = append(c.paramPorts, ps)
		}
	}
}

func (c *Core) paramPort(index int32) *portState {
	if index < 0 || int(index) >= len(c.paramPorts) {
		return nil
	}
	return c.paramPorts[index]
}

// paramIndexOf returns ps's VST parameter index, if it is one of the
// ports eligible for automation.
func (c *Core) paramIndexOf(ps *portState) (int32, bool) {
	for i, p := range c.paramPorts {
		if p == ps {
			return int32(i), true
		}
	}
	return 0, false
}

// notifyParameterAutomated tells the host a parameter's value changed
// without the host having initiated the change itself (state restore,
// bypass engage/disengage), mirroring
// original_source/src/state.cc:271's set_parameter_automated(...) //
// Tell host about it. A no-op if ps is not an automatable parameter.
func (c *Core) notifyParameterAutomated(ps *portState) {
	idx, ok := c.paramIndexOf(ps)
	if !ok {
		return
	}
	vstValue := paramToVST(ps, float64(ps.ctrlValue))
	c.host.Call(vst2.AudioMasterAutomate, idx, 0, nil, vstValue)
}

// paramToVST maps an LV2 port value to the VST [0,1] parameter range
// (spec §4.5.3 forward mapping).
func paramToVST(ps *portState, lv2Value float64) float32 {
	p := ps.desc
	switch {
	case p.Flags.Toggled:
		if lv2Value != 0 {
			return 1
		}
		return 0
	case p.Flags.Logarithmic && p.Min > 0 && p.Max > 0:
		return float32(math.Log(lv2Value/p.Min) / math.Log(p.Max/p.Min))
	default:
		if p.Max == p.Min {
			return 0
		}
		return float32((lv2Value - p.Min) / (p.Max - p.Min))
	}
}

// paramToLV2 maps a VST [0,1] parameter value back to the port's native
// range (spec §4.5.3 inverse mapping): quantize to steps, invert,
// clamp, then re-round if the port is integer-stepped.
func paramToLV2(ps *portState, vstValue float32) float64 {
	p := ps.desc
	v := float64(vstValue)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if p.Steps > 1 {
		v = math.Round(v*float64(p.Steps-1)) / float64(p.Steps-1)
	}

	var lv2Value float64
	switch {
	case p.Flags.Toggled:
		if v >= 0.5 {
			lv2Value = p.Max
		} else {
			lv2Value = p.Min
		}
	case p.Flags.Logarithmic && p.Min > 0 && p.Max > 0:
		lv2Value = p.Min * math.Pow(p.Max/p.Min, v)
	default:
		lv2Value = p.Min + v*(p.Max-p.Min)
	}

	lv2Value = p.Clamp(lv2Value)
	if p.Flags.IntegerStep {
		lv2Value = math.Round(lv2Value)
	}
	return lv2Value
}

// setParameter applies a host-issued VST parameter change: writes the
// LV2 port value (skipping the write if unchanged) and, when the UI is
// open and the ring has space, queues a ctrl_to_ui update so the UI
// reflects host/automation-driven changes too (spec §4.5.3).
func (c *Core) setParameter(index int32, vstValue float32) {
	ps := c.paramPort(index)
	if ps == nil {
		return
	}
	newLV2 := float32(paramToLV2(ps, vstValue))
	if newLV2 == ps.ctrlValue {
		return
	}
	ps.ctrlValue = newLV2

	c.mu.Lock()
	uiOpen := c.uiOpen
	c.mu.Unlock()
	if uiOpen {
		c.pushCtrlToUI(ps.index, newLV2)
	}
}

// getParameter reads the current VST-normalized value of parameter index.
func (c *Core) getParameter(index int32) float32 {
	ps := c.paramPort(index)
	if ps == nil {
		return 0
	}
	return paramToVST(ps, float64(ps.ctrlValue))
}

// pushCtrlToUI encodes {port index, float32 value} as an 8-byte frame
// and tries to enqueue it on ctrl_to_ui, silently dropping it if the
// ring is full (spec: never block the audio thread for the UI).
func (c *Core) pushCtrlToUI(port uint32, value float32) {
	var payload [8]byte
	putU32(payload[0:4], port)
	putU32(payload[4:8], math.Float32bits(value))
	c.ctrlToUI.TryWriteFrame(payload[:])
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
