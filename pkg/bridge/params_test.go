package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/go-lv2/lv2vst/pkg/lv2model"
)

func TestParamRoundTripLinear(t *testing.T) {
	ps := &portState{desc: &lv2model.Port{Min: 0, Max: 100}}
	vst := paramToVST(ps, 25)
	assert.InDelta(t, 0.25, vst, 1e-6)
	assert.InDelta(t, 25, paramToLV2(ps, vst), 1e-6)
}

func TestParamRoundTripLogarithmic(t *testing.T) {
	ps := &portState{desc: &lv2model.Port{Min: 20, Max: 20000, Flags: lv2model.Flags{Logarithmic: true}, Steps: 100}}
	lv2Value := paramToLV2(ps, 0.5)
	vst := paramToVST(ps, lv2Value)
	assert.InDelta(t, 0.5, vst, 1.0/100)
}

func TestParamToggled(t *testing.T) {
	ps := &portState{desc: &lv2model.Port{Min: 0, Max: 1, Flags: lv2model.Flags{Toggled: true}}}
	assert.Equal(t, float32(0), paramToVST(ps, 0))
	assert.Equal(t, float32(1), paramToVST(ps, 1))
	assert.Equal(t, 0.0, paramToLV2(ps, 0.2))
	assert.Equal(t, 1.0, paramToLV2(ps, 0.8))
}

func TestParamIntegerStepRounds(t *testing.T) {
	ps := &portState{desc: &lv2model.Port{Min: 0, Max: 10, Flags: lv2model.Flags{IntegerStep: true}}}
	got := paramToLV2(ps, 0.46)
	assert.Equal(t, got, float64(int(got)))
}

func TestParamRoundTripPropertyBased(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		min := rapid.Float64Range(-1000, 0).Draw(rt, "min")
		max := min + rapid.Float64Range(1, 1000).Draw(rt, "span")
		v := rapid.Float64Range(min, max).Draw(rt, "v")

		ps := &portState{desc: &lv2model.Port{Min: min, Max: max}}
		vst := paramToVST(ps, v)
		back := paramToLV2(ps, vst)
		assert.InDelta(rt, v, back, (max-min)/100+1e-6)
	})
}
