package lv2model

import "errors"

var (
	errNoName         = errors.New("lv2model: plugin has no name")
	errNoPorts        = errors.New("lv2model: plugin has no ports")
	errTooManyAtomIn  = errors.New("lv2model: more than one MIDI/atom input port")
	errTooManyAtomOut = errors.New("lv2model: more than one MIDI/atom output port")
)
