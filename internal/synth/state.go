package synth

import (
	"github.com/whyrusleeping/polysynth/internal/voice"
)

const NumVoices = 8

type Param string

const (
	ParamAttack  Param = "attack"
	ParamDecay   Param = "decay"
	ParamSustain Param = "sustain"
	ParamRelease Param = "release"
	ParamGain    Param = "gain"
)

var Params = []Param{ParamGain, ParamAttack, ParamDecay, ParamSustain, ParamRelease}

func (p Param) Valid() bool {
	switch p {
	case ParamAttack, ParamDecay, ParamSustain, ParamRelease, ParamGain:
		return true
	default:
		return false
	}
}

// State is everything a render needs. It is owned by a single goroutine.
type State struct {
	*voice.Pool

	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
	Gain    float64
}

func NewState(voices int) *State {
	return &State{
		Pool:    voice.NewPool(voices),
		Attack:  0.001,
		Decay:   0.6,
		Sustain: 0.7,
		Release: 0.6,
		Gain:    0.5,
	}
}

func (s *State) Get(p Param) float64 {
	switch p {
	case ParamAttack:
		return s.Attack
	case ParamDecay:
		return s.Decay
	case ParamSustain:
		return s.Sustain
	case ParamRelease:
		return s.Release
	case ParamGain:
		return s.Gain
	default:
		return 0
	}
}

func (s *State) set(p Param, v float64) bool {
	switch p {
	case ParamAttack:
		s.Attack = v
	case ParamDecay:
		s.Decay = v
	case ParamSustain:
		s.Sustain = v
	case ParamRelease:
		s.Release = v
	case ParamGain:
		s.Gain = v
	default:
		return false
	}
	return true
}
