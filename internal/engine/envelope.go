package engine

import "math"

type envStage int

const (
	stageIdle envStage = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

// Envelope is a linear ADSR contour. Segment times are in seconds and are
// read every sample, so changing them takes effect mid-segment.
type Envelope struct {
	sampleRate float64

	stage       envStage
	level       float64
	open        bool
	releaseStep float64
}

func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{sampleRate: sampleRate}
}

func (e *Envelope) Level() float64 {
	return e.level
}

// Active reports whether the envelope is producing anything.
func (e *Envelope) Active() bool {
	return e.stage != stageIdle
}

func (e *Envelope) samples(seconds float64) float64 {
	return math.Max(seconds*e.sampleRate, 1)
}

// Next advances one sample and returns the new level.
func (e *Envelope) Next(attack, decay, sustain, release float64, gate bool) float64 {
	sustain = math.Max(0, math.Min(1, sustain))

	switch {
	case gate && !e.open:
		// retriggers start from wherever the level is
		e.stage = stageAttack
	case !gate && e.open:
		e.stage = stageRelease
		e.releaseStep = e.level / e.samples(release)
	}
	e.open = gate

	switch e.stage {
	case stageAttack:
		e.level += 1 / e.samples(attack)
		if e.level >= 1 {
			e.level = 1
			e.stage = stageDecay
		}
	case stageDecay:
		e.level -= (1 - sustain) / e.samples(decay)
		if e.level <= sustain {
			e.level = sustain
			e.stage = stageSustain
		}
	case stageSustain:
		e.level = sustain
	case stageRelease:
		e.level -= e.releaseStep
		if e.level <= 0 {
			e.level = 0
			e.stage = stageIdle
		}
	}

	return e.level
}
