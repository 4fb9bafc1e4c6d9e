package engine

import (
	"math"

	"github.com/whyrusleeping/polysynth/internal/graph"
)

type processor interface {
	process(inst *instance, out []float64)
}

type instance struct {
	node     *graph.Node
	proc     processor
	children []*instance

	inputs [][]float64
	buf    []float64
	block  uint64
}

func (e *Engine) newInstance(n *graph.Node) *instance {
	inst := &instance{
		node: n,
		buf:  make([]float64, e.blockSize),
	}

	sr := float64(e.sr)
	switch n.Kind {
	case graph.KindConst:
		inst.proc = constUnit{}
	case graph.KindCycle:
		inst.proc = &cycleUnit{sampleRate: sr}
	case graph.KindADSR:
		inst.proc = &adsrUnit{env: Envelope{sampleRate: sr}}
	case graph.KindMul:
		inst.proc = mulUnit{}
	case graph.KindAdd:
		inst.proc = addUnit{}
	case graph.KindMeter:
		inst.proc = meterUnit{emit: e.emit}
	default:
		e.log.Warn("unknown node kind, rendering silence", "kind", string(n.Kind))
		inst.proc = silentUnit{}
	}
	return inst
}

type constUnit struct{}

func (constUnit) process(inst *instance, out []float64) {
	v := inst.node.Value
	for i := range out {
		out[i] = v
	}
}

type silentUnit struct{}

func (silentUnit) process(_ *instance, out []float64) {
	clear(out)
}

func sineOsc(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

type cycleUnit struct {
	sampleRate float64
	phase      float64
}

func (c *cycleUnit) process(inst *instance, out []float64) {
	if len(inst.inputs) == 0 {
		clear(out)
		return
	}
	freq := inst.inputs[0]
	for i := range out {
		out[i] = sineOsc(c.phase)
		_, c.phase = math.Modf(c.phase + freq[i]/c.sampleRate)
	}
}

type adsrUnit struct {
	env Envelope
}

func (a *adsrUnit) process(inst *instance, out []float64) {
	if len(inst.inputs) < 5 {
		clear(out)
		return
	}
	in := inst.inputs
	for i := range out {
		out[i] = a.env.Next(in[0][i], in[1][i], in[2][i], in[3][i], in[4][i] > 0)
	}
}

type mulUnit struct{}

func (mulUnit) process(inst *instance, out []float64) {
	if len(inst.inputs) == 0 {
		clear(out)
		return
	}
	copy(out, inst.inputs[0])
	for _, in := range inst.inputs[1:] {
		for i := range out {
			out[i] *= in[i]
		}
	}
}

type addUnit struct{}

func (addUnit) process(inst *instance, out []float64) {
	clear(out)
	for _, in := range inst.inputs {
		for i := range out {
			out[i] += in[i]
		}
	}
}

type meterUnit struct {
	emit func(Event)
}

func (m meterUnit) process(inst *instance, out []float64) {
	if len(inst.inputs) == 0 {
		clear(out)
		return
	}
	copy(out, inst.inputs[0])

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range out {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(out) == 0 {
		lo, hi = 0, 0
	}

	m.emit(Event{
		Kind:   EventMeter,
		Source: inst.node.Name,
		Min:    lo,
		Max:    hi,
	})
}
