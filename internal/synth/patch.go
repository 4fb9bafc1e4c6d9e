package synth

import (
	"fmt"

	"github.com/whyrusleeping/polysynth/internal/graph"
)

const (
	MeterLeft  = "meter:left"
	MeterRight = "meter:right"
)

// Build describes the audio graph for s. Every slot is rendered; idle ones
// have a closed gate and only contribute their release tail.
func Build(s *State) []*graph.Node {
	voices := make([]*graph.Node, 0, len(s.Voices))
	for i, v := range s.Voices {
		env := graph.ADSR(
			graph.Const(fmt.Sprintf("attack:%d", i), s.Attack),
			graph.Const(fmt.Sprintf("decay:%d", i), s.Decay),
			graph.Const(fmt.Sprintf("sustain:%d", i), s.Sustain),
			graph.Const(fmt.Sprintf("release:%d", i), s.Release),
			graph.Const(fmt.Sprintf("gate:%d", i), float64(v.Gate)),
		)
		osc := graph.Cycle(graph.Value(NoteToFreq(v.Note)))
		voices = append(voices, graph.Mul(env, osc))
	}

	out := graph.Mul(graph.Add(voices...), graph.Const("gain", s.Gain))

	return []*graph.Node{
		graph.Meter(MeterLeft, out),
		graph.Meter(MeterRight, out),
	}
}
