package offline

import (
	"slices"
	"time"

	"github.com/whyrusleeping/polysynth/internal/synth"
)

// Step is an event scheduled at an offset from the start of a render.
type Step struct {
	At    time.Duration
	Event synth.Event
}

// Arpeggio plays notes in order, each held for step, repeats times over.
func Arpeggio(notes []int, step time.Duration, repeats int) []Step {
	var out []Step
	var at time.Duration
	for r := 0; r < repeats; r++ {
		for _, n := range notes {
			out = append(out,
				Step{At: at, Event: synth.NoteOn(n)},
				Step{At: at + step, Event: synth.NoteOff(n)},
			)
			at += step
		}
	}
	return out
}

// Length is the time of the last step in score.
func Length(score []Step) time.Duration {
	var end time.Duration
	for _, s := range score {
		end = max(end, s.At)
	}
	return end
}

func sorted(score []Step) []Step {
	out := slices.Clone(score)
	slices.SortStableFunc(out, func(a, b Step) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		default:
			return 0
		}
	})
	return out
}
