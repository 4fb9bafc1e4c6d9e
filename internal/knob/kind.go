package knob

import (
	"fmt"
	"math"
)

type Kind int

const (
	Percentage Kind = iota
	AttackDecayRelease
	Frequency
)

type kindInfo struct {
	name    string
	rng     Range
	display func(float64) string
}

var kinds = [...]kindInfo{
	Percentage: {
		name:    "percentage",
		rng:     mustRange(0, 1, 1),
		display: displayPercentage,
	},
	AttackDecayRelease: {
		name: "adr",
		// the floor keeps envelopes away from a zero length segment
		rng:     mustRange(0.000004, 60, 1.88),
		display: displaySeconds,
	},
	Frequency: {
		name:    "frequency",
		rng:     mustRange(20, 20000, 3),
		display: displayFrequency,
	},
}

func (k Kind) info() kindInfo {
	if k < 0 || int(k) >= len(kinds) {
		panic(fmt.Sprintf("unknown knob kind %d", int(k)))
	}
	return kinds[k]
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kinds) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

func (k Kind) Range() Range {
	return k.info().rng
}

func (k Kind) Display(v float64) string {
	return k.info().display(v)
}

func displayPercentage(v float64) string {
	return fmt.Sprintf("%.0f %%", v*100)
}

func displaySeconds(s float64) string {
	ms := s * 1000
	switch {
	case ms < 10:
		return fmt.Sprintf("%.2f ms", ms)
	case ms < 100:
		return fmt.Sprintf("%.1f ms", ms)
	case ms < 1000:
		return fmt.Sprintf("%.0f ms", ms)
	case ms < 10000:
		return fmt.Sprintf("%.2f s", s)
	default:
		return fmt.Sprintf("%.1f s", s)
	}
}

func displayFrequency(hz float64) string {
	if hz < 1000 {
		return fmt.Sprintf("%.0f Hz", math.Round(hz))
	}
	return fmt.Sprintf("%.2f kHz", hz/1000)
}
