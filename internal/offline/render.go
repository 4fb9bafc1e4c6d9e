// Package offline renders a scripted performance to a WAV file without an
// audio device.
package offline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/whyrusleeping/polysynth/internal/engine"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

var ErrEmptyScore = errors.New("empty score")

type Options struct {
	SampleRate beep.SampleRate
	Voices     int
	// Tail is rendered after the last step so releases can ring out.
	Tail time.Duration
	// Params are applied before the first step.
	Params map[synth.Param]float64
	Logger *slog.Logger
}

func Render(w io.WriteSeeker, opts Options, score []Step) error {
	if len(score) == 0 {
		return ErrEmptyScore
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Voices <= 0 {
		opts.Voices = synth.NumVoices
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	eng := engine.New(engine.Options{
		SampleRate: opts.SampleRate,
		Logger:     opts.Logger,
	})
	d := synth.NewDispatcher(synth.NewState(opts.Voices), func(s *synth.State) {
		eng.Render(synth.Build(s)...)
	}, opts.Logger)

	eng.Render(synth.Build(d.State())...)
	for _, p := range synth.Params {
		if v, ok := opts.Params[p]; ok {
			d.Dispatch(synth.ControlChange(p, v))
		}
	}

	steps := sorted(score)
	total := opts.SampleRate.N(Length(steps) + opts.Tail)

	perf := &performance{
		steps: steps,
		sr:    opts.SampleRate,
		d:     d,
		src:   eng,
	}

	opts.Logger.Info("rendering", "steps", len(steps), "frames", total)

	format := beep.Format{
		SampleRate:  opts.SampleRate,
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, beep.Take(total, perf), format); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	return nil
}

// performance applies score steps on the sample they fall on while
// streaming from src.
type performance struct {
	steps []Step
	next  int
	pos   int

	sr  beep.SampleRate
	d   *synth.Dispatcher
	src beep.Streamer
}

func (p *performance) Stream(samples [][2]float64) (int, bool) {
	var n int
	for n < len(samples) {
		for p.next < len(p.steps) && p.sr.N(p.steps[p.next].At) <= p.pos {
			p.d.Dispatch(p.steps[p.next].Event)
			p.next++
		}

		chunk := len(samples) - n
		if p.next < len(p.steps) {
			chunk = min(chunk, p.sr.N(p.steps[p.next].At)-p.pos)
		}

		m, _ := p.src.Stream(samples[n : n+chunk])
		n += m
		p.pos += m
	}
	return n, true
}

func (p *performance) Err() error {
	return nil
}
