package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/whyrusleeping/polysynth/internal/offline"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

var renderOpts struct {
	notes   []int
	step    time.Duration
	repeats int
	tail    time.Duration
	output  string

	gain    float64
	attack  time.Duration
	decay   time.Duration
	sustain float64
	release time.Duration
}

func bindRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntSliceVar(&renderOpts.notes, "notes", []int{60, 64, 67}, "notes to arpeggiate")
	f.DurationVar(&renderOpts.step, "step", 250*time.Millisecond, "length of each note")
	f.IntVar(&renderOpts.repeats, "repeats", 2, "times to play the arpeggio")
	f.DurationVar(&renderOpts.tail, "tail", time.Second, "time rendered after the last note")
	f.StringVarP(&renderOpts.output, "output", "o", "out.wav", "output WAV file")

	f.Float64Var(&renderOpts.gain, "gain", 0.5, "output gain, 0..1")
	f.DurationVar(&renderOpts.attack, "attack", time.Millisecond, "attack time")
	f.DurationVar(&renderOpts.decay, "decay", 600*time.Millisecond, "decay time")
	f.Float64Var(&renderOpts.sustain, "sustain", 0.7, "sustain level, 0..1")
	f.DurationVar(&renderOpts.release, "release", 600*time.Millisecond, "release time")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderOpts.repeats < 1 {
		return fmt.Errorf("repeats must be at least 1, got %d", renderOpts.repeats)
	}

	fi, err := os.Create(renderOpts.output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer fi.Close()

	score := offline.Arpeggio(renderOpts.notes, renderOpts.step, renderOpts.repeats)
	opts := offline.Options{
		SampleRate: beep.SampleRate(cfg.SampleRate),
		Voices:     cfg.Voices,
		Tail:       renderOpts.tail,
		Logger:     logger,
		Params: map[synth.Param]float64{
			synth.ParamGain:    renderOpts.gain,
			synth.ParamAttack:  renderOpts.attack.Seconds(),
			synth.ParamDecay:   renderOpts.decay.Seconds(),
			synth.ParamSustain: renderOpts.sustain,
			synth.ParamRelease: renderOpts.release.Seconds(),
		},
	}

	if err := offline.Render(fi, opts, score); err != nil {
		return fmt.Errorf("rendering %s: %w", renderOpts.output, err)
	}
	if err := fi.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Info("wrote wav", "path", renderOpts.output, "length", offline.Length(score)+renderOpts.tail)
	return nil
}
