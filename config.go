package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"

	"github.com/whyrusleeping/polysynth/internal/engine"
	"github.com/whyrusleeping/polysynth/internal/meter"
	"github.com/whyrusleeping/polysynth/internal/session"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

type Config struct {
	SampleRate int
	Latency    time.Duration
	BlockSize  int
	Voices     int
	Smoothing  float64

	Width  int
	Height int

	MidiDevice string
	Arp        []int
	ArpStep    time.Duration

	Headless bool
	Console  bool
	Debug    bool
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		Latency:    50 * time.Millisecond,
		BlockSize:  256,
		Voices:     synth.NumVoices,
		Smoothing:  meter.DefaultCoefficient,
		Width:      900,
		Height:     540,
		ArpStep:    250 * time.Millisecond,
		Console:    true,
	}
}

func (c Config) sessionOptions() session.Options {
	return session.Options{
		Engine: engine.Options{
			SampleRate: beep.SampleRate(c.SampleRate),
			BlockSize:  c.BlockSize,
			Latency:    c.Latency,
			ScopeSize:  scopeFrames,
		},
		Voices:    c.Voices,
		Smoothing: c.Smoothing,
		Logger:    logger,
	}
}

func bindGlobalFlags(cmd *cobra.Command, c *Config) {
	f := cmd.PersistentFlags()
	f.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "audio sample rate in Hz")
	f.IntVar(&c.BlockSize, "block-size", c.BlockSize, "frames rendered per processing block")
	f.IntVar(&c.Voices, "voices", c.Voices, "number of voices")
	f.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

func bindPlayFlags(cmd *cobra.Command, c *Config) {
	f := cmd.Flags()
	f.DurationVar(&c.Latency, "latency", c.Latency, "speaker buffer length")
	f.Float64Var(&c.Smoothing, "smoothing", c.Smoothing, "meter release coefficient, 0..1")
	f.IntVar(&c.Width, "width", c.Width, "window width")
	f.IntVar(&c.Height, "height", c.Height, "window height")
	f.StringVarP(&c.MidiDevice, "midi", "m", c.MidiDevice, "MIDI input device id or name (default input if empty)")
	f.IntSliceVar(&c.Arp, "arp", c.Arp, "notes to arpeggiate, e.g. 60,64,67")
	f.DurationVar(&c.ArpStep, "arp-step", c.ArpStep, "arpeggio note length")
	f.BoolVar(&c.Headless, "headless", c.Headless, "run without a window")
	f.BoolVar(&c.Console, "console", c.Console, "read commands from the terminal")
}
