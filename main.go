package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rakyll/portmidi"
	"github.com/spf13/cobra"

	"github.com/whyrusleeping/polysynth/internal/session"
)

var (
	version = "0.1.0"
	cfg     = DefaultConfig()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polysynth",
	Short: "A polyphonic sine synth with knobs, meters and MIDI input",
	Long: `polysynth plays an eight voice sine synth through the default audio
device. Notes come from the keyboard, the mouse, a MIDI controller or the
console; attack, decay, sustain, release and gain are set with knobs.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(cfg.Debug)
	},
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the synth window and play",
	Long: `Open the synth window and start the audio engine.

Keys a..l play a C major scale from middle C, z and x shift the octave and
space plays middle C. Drag a knob up or down to turn it.

Examples:
  polysynth play
  polysynth play --midi 3
  polysynth play --headless --arp 60,64,67 --arp-step 200ms`,
	RunE: runPlay,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI input devices",
	RunE:  runDevices,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an arpeggio to a WAV file",
	Long: `Render an arpeggio offline, without an audio device.

Example:
  polysynth render --notes 60,64,67 --step 250ms --repeats 2 --tail 1s -o out.wav`,
	RunE: runRender,
}

func init() {
	bindGlobalFlags(rootCmd, &cfg)
	bindPlayFlags(playCmd, &cfg)
	bindRenderFlags(renderCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(renderCmd)
}

type speakerOutput struct{}

func (speakerOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(cfg.Arp) > 0 && cfg.ArpStep <= 0 {
		return fmt.Errorf("arp step must be positive, got %s", cfg.ArpStep)
	}

	sess := session.New(cfg.sessionOptions())
	if err := sess.Start(ctx, speakerOutput{}); err == nil {
		defer speaker.Close()
	}

	if err := portmidi.Initialize(); err != nil {
		logger.Warn("midi unavailable", "err", err)
	} else {
		defer portmidi.Terminate()

		mc, err := openMidi(ctx, cfg.MidiDevice, sess)
		if err != nil {
			logger.Warn("no midi input", "err", err)
		} else {
			defer mc.Shutdown()
		}
	}

	if len(cfg.Arp) > 0 {
		a := &Arp{
			notes:    cfg.Arp,
			duration: cfg.ArpStep,
			sess:     sess,
		}
		go a.Run(ctx)
	}

	if cfg.Console {
		go runConsole(ctx, cancel, sess)
	}

	if cfg.Headless {
		return runHeadless(ctx, sess)
	}
	return draw(ctx, sess)
}

// runHeadless drives the session from a ticker instead of the window loop.
func runHeadless(ctx context.Context, sess *session.Session) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			sess.Update(now)
		}
	}
}
