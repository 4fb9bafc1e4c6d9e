package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rakyll/portmidi"
	"github.com/spf13/cobra"

	"github.com/whyrusleeping/polysynth/internal/midiin"
	"github.com/whyrusleeping/polysynth/internal/session"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

var ErrNoDevice = errors.New("no such midi input")

// MidiController reads a portmidi input and forwards decoded events to the
// session.
type MidiController struct {
	stream *portmidi.Stream
	dec    *midiin.Decoder
	sess   *session.Session
	log    *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func openMidi(ctx context.Context, device string, sess *session.Session) (*MidiController, error) {
	id, err := findDevice(device)
	if err != nil {
		return nil, err
	}
	return OpenController(ctx, id, sess)
}

// findDevice resolves an input by id or by a case insensitive substring of
// its name. An empty name picks the default input.
func findDevice(name string) (portmidi.DeviceID, error) {
	if name == "" {
		id := portmidi.DefaultInputDeviceID()
		if id < 0 {
			return 0, fmt.Errorf("%w: no default input", ErrNoDevice)
		}
		return id, nil
	}

	if n, err := strconv.Atoi(name); err == nil {
		info := portmidi.Info(portmidi.DeviceID(n))
		if info == nil || !info.IsInputAvailable {
			return 0, fmt.Errorf("%w: %d", ErrNoDevice, n)
		}
		return portmidi.DeviceID(n), nil
	}

	for i := 0; i < portmidi.CountDevices(); i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil || !info.IsInputAvailable {
			continue
		}
		if strings.Contains(strings.ToLower(info.Name), strings.ToLower(name)) {
			return portmidi.DeviceID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNoDevice, name)
}

func OpenController(ctx context.Context, id portmidi.DeviceID, sess *session.Session) (*MidiController, error) {
	in, err := portmidi.NewInputStream(id, 1024)
	if err != nil {
		return nil, fmt.Errorf("opening midi input %d: %w", id, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	mc := &MidiController{
		stream: in,
		dec:    midiin.NewDecoder(midiin.DefaultBindings, logger),
		sess:   sess,
		log:    logger.With("midi_device", int(id)),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	if info := portmidi.Info(id); info != nil {
		mc.log.Info("midi input open", "name", info.Name)
	}

	go mc.run(ctx)

	return mc, nil
}

// Shutdown stops the reader and closes the stream.
func (mc *MidiController) Shutdown() {
	mc.cancel()
	<-mc.done
	mc.stream.Close()
}

func (mc *MidiController) run(ctx context.Context) {
	defer close(mc.done)

	for {
		if ctx.Err() != nil {
			return
		}

		ok, err := mc.stream.Poll()
		if err != nil {
			mc.fail(ctx, err)
			return
		}
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}

		events, err := mc.stream.Read(1024)
		if err != nil {
			mc.fail(ctx, err)
			return
		}

		for _, event := range events {
			ev, ok := mc.dec.Decode(midiin.FromPortmidi(event.Status, event.Data1, event.Data2))
			if !ok {
				mc.log.Debug("ignoring midi message", "status", event.Status, "data1", event.Data1, "data2", event.Data2)
				continue
			}
			mc.sess.PostEvent(ctx, ev)
		}
	}
}

// fail releases every voice so nothing hangs once input is gone.
func (mc *MidiController) fail(ctx context.Context, err error) {
	mc.log.Warn("midi read failed, releasing all notes", "err", err)
	mc.sess.PostEvent(ctx, synth.AllNotesOff())
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	idStyle      = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	colStyle     = lipgloss.NewStyle().Width(14).PaddingLeft(2)
)

func runDevices(cmd *cobra.Command, args []string) error {
	if err := portmidi.Initialize(); err != nil {
		return fmt.Errorf("initializing portmidi: %w", err)
	}
	defer portmidi.Terminate()

	out := cmd.OutOrStdout()
	def := portmidi.DefaultInputDeviceID()

	fmt.Fprintln(out, headerStyle.Render(idStyle.Render("ID")+colStyle.Render("INTERFACE")+"  NAME"))

	var found int
	for i := 0; i < portmidi.CountDevices(); i++ {
		id := portmidi.DeviceID(i)
		info := portmidi.Info(id)
		if info == nil || !info.IsInputAvailable {
			continue
		}
		found++

		line := idStyle.Render(strconv.Itoa(i)) + colStyle.Render(info.Interface) + "  " + info.Name
		if id == def {
			fmt.Fprintln(out, defaultStyle.Render(line+"  (default)"))
		} else {
			fmt.Fprintln(out, line)
		}
	}

	if found == 0 {
		fmt.Fprintln(out, dimStyle.Render("no midi inputs found"))
	}
	return nil
}
