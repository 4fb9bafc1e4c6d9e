package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/whyrusleeping/polysynth/internal/engine"
	"github.com/whyrusleeping/polysynth/internal/meter"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

type fakeOutput struct {
	err    error
	played beep.Streamer
}

func (f *fakeOutput) Init(sr beep.SampleRate, bufferSize int) error {
	return f.err
}

func (f *fakeOutput) Play(s beep.Streamer) {
	f.played = s
}

func started(t *testing.T) (*Session, *fakeOutput, time.Time) {
	t.Helper()

	s := New(Options{Engine: engine.Options{SampleRate: 8000}})
	out := &fakeOutput{}
	if err := s.Start(context.Background(), out); err != nil {
		t.Fatal(err)
	}

	t0 := time.Unix(1000, 0)
	s.Update(t0)
	s.Update(t0.Add(500 * time.Millisecond))
	if !s.Ready() {
		t.Fatal("session should be ready 500ms after load")
	}
	return s, out, t0.Add(500 * time.Millisecond)
}

func TestReadyAfterDelay(t *testing.T) {
	s := New(Options{})
	if err := s.Start(context.Background(), &fakeOutput{}); err != nil {
		t.Fatal(err)
	}
	if s.Dispatcher() != nil {
		t.Fatal("dispatcher should not be handed out before ready")
	}

	t0 := time.Unix(1000, 0)
	s.Update(t0)
	if s.Ready() {
		t.Fatal("should not be ready on load")
	}
	s.Update(t0.Add(499 * time.Millisecond))
	if s.Ready() {
		t.Fatal("should not be ready before the delay")
	}
	s.Update(t0.Add(500 * time.Millisecond))
	if !s.Ready() {
		t.Fatal("should be ready after the delay")
	}
	if s.Dispatcher() == nil {
		t.Fatal("ready session should have a dispatcher")
	}
}

func TestStartFailureStaysSkeleton(t *testing.T) {
	s := New(Options{})
	boom := errors.New("no device")

	err := s.Start(context.Background(), &fakeOutput{err: boom})
	if !errors.Is(err, engine.ErrInitialize) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped init error, got %v", err)
	}
	if !s.Failed() {
		t.Fatal("session should record the failure")
	}

	t0 := time.Unix(1000, 0)
	for i := 0; i < 10; i++ {
		s.Update(t0.Add(time.Duration(i) * time.Second))
	}
	if s.Ready() {
		t.Fatal("a failed session must never become ready")
	}
}

func TestPostRunsOnUpdate(t *testing.T) {
	s, _, now := started(t)
	ctx := context.Background()

	if !s.PostEvent(ctx, synth.NoteOn(60)) {
		t.Fatal("post failed")
	}
	if len(s.Dispatcher().State().Active) != 0 {
		t.Fatal("posted work should wait for the loop")
	}

	s.Update(now)
	if got := s.Dispatcher().State().Active; len(got) != 1 {
		t.Fatalf("expected one active voice, got %v", got)
	}
}

func TestPostGivesUpWhenCanceled(t *testing.T) {
	s := New(Options{InboxSize: 1})
	ctx, cancel := context.WithCancel(context.Background())

	if !s.Post(ctx, func() {}) {
		t.Fatal("first post should fit")
	}
	cancel()
	if s.Post(ctx, func() {}) {
		t.Fatal("post into a full inbox should give up on cancel")
	}
}

func TestMetersFollowEngine(t *testing.T) {
	s, out, now := started(t)

	s.Dispatch(synth.NoteOn(69))

	buf := make([][2]float64, 2048)
	out.played.Stream(buf)
	s.Update(now)

	l, r := s.Meters[0].Decibels(), s.Meters[1].Decibels()
	if l < -20 || l > 0 {
		t.Fatalf("unexpected left level %g dB", l)
	}
	if l != r {
		t.Fatalf("mono patch should meter equally, %g != %g", l, r)
	}

	// no new audio, so the meters only decay
	s.Update(now)
	if s.Meters[0].Decibels() > l {
		t.Fatal("meter should not rise without input")
	}
}

func TestDragKnob(t *testing.T) {
	s, _, _ := started(t)

	if s.Title() != "polysynth" {
		t.Fatalf("unexpected title %q", s.Title())
	}

	// gain starts at 0.5; half the travel upwards takes it to full
	s.DragKnob(0, -DragTravel/2)
	if g := s.Dispatcher().State().Gain; g != 1 {
		t.Fatalf("expected gain 1, got %g", g)
	}
	if s.Title() != "Gain: 100 %" {
		t.Fatalf("unexpected title %q", s.Title())
	}

	s.DragKnob(0, DragTravel*2)
	if g := s.Dispatcher().State().Gain; g != 0 {
		t.Fatalf("expected gain clamped to 0, got %g", g)
	}

	s.DragKnob(42, 10)
	if s.Title() != "Gain: 0 %" {
		t.Fatalf("out of range knob should be ignored, title %q", s.Title())
	}
}

func TestDispatchSyncsKnobs(t *testing.T) {
	s, _, _ := started(t)

	s.Dispatch(synth.ControlChange(synth.ParamSustain, 0.25))
	for _, c := range s.Controls {
		if c.Param == synth.ParamSustain && c.Value != 0.25 {
			t.Fatalf("sustain knob not updated: %g", c.Value)
		}
	}
}

func TestStatus(t *testing.T) {
	s, _, _ := started(t)
	s.Dispatch(synth.NoteOn(60))
	s.Dispatch(synth.NoteOn(64))

	st := s.Status()
	if !st.Ready || st.Active != 2 || st.Voices != synth.NumVoices {
		t.Fatalf("unexpected status %+v", st)
	}
	if len(st.Params) != len(synth.Params) {
		t.Fatalf("expected %d params, got %d", len(synth.Params), len(st.Params))
	}
	if st.Params[0].Param != synth.ParamGain || !strings.HasSuffix(st.Params[0].Display, "%") {
		t.Fatalf("unexpected gain status %+v", st.Params[0])
	}
	if st.Meters[0] != meter.DBMin {
		t.Fatalf("meters should be at the floor before any audio, got %g", st.Meters[0])
	}
}
