package offline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/wav"

	"github.com/whyrusleeping/polysynth/internal/synth"
)

func TestArpeggio(t *testing.T) {
	score := Arpeggio([]int{60, 64, 67}, 100*time.Millisecond, 2)
	if len(score) != 12 {
		t.Fatalf("expected 12 steps, got %d", len(score))
	}
	if score[0].Event != synth.NoteOn(60) || score[0].At != 0 {
		t.Fatalf("unexpected first step %+v", score[0])
	}
	if score[1].Event != synth.NoteOff(60) || score[1].At != 100*time.Millisecond {
		t.Fatalf("unexpected second step %+v", score[1])
	}
	if score[6].Event != synth.NoteOn(60) || score[6].At != 300*time.Millisecond {
		t.Fatalf("second repeat should restart at 300ms, got %+v", score[6])
	}
	if Length(score) != 600*time.Millisecond {
		t.Fatalf("unexpected length %s", Length(score))
	}
}

func TestSortedKeepsOrderOfTies(t *testing.T) {
	score := []Step{
		{At: 200 * time.Millisecond, Event: synth.NoteOff(60)},
		{At: 100 * time.Millisecond, Event: synth.NoteOff(62)},
		{At: 100 * time.Millisecond, Event: synth.NoteOn(64)},
	}
	got := sorted(score)
	if got[0].Event != synth.NoteOff(62) || got[1].Event != synth.NoteOn(64) || got[2].Event != synth.NoteOff(60) {
		t.Fatalf("unexpected order %+v", got)
	}
	if score[0].Event != synth.NoteOff(60) {
		t.Fatal("input score should not be reordered")
	}
}

func TestRenderEmptyScore(t *testing.T) {
	if err := Render(nil, Options{}, nil); !errors.Is(err, ErrEmptyScore) {
		t.Fatalf("expected ErrEmptyScore, got %v", err)
	}
}

func TestRenderWav(t *testing.T) {
	const sr = 8000
	path := filepath.Join(t.TempDir(), "out.wav")
	fi, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	score := []Step{
		{At: 100 * time.Millisecond, Event: synth.NoteOn(69)},
		{At: 300 * time.Millisecond, Event: synth.NoteOff(69)},
	}
	opts := Options{
		SampleRate: sr,
		Tail:       200 * time.Millisecond,
		Params: map[synth.Param]float64{
			synth.ParamRelease: 0.05,
		},
	}
	if err := Render(fi, opts, score); err != nil {
		t.Fatal(err)
	}
	if err := fi.Close(); err != nil {
		t.Fatal(err)
	}

	fi, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fi.Close()

	s, format, err := wav.Decode(fi)
	if err != nil {
		t.Fatal(err)
	}
	if format.SampleRate != sr || format.NumChannels != 2 || format.Precision != 2 {
		t.Fatalf("unexpected format %+v", format)
	}
	if s.Len() != 4000 {
		t.Fatalf("expected 4000 frames, got %d", s.Len())
	}

	frames := make([][2]float64, s.Len())
	n, _ := s.Stream(frames)
	if n != len(frames) {
		t.Fatalf("short read: %d", n)
	}

	peak := func(from, to int) float64 {
		var p float64
		for _, f := range frames[from:to] {
			p = math.Max(p, math.Abs(f[0]))
		}
		return p
	}

	if p := peak(0, 800); p != 0 {
		t.Fatalf("expected silence before the note, got %g", p)
	}
	if p := peak(800, 2400); p < 0.3 {
		t.Fatalf("expected the held note, got peak %g", p)
	}
	if p := peak(3200, 4000); p > 1e-3 {
		t.Fatalf("expected silence after the release, got %g", p)
	}
	for _, f := range frames {
		if f[0] != f[1] {
			t.Fatal("left and right should carry the same mono signal")
		}
	}
}
