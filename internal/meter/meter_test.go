package meter

import (
	"math"
	"testing"
)

func TestSmoothedConvergence(t *testing.T) {
	s := NewSmoothed(0, 10, DefaultCoefficient)

	prev := math.Abs(s.Current() - s.Target())
	for i := 0; i < 20; i++ {
		s.Tick()
		dist := math.Abs(s.Current() - s.Target())
		if math.Abs(dist-0.7*prev) > 1e-9 {
			t.Fatalf("tick %d: expected distance %g, got %g", i, 0.7*prev, dist)
		}
		prev = dist
	}
}

func TestSmoothedJump(t *testing.T) {
	s := NewSmoothed(0, 0, DefaultCoefficient)
	s.SetTarget(5)
	if s.Current() != 0 {
		t.Fatal("SetTarget should not move current")
	}
	s.SetCurrentAndTarget(3)
	if s.Current() != 3 || s.Target() != 3 {
		t.Fatalf("expected 3/3, got %g/%g", s.Current(), s.Target())
	}
	if s.Tick() != 3 {
		t.Fatal("tick at target should be stationary")
	}
}

func TestGainToDecibels(t *testing.T) {
	cases := []struct {
		gain, db float64
	}{
		{1, 0},
		{0.5, -6.0206},
		{0.1, -20},
		{0, DBMin},
		{-1, DBMin},
		{1e-9, DBMin},
	}
	for _, c := range cases {
		if got := GainToDecibels(c.gain); math.Abs(got-c.db) > 1e-3 {
			t.Fatalf("gain %g: expected %g dB, got %g", c.gain, c.db, got)
		}
	}
}

func TestMeterAttackSnaps(t *testing.T) {
	m := New("meter:left", DefaultCoefficient)
	m.Observe(-0.5, 0.25)

	want := GainToDecibels(0.5)
	if math.Abs(m.Decibels()-want) > 1e-12 {
		t.Fatalf("expected immediate %g dB, got %g", want, m.Decibels())
	}
}

func TestMeterReleaseSmooths(t *testing.T) {
	m := New("meter:left", DefaultCoefficient)
	m.Observe(-1, 1)
	if m.Decibels() != 0 {
		t.Fatalf("expected 0 dB, got %g", m.Decibels())
	}

	m.Observe(0, 0.1)
	if m.Decibels() != 0 {
		t.Fatal("release should not move the current value until a tick")
	}

	target := -20.0
	prev := math.Abs(m.Decibels() - target)
	for i := 0; i < 10; i++ {
		m.Tick()
		dist := math.Abs(m.Decibels() - target)
		if math.Abs(dist-0.7*prev) > 1e-9 {
			t.Fatalf("tick %d: expected distance %g, got %g", i, 0.7*prev, dist)
		}
		prev = dist
	}
}

func TestMeterClampsAboveFullScale(t *testing.T) {
	m := New("meter:right", DefaultCoefficient)
	m.Observe(-3, 2)
	if m.Decibels() != DBMax || m.Level() != 1 {
		t.Fatalf("expected clamp to 0 dB, got %g (%g)", m.Decibels(), m.Level())
	}
}

func TestMeterHeight(t *testing.T) {
	m := New("meter:left", DefaultCoefficient)
	if m.Height(200) != 0 {
		t.Fatalf("silent meter should be empty, got %d", m.Height(200))
	}

	m.Observe(0, 0.1)
	if h := m.Height(200); h != 160 {
		t.Fatalf("expected -20 dB to fill 160 of 200 px, got %d", h)
	}
}
