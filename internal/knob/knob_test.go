package knob

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, skew := range []float64{1, 1.88, 5} {
		for _, bounds := range [][2]float64{{0, 1}, {0.000004, 60}, {20, 20000}, {-12, 12}} {
			r, err := NewRange(bounds[0], bounds[1], skew)
			if err != nil {
				t.Fatal(err)
			}

			for i := 0; i <= 200; i++ {
				x := r.Min + (r.Max-r.Min)*float64(i)/200
				got := r.FromNormalized(r.ToNormalized(x))
				if math.Abs(got-x) > 1e-9*math.Max(1, math.Abs(x)) {
					t.Fatalf("skew %g range %v: %g round tripped to %g", skew, bounds, x, got)
				}
			}
		}
	}
}

func TestMonotonic(t *testing.T) {
	r, _ := NewRange(0.000004, 60, 1.88)
	prev := -1.0
	for i := 0; i <= 1000; i++ {
		v := r.FromNormalized(float64(i) / 1000)
		if v < prev {
			t.Fatalf("not monotonic at %d: %g < %g", i, v, prev)
		}
		prev = v
	}
}

func TestSkewBiasesLowEnd(t *testing.T) {
	r, _ := NewRange(0, 60, 1.88)
	if mid := r.FromNormalized(0.5); mid >= 30 {
		t.Fatalf("expected mid position below linear midpoint, got %g", mid)
	}
}

func TestOutOfRangeInputs(t *testing.T) {
	r, _ := NewRange(10, 20, 2)

	cases := []struct {
		in, norm float64
	}{
		{5, 0},
		{25, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}
	for _, c := range cases {
		if got := r.ToNormalized(c.in); got != c.norm {
			t.Fatalf("ToNormalized(%g): expected %g, got %g", c.in, c.norm, got)
		}
	}

	for _, in := range []float64{-1, 2, math.NaN()} {
		got := r.FromNormalized(in)
		if math.IsNaN(got) || got < r.Min || got > r.Max {
			t.Fatalf("FromNormalized(%g) = %g out of range", in, got)
		}
	}
}

func TestNewRangeRejectsBadBounds(t *testing.T) {
	bad := [][3]float64{
		{1, 1, 1},
		{2, 1, 1},
		{0, 1, 0},
		{0, 1, -2},
		{math.NaN(), 1, 1},
		{0, 1, math.NaN()},
	}
	for _, b := range bad {
		if _, err := NewRange(b[0], b[1], b[2]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("%v: expected ErrInvalidRange, got %v", b, err)
		}
	}
}

func TestDisplaySeconds(t *testing.T) {
	cases := map[float64]string{
		0.001:   "1.00 ms",
		0.025:   "25.0 ms",
		0.6:     "600 ms",
		1.5:     "1.50 s",
		42:      "42.0 s",
		0.00004: "0.04 ms",
	}
	for v, want := range cases {
		if got := AttackDecayRelease.Display(v); got != want {
			t.Fatalf("%g: expected %q, got %q", v, want, got)
		}
	}
}

func TestDisplayOther(t *testing.T) {
	if got := Percentage.Display(0.7); got != "70 %" {
		t.Fatalf("unexpected percentage display %q", got)
	}
	if got := Frequency.Display(440); got != "440 Hz" {
		t.Fatalf("unexpected frequency display %q", got)
	}
	if got := Frequency.Display(2500); got != "2.50 kHz" {
		t.Fatalf("unexpected frequency display %q", got)
	}
}

func TestKindTable(t *testing.T) {
	if Percentage.Range() != (Range{0, 1, 1}) {
		t.Fatalf("unexpected percentage range %+v", Percentage.Range())
	}
	if r := AttackDecayRelease.Range(); r.Min != 0.000004 || r.Max != 60 || r.Skew != 1.88 {
		t.Fatalf("unexpected adr range %+v", r)
	}
	if Kind(7).String() != "Kind(7)" || AttackDecayRelease.String() != "adr" {
		t.Fatal("unexpected kind names")
	}
}

func TestKnobDrag(t *testing.T) {
	k := New("Sustain", Percentage, 0.7)

	if v := k.Drag(0.1); math.Abs(v-0.8) > 1e-12 {
		t.Fatalf("expected 0.8, got %g", v)
	}
	if v := k.Drag(5); v != 1 {
		t.Fatalf("expected clamp to 1, got %g", v)
	}
	if v := k.Drag(-5); v != 0 {
		t.Fatalf("expected clamp to 0, got %g", v)
	}
}

func TestKnobDragSkewed(t *testing.T) {
	k := New("Attack", AttackDecayRelease, 0.001)
	pos := k.Position()

	k.Drag(0.25)
	if math.Abs(k.Position()-(pos+0.25)) > 1e-9 {
		t.Fatalf("expected position %g, got %g", pos+0.25, k.Position())
	}
	if k.Value <= 0.001 {
		t.Fatalf("value should grow, got %g", k.Value)
	}

	k.SetValue(1000)
	if k.Value != 60 || k.Display() != "60.0 s" {
		t.Fatalf("expected clamped 60 s, got %g %q", k.Value, k.Display())
	}
}
