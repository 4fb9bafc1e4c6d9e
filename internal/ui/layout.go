// Package ui holds the window geometry and input mapping of the synth page,
// independent of the drawing library.
package ui

type Rect struct {
	X, Y, W, H int32
}

func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (int32, int32) {
	return r.X + r.W/2, r.Y + r.H/2
}

type Layout struct {
	Knobs    []Rect
	Meters   [2]Rect
	Play     Rect
	Scope    Rect
	Spectrum Rect
}

const (
	margin     = 20
	meterWidth = 18
	// the first knob is drawn larger
	largeKnob = 1.5
)

// Compute lays out knobs knobs across the top row with the meters to their
// right, the scopes below and the play surface along the bottom.
func Compute(w, h int32, knobs int) Layout {
	var l Layout

	meterX := w - margin - 2*meterWidth - 8
	rowH := h * 2 / 5

	l.Meters[0] = Rect{X: meterX, Y: margin, W: meterWidth, H: rowH}
	l.Meters[1] = Rect{X: meterX + meterWidth + 8, Y: margin, W: meterWidth, H: rowH}

	if knobs > 0 {
		avail := meterX - 2*margin
		units := float64(knobs-1) + largeKnob
		unit := int32(float64(avail) / units)

		x := int32(margin)
		for i := 0; i < knobs; i++ {
			kw := unit
			if i == 0 {
				kw = int32(float64(unit) * largeKnob)
			}
			size := min(kw-margin/2, rowH)
			l.Knobs = append(l.Knobs, Rect{
				X: x + (kw-size)/2,
				Y: margin + (rowH-size)/2,
				W: size,
				H: size,
			})
			x += kw
		}
	}

	scopeY := margin*2 + rowH
	scopeH := h/4 - margin
	half := (w - 3*margin) / 2
	l.Scope = Rect{X: margin, Y: scopeY, W: half, H: scopeH}
	l.Spectrum = Rect{X: 2*margin + half, Y: scopeY, W: half, H: scopeH}

	playY := scopeY + scopeH + margin
	l.Play = Rect{X: margin, Y: playY, W: w - 2*margin, H: h - playY - margin}

	return l
}

// KnobAt returns the index of the knob under (x, y), or -1.
func (l Layout) KnobAt(x, y int32) int {
	for i, r := range l.Knobs {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
