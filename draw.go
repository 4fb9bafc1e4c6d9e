package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/whyrusleeping/polysynth/internal/engine"
	"github.com/whyrusleeping/polysynth/internal/meter"
	"github.com/whyrusleeping/polysynth/internal/session"
	"github.com/whyrusleeping/polysynth/internal/synth"
	"github.com/whyrusleeping/polysynth/internal/ui"
)

const (
	scopeFrames   = 2048
	frameInterval = time.Second / 60

	scopePoints    = 512
	spectrumPoints = 128
)

// Theme holds every color the window draws with.
type Theme struct {
	Background    sdl.Color
	Skeleton      sdl.Color
	Surface       sdl.Color
	SurfaceActive sdl.Color
	KnobTrack     sdl.Color
	KnobValue     sdl.Color
	MeterTrack    sdl.Color
	MeterFill     sdl.Color
	MeterHot      sdl.Color
	Axis          sdl.Color
	Trace         sdl.Color
}

var DefaultTheme = Theme{
	Background:    sdl.Color{R: 24, G: 24, B: 28, A: 255},
	Skeleton:      sdl.Color{R: 48, G: 48, B: 56, A: 255},
	Surface:       sdl.Color{R: 40, G: 40, B: 48, A: 255},
	SurfaceActive: sdl.Color{R: 125, G: 86, B: 244, A: 255},
	KnobTrack:     sdl.Color{R: 70, G: 70, B: 80, A: 255},
	KnobValue:     sdl.Color{R: 125, G: 86, B: 244, A: 255},
	MeterTrack:    sdl.Color{R: 40, G: 40, B: 48, A: 255},
	MeterFill:     sdl.Color{R: 0, G: 200, B: 120, A: 255},
	MeterHot:      sdl.Color{R: 255, G: 90, B: 60, A: 255},
	Axis:          sdl.Color{R: 90, G: 90, B: 100, A: 255},
	Trace:         sdl.Color{R: 255, G: 215, B: 0, A: 255},
}

// the meter turns hot above this level
const hotDB = -3.0

type view struct {
	sess   *session.Session
	r      *sdl.Renderer
	layout ui.Layout
	theme  Theme
	keys   *ui.Keyboard

	dragging int
	playHeld bool
}

func draw(ctx context.Context, sess *session.Session) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}
	defer sdl.Quit()

	w, h := int32(cfg.Width), int32(cfg.Height)
	window, err := sdl.CreateWindow("polysynth", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer renderer.Destroy()

	v := &view{
		sess:     sess,
		r:        renderer,
		layout:   ui.Compute(w, h, len(sess.Controls)),
		theme:    DefaultTheme,
		keys:     ui.NewKeyboard(),
		dragging: -1,
	}

	var title string
	for {
		start := time.Now()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
			v.handle(event)
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		sess.Update(time.Now())
		v.render()

		if t := sess.Title(); t != title {
			window.SetTitle(t)
			title = t
		}

		if d := frameInterval - time.Since(start); d > 0 {
			sdl.Delay(uint32(d / time.Millisecond))
		}
	}
}

func (v *view) handle(event sdl.Event) {
	// no input until the engine is up
	if v.sess.Dispatcher() == nil {
		return
	}

	switch event := event.(type) {
	case *sdl.KeyboardEvent:
		if event.Repeat != 0 || event.Keysym.Sym < 0 || event.Keysym.Sym >= 128 {
			return
		}
		r := rune(event.Keysym.Sym)

		switch event.Type {
		case sdl.KEYDOWN:
			if n, ok := v.keys.Down(r); ok {
				v.sess.Dispatch(synth.NoteOn(n))
			}
		case sdl.KEYUP:
			if n, ok := v.keys.Up(r); ok {
				v.sess.Dispatch(synth.NoteOff(n))
			}
		}

	case *sdl.MouseButtonEvent:
		if event.Button != sdl.BUTTON_LEFT {
			return
		}

		switch event.Type {
		case sdl.MOUSEBUTTONDOWN:
			if i := v.layout.KnobAt(event.X, event.Y); i >= 0 {
				v.dragging = i
				return
			}
			if v.layout.Play.Contains(event.X, event.Y) && !v.playHeld {
				v.playHeld = true
				v.sess.Dispatch(synth.NoteOn(ui.PlayNote))
			}
		case sdl.MOUSEBUTTONUP:
			v.dragging = -1
			if v.playHeld {
				v.playHeld = false
				v.sess.Dispatch(synth.NoteOff(ui.PlayNote))
			}
		}

	case *sdl.MouseMotionEvent:
		if v.dragging >= 0 && event.YRel != 0 {
			v.sess.DragKnob(v.dragging, event.YRel)
		}
	}
}

func (v *view) render() {
	v.setColor(v.theme.Background)
	v.r.Clear()

	if !v.sess.Ready() {
		v.drawSkeleton()
		v.r.Present()
		return
	}

	for i, c := range v.sess.Controls {
		v.drawKnob(v.layout.Knobs[i], c.Position())
	}

	for i, m := range v.sess.Meters {
		v.drawMeter(v.layout.Meters[i], m)
	}

	if v.playHeld {
		v.setColor(v.theme.SurfaceActive)
	} else {
		v.setColor(v.theme.Surface)
	}
	v.r.FillRect(sdlRect(v.layout.Play))

	if sc := v.sess.Engine.Scope(); sc != nil {
		data := sc.Left()
		v.graphData(data[len(data)-min(len(data), scopePoints):], v.layout.Scope, -1, 1)

		mags := engine.Spectrum(data)
		v.graphData(mags[:min(len(mags), spectrumPoints)], v.layout.Spectrum, 0, 0.5)
	}

	v.r.Present()
}

// drawSkeleton outlines the page while the engine starts, or for good if
// it never does.
func (v *view) drawSkeleton() {
	v.setColor(v.theme.Skeleton)
	for _, k := range v.layout.Knobs {
		v.r.DrawRect(sdlRect(k))
	}
	for _, m := range v.layout.Meters {
		v.r.DrawRect(sdlRect(m))
	}
	v.r.DrawRect(sdlRect(v.layout.Scope))
	v.r.DrawRect(sdlRect(v.layout.Spectrum))
	v.r.FillRect(sdlRect(v.layout.Play))
}

func (v *view) drawMeter(rect ui.Rect, m *meter.Meter) {
	v.setColor(v.theme.MeterTrack)
	v.r.FillRect(sdlRect(rect))

	fill := int32(m.Height(int(rect.H)))
	if fill <= 0 {
		return
	}
	if m.Decibels() > hotDB {
		v.setColor(v.theme.MeterHot)
	} else {
		v.setColor(v.theme.MeterFill)
	}
	v.r.FillRect(&sdl.Rect{X: rect.X, Y: rect.Y + rect.H - fill, W: rect.W, H: fill})
}

const (
	// dial sweep in degrees, clockwise from lower left
	knobStart = 225.0
	knobSweep = 270.0
	knobSegs  = 48
)

func (v *view) drawKnob(rect ui.Rect, pos float64) {
	cx, cy := rect.Center()
	radius := float64(rect.W) / 2

	point := func(t, rad float64) (int32, int32) {
		a := (knobStart - t*knobSweep) * math.Pi / 180
		return cx + int32(rad*math.Cos(a)), cy - int32(rad*math.Sin(a))
	}
	arc := func(from, to float64) {
		steps := max(1, int(float64(knobSegs)*(to-from)))
		x1, y1 := point(from, radius)
		for i := 1; i <= steps; i++ {
			x2, y2 := point(from+(to-from)*float64(i)/float64(steps), radius)
			v.r.DrawLine(x1, y1, x2, y2)
			x1, y1 = x2, y2
		}
	}

	v.setColor(v.theme.KnobTrack)
	arc(0, 1)

	v.setColor(v.theme.KnobValue)
	if pos > 0 {
		arc(0, pos)
	}
	x, y := point(pos, radius*0.8)
	v.r.DrawLine(cx, cy, x, y)
}

func (v *view) graphData(dataPoints []float64, rect ui.Rect, minval, maxval float64) {
	if len(dataPoints) < 2 {
		return
	}

	v.setColor(v.theme.Axis)
	v.r.DrawLine(rect.X, rect.Y+rect.H/2, rect.X+rect.W, rect.Y+rect.H/2)
	v.r.DrawLine(rect.X, rect.Y, rect.X, rect.Y+rect.H)

	spread := maxval - minval
	yFor := func(val float64) int32 {
		val = meter.Clamp(val, minval, maxval)
		return rect.Y + rect.H - int32((val-minval)*float64(rect.H)/spread)
	}

	v.setColor(v.theme.Trace)
	for i := 0; i < len(dataPoints)-1; i++ {
		x1 := rect.X + int32(float64(i)*float64(rect.W)/float64(len(dataPoints)-1))
		x2 := rect.X + int32(float64(i+1)*float64(rect.W)/float64(len(dataPoints)-1))
		v.r.DrawLine(x1, yFor(dataPoints[i]), x2, yFor(dataPoints[i+1]))
	}
}

func (v *view) setColor(c sdl.Color) {
	v.r.SetDrawColor(c.R, c.G, c.B, c.A)
}

func sdlRect(r ui.Rect) *sdl.Rect {
	return &sdl.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
