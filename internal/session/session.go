// Package session ties the synth state, the audio engine and the on-screen
// controls together. Everything here runs on the loop goroutine; other
// goroutines hand work over with Post.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/whyrusleeping/polysynth/internal/engine"
	"github.com/whyrusleeping/polysynth/internal/knob"
	"github.com/whyrusleeping/polysynth/internal/meter"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

// DragTravel is the vertical distance in pixels that sweeps a knob over its
// whole range.
const DragTravel = 200

type Options struct {
	Engine     engine.Options
	Voices     int
	Smoothing  float64
	ReadyDelay time.Duration
	InboxSize  int
	Logger     *slog.Logger
}

// Control is a knob bound to a synth parameter.
type Control struct {
	Param synth.Param
	*knob.Knob
}

type Session struct {
	Engine   *engine.Engine
	Meters   [2]*meter.Meter
	Controls []Control

	disp  *synth.Dispatcher
	inbox chan func()
	log   *slog.Logger

	readyDelay time.Duration
	loadedAt   time.Time
	ready      bool
	failed     bool
	touched    int
}

func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Voices <= 0 {
		opts.Voices = synth.NumVoices
	}
	if opts.Smoothing <= 0 {
		opts.Smoothing = meter.DefaultCoefficient
	}
	if opts.ReadyDelay <= 0 {
		opts.ReadyDelay = 500 * time.Millisecond
	}
	if opts.InboxSize <= 0 {
		opts.InboxSize = 256
	}
	opts.Engine.Logger = opts.Logger

	s := &Session{
		Engine:     engine.New(opts.Engine),
		inbox:      make(chan func(), opts.InboxSize),
		log:        opts.Logger,
		readyDelay: opts.ReadyDelay,
		touched:    -1,
	}
	s.Meters[0] = meter.New(synth.MeterLeft, opts.Smoothing)
	s.Meters[1] = meter.New(synth.MeterRight, opts.Smoothing)

	s.disp = synth.NewDispatcher(synth.NewState(opts.Voices), func(st *synth.State) {
		s.Engine.Render(synth.Build(st)...)
	}, opts.Logger)

	st := s.disp.State()
	s.Controls = []Control{
		{synth.ParamGain, knob.New("Gain", knob.Percentage, st.Gain)},
		{synth.ParamAttack, knob.New("Attack", knob.AttackDecayRelease, st.Attack)},
		{synth.ParamDecay, knob.New("Decay", knob.AttackDecayRelease, st.Decay)},
		{synth.ParamSustain, knob.New("Sustain", knob.Percentage, st.Sustain)},
		{synth.ParamRelease, knob.New("Release", knob.AttackDecayRelease, st.Release)},
	}
	s.Controls[0].Large = true

	return s
}

// Start brings up the audio engine on out and submits the initial graph.
// On failure the session stays in its skeleton state for good.
func (s *Session) Start(ctx context.Context, out engine.Output) error {
	s.Engine.Render(synth.Build(s.disp.State())...)

	if err := s.Engine.Initialize(ctx, out); err != nil {
		s.failed = true
		s.log.Error("failed to start audio engine", "err", err)
		return fmt.Errorf("starting session: %w", err)
	}
	return nil
}

// Post queues fn to run on the loop goroutine. It blocks while the inbox is
// full and gives up when ctx is done.
func (s *Session) Post(ctx context.Context, fn func()) bool {
	select {
	case s.inbox <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// PostEvent queues a dispatch of ev.
func (s *Session) PostEvent(ctx context.Context, ev synth.Event) bool {
	return s.Post(ctx, func() {
		s.Dispatch(ev)
	})
}

// Update runs one frame: queued work, engine events, meter release and the
// ready transition.
func (s *Session) Update(now time.Time) {
inbox:
	for {
		select {
		case fn := <-s.inbox:
			fn()
		default:
			break inbox
		}
	}

events:
	for {
		select {
		case ev := <-s.Engine.Events():
			s.handleEngineEvent(ev, now)
		default:
			break events
		}
	}

	for _, m := range s.Meters {
		m.Tick()
	}

	if !s.ready && !s.failed && !s.loadedAt.IsZero() && now.Sub(s.loadedAt) >= s.readyDelay {
		s.ready = true
		s.log.Info("synth ready")
	}
}

func (s *Session) handleEngineEvent(ev engine.Event, now time.Time) {
	switch ev.Kind {
	case engine.EventLoad:
		if s.loadedAt.IsZero() {
			s.loadedAt = now
		}
	case engine.EventMeter:
		for _, m := range s.Meters {
			if m.Source == ev.Source {
				m.Observe(ev.Min, ev.Max)
			}
		}
	default:
		s.log.Warn("unhandled engine event", "kind", int(ev.Kind))
	}
}

func (s *Session) Ready() bool {
	return s.ready
}

// Failed reports whether the engine could not be started.
func (s *Session) Failed() bool {
	return s.failed
}

// Dispatcher returns the dispatcher of a ready session. Asking before ready
// returns nil; a ready session without one is a bug.
func (s *Session) Dispatcher() *synth.Dispatcher {
	if !s.ready {
		return nil
	}
	if s.disp == nil || s.Engine == nil {
		panic("session: ready without engine or dispatcher")
	}
	return s.disp
}

// Dispatch runs ev through the reducer and brings the knobs in line with
// the new state.
func (s *Session) Dispatch(ev synth.Event) {
	s.disp.Dispatch(ev)

	st := s.disp.State()
	for _, c := range s.Controls {
		c.SetValue(st.Get(c.Param))
	}
}

// DragKnob turns knob i by a vertical mouse motion of dy pixels. Moving up
// turns it up.
func (s *Session) DragKnob(i int, dy int32) {
	if i < 0 || i >= len(s.Controls) {
		return
	}
	c := s.Controls[i]
	v := c.Drag(-float64(dy) / DragTravel)
	s.touched = i
	s.Dispatch(synth.ControlChange(c.Param, v))
}

// Title is the window caption: the last touched knob and its value.
func (s *Session) Title() string {
	if s.touched < 0 {
		return "polysynth"
	}
	c := s.Controls[s.touched]
	return fmt.Sprintf("%s: %s", c.Title, c.Display())
}

type Status struct {
	Ready   bool
	Active  int
	Voices  int
	Params  []ParamStatus
	Meters  [2]float64
	Dropped int64
}

type ParamStatus struct {
	Param   synth.Param
	Display string
}

func (s *Session) Status() Status {
	st := s.disp.State()
	out := Status{
		Ready:   s.ready,
		Active:  len(st.Active),
		Voices:  st.Len(),
		Dropped: s.Engine.Dropped(),
	}
	for _, c := range s.Controls {
		out.Params = append(out.Params, ParamStatus{Param: c.Param, Display: c.Display()})
	}
	for i, m := range s.Meters {
		out.Meters[i] = m.Decibels()
	}
	return out
}
