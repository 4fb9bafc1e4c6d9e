package synth

import "log/slog"

// Effect is run with the new state after every dispatch. It may run more
// than once for the same state, so it must be idempotent.
type Effect func(*State)

// Dispatcher serializes events into a State. It is not safe for concurrent
// use; callers funnel events through one goroutine.
type Dispatcher struct {
	state  *State
	effect Effect
	log    *slog.Logger

	count int
}

func NewDispatcher(s *State, effect Effect, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		state:  s,
		effect: effect,
		log:    log,
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.state = Reduce(d.state, ev, d.log)
	d.count++
	if d.effect != nil {
		d.effect(d.state)
	}
}

func (d *Dispatcher) State() *State {
	return d.state
}

// Dispatches reports how many events have gone through d.
func (d *Dispatcher) Dispatches() int {
	return d.count
}

func (d *Dispatcher) PlayNote(note int) {
	d.Dispatch(NoteOn(note))
}

func (d *Dispatcher) StopNote(note int) {
	d.Dispatch(NoteOff(note))
}
