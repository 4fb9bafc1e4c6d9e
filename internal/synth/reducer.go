package synth

import (
	"log/slog"
)

// Reduce applies ev to s in place and returns s. Control changes are not
// range checked here; the knobs and bindings that produce them are.
func Reduce(s *State, ev Event, log *slog.Logger) *State {
	if log == nil {
		log = slog.Default()
	}

	switch ev.Kind {
	case EventControlChange:
		if !s.set(ev.Param, ev.Value) {
			log.Warn("unhandled control change", "param", string(ev.Param), "value", ev.Value)
		}
	case EventNoteOn:
		if _, ok := s.NoteOn(ev.Note); !ok {
			log.Debug("no idle voice, dropping note", "note", ev.Note)
		}
	case EventNoteOff:
		s.NoteOff(ev.Note)
	case EventAllNotesOff:
		s.ReleaseAll()
	default:
		log.Warn("unhandled event", "event", ev.String())
	}

	return s
}
