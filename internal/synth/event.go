package synth

import "fmt"

type EventKind int

const (
	EventControlChange EventKind = iota + 1
	EventNoteOn
	EventNoteOff
	EventAllNotesOff
)

func (k EventKind) String() string {
	switch k {
	case EventControlChange:
		return "controlChange"
	case EventNoteOn:
		return "noteOn"
	case EventNoteOff:
		return "noteOff"
	case EventAllNotesOff:
		return "allNotesOff"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

type Event struct {
	Kind EventKind

	Param Param
	Value float64

	Note int
}

func ControlChange(p Param, v float64) Event {
	return Event{Kind: EventControlChange, Param: p, Value: v}
}

func NoteOn(note int) Event {
	return Event{Kind: EventNoteOn, Note: note}
}

func NoteOff(note int) Event {
	return Event{Kind: EventNoteOff, Note: note}
}

func AllNotesOff() Event {
	return Event{Kind: EventAllNotesOff}
}

func (e Event) String() string {
	switch e.Kind {
	case EventControlChange:
		return fmt.Sprintf("%s(%s=%g)", e.Kind, e.Param, e.Value)
	case EventNoteOn, EventNoteOff:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Note)
	default:
		return e.Kind.String()
	}
}
