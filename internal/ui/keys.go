package ui

import "github.com/whyrusleeping/polysynth/internal/voice"

var keyNotes = map[rune]int{
	'a': 60,
	's': 62,
	'd': 64,
	'f': 65,
	'g': 67,
	'h': 69,
	'j': 71,
	'k': 72,
	'l': 74,
}

// NoteForKey maps the home row to a C major scale starting at middle C,
// shifted by octave octaves.
func NoteForKey(r rune, octave int) (int, bool) {
	n, ok := keyNotes[r]
	if !ok {
		return 0, false
	}
	n += 12 * octave
	if n < 0 || n > 127 {
		return 0, false
	}
	return n, true
}

// PlayNote is what the play surface and the space bar sound.
const PlayNote = voice.MiddleC

// Keyboard tracks held keys so auto-repeat does not retrigger notes, and
// remembers the note each key started so an octave change mid-hold still
// releases the right one.
type Keyboard struct {
	Octave int
	held   map[rune]int
}

func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[rune]int)}
}

// Down returns the note to start for r, if any.
func (k *Keyboard) Down(r rune) (int, bool) {
	if _, ok := k.held[r]; ok {
		return 0, false
	}

	switch r {
	case 'z':
		k.Octave--
		return 0, false
	case 'x':
		k.Octave++
		return 0, false
	case ' ':
		k.held[r] = PlayNote
		return PlayNote, true
	}

	n, ok := NoteForKey(r, k.Octave)
	if !ok {
		return 0, false
	}
	k.held[r] = n
	return n, true
}

// Up returns the note to stop for r, if one was started.
func (k *Keyboard) Up(r rune) (int, bool) {
	n, ok := k.held[r]
	if !ok {
		return 0, false
	}
	delete(k.held, r)
	return n, true
}
