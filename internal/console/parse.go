// Package console parses the commands typed at the synth prompt.
package console

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/whyrusleeping/polysynth/internal/synth"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
)

type Action int

const (
	ActionDispatch Action = iota + 1
	ActionStatus
	ActionQuit
)

type Command struct {
	Action Action
	Event  synth.Event
}

// Help lists the command forms, one per line.
var Help = []string{
	"gain|attack|decay|sustain|release <value>   set a parameter (times accept 20ms, 1.5s)",
	"on <note>                                    start a note (60, C4, F#3)",
	"off <note>                                   stop a note",
	"panic                                        release every voice",
	"status                                       show voices, parameters and meters",
	"quit                                         leave",
}

// Words are the command names offered for completion.
var Words = []string{"gain", "attack", "decay", "sustain", "release", "on", "off", "panic", "status", "quit"}

func Parse(line string) (Command, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch name {
	case "status":
		return Command{Action: ActionStatus}, nil
	case "quit", "exit":
		return Command{Action: ActionQuit}, nil
	case "panic":
		return Command{Action: ActionDispatch, Event: synth.AllNotesOff()}, nil
	case "on", "off":
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s takes one note", ErrBadArgument, name)
		}
		note, err := ParseNote(args[0])
		if err != nil {
			return Command{}, err
		}
		ev := synth.NoteOn(note)
		if name == "off" {
			ev = synth.NoteOff(note)
		}
		return Command{Action: ActionDispatch, Event: ev}, nil
	}

	p := synth.Param(name)
	if !p.Valid() {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}
	if len(args) != 1 {
		return Command{}, fmt.Errorf("%w: %s takes one value", ErrBadArgument, name)
	}
	v, err := parseValue(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Action: ActionDispatch, Event: synth.ControlChange(p, v)}, nil
}

// parseValue reads a plain number or a duration, which is returned in
// seconds.
func parseValue(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q is not finite", ErrBadArgument, s)
		}
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number or duration", ErrBadArgument, s)
	}
	return d.Seconds(), nil
}

var noteOffsets = map[string]int{
	"c": 0, "d": 2, "e": 4, "f": 5, "g": 7, "a": 9, "b": 11,
}

// ParseNote accepts a MIDI note number or a name like C4, F#3 or Bb2, with
// C4 being 60.
func ParseNote(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("%w: note %d out of range", ErrBadArgument, n)
		}
		return n, nil
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("%w: bad note %q", ErrBadArgument, s)
	}
	base, ok := noteOffsets[strings.ToLower(s[:1])]
	if !ok {
		return 0, fmt.Errorf("%w: bad note %q", ErrBadArgument, s)
	}

	rest := s[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: bad octave in %q", ErrBadArgument, s)
	}

	n := (octave+1)*12 + base
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: note %q out of range", ErrBadArgument, s)
	}
	return n, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '#' || r == '-' || r == '+'
}

// Tokenize splits a command line into words. Numbers, durations and note
// names stay whole.
func Tokenize(s string) ([]string, error) {
	var out []string
	var wordstart int
	inword := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch {
		case isWordRune(runes[i]):
			if !inword {
				inword = true
				wordstart = i
			}
		case unicode.IsSpace(runes[i]), runes[i] == '=', runes[i] == ',':
			if inword {
				out = append(out, string(runes[wordstart:i]))
				inword = false
			}
		default:
			return nil, fmt.Errorf("invalid character at index %d: %q", i, runes[i])
		}
	}
	if inword {
		out = append(out, string(runes[wordstart:]))
	}

	return out, nil
}
