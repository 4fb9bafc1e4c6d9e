// Package midiin turns raw MIDI messages into synth events.
package midiin

import (
	"log/slog"

	"gitlab.com/gomidi/midi/v2"

	"github.com/whyrusleeping/polysynth/internal/knob"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123
)

// Binding routes a controller to a synth parameter. The 0..127 controller
// value is read as a knob position under Kind's range.
type Binding struct {
	Controller uint8
	Param      synth.Param
	Kind       knob.Kind
}

func (b Binding) Value(v uint8) float64 {
	return b.Kind.Range().FromNormalized(float64(v) / 127)
}

// DefaultBindings follow the General MIDI sound controller assignments.
var DefaultBindings = []Binding{
	{Controller: 7, Param: synth.ParamGain, Kind: knob.Percentage},
	{Controller: 73, Param: synth.ParamAttack, Kind: knob.AttackDecayRelease},
	{Controller: 75, Param: synth.ParamDecay, Kind: knob.AttackDecayRelease},
	{Controller: 79, Param: synth.ParamSustain, Kind: knob.Percentage},
	{Controller: 72, Param: synth.ParamRelease, Kind: knob.AttackDecayRelease},
}

type Decoder struct {
	binds map[uint8]Binding
	log   *slog.Logger
}

func NewDecoder(binds []Binding, log *slog.Logger) *Decoder {
	if log == nil {
		log = slog.Default()
	}
	d := &Decoder{
		binds: make(map[uint8]Binding, len(binds)),
		log:   log,
	}
	for _, b := range binds {
		d.binds[b.Controller] = b
	}
	return d
}

// Decode maps msg to a synth event. Messages on every channel are accepted.
func (d *Decoder) Decode(msg midi.Message) (synth.Event, bool) {
	var ch, key, vel, cc, val uint8

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return synth.NoteOn(int(key)), true
	case msg.GetNoteEnd(&ch, &key):
		return synth.NoteOff(int(key)), true
	case msg.GetControlChange(&ch, &cc, &val):
		if cc == ccAllNotesOff || cc == ccAllSoundOff {
			return synth.AllNotesOff(), true
		}
		b, ok := d.binds[cc]
		if !ok {
			d.log.Debug("unbound controller", "channel", ch, "controller", cc, "value", val)
			return synth.Event{}, false
		}
		return synth.ControlChange(b.Param, b.Value(val)), true
	}

	d.log.Debug("unhandled MIDI message", "msg", msg.String())
	return synth.Event{}, false
}

// FromPortmidi rebuilds the wire bytes of a short portmidi event.
func FromPortmidi(status, data1, data2 int64) midi.Message {
	return midi.Message{byte(status), byte(data1), byte(data2)}
}
