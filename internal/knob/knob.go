package knob

// Knob is a rotary control. Its dial shows the normalized position of Value
// under Kind's range.
type Knob struct {
	Title string
	Kind  Kind
	Value float64
	Large bool
}

func New(title string, kind Kind, value float64) *Knob {
	return &Knob{
		Title: title,
		Kind:  kind,
		Value: kind.Range().Clamp(value),
	}
}

func (k *Knob) Position() float64 {
	return k.Kind.Range().ToNormalized(k.Value)
}

// Drag moves the dial by delta in normalized units and returns the new
// value.
func (k *Knob) Drag(delta float64) float64 {
	r := k.Kind.Range()
	k.Value = r.FromNormalized(r.ToNormalized(k.Value) + delta)
	return k.Value
}

// SetValue updates the knob from outside, e.g. a MIDI binding or the
// console.
func (k *Knob) SetValue(v float64) {
	k.Value = k.Kind.Range().Clamp(v)
}

func (k *Knob) Display() string {
	return k.Kind.Display(k.Value)
}
