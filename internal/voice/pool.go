package voice

import (
	"fmt"
	"slices"
)

// MiddleC is the note every slot holds before it is first allocated.
const MiddleC = 60

type Voice struct {
	Note int
	Gate int
}

// Pool is a fixed set of voice slots. Slot ids are indexes into Voices and
// stay stable for the life of the pool. Idle is a FIFO queue, Active is kept
// in allocation order.
type Pool struct {
	Voices []Voice
	Idle   []int
	Active []int
}

func NewPool(n int) *Pool {
	p := &Pool{
		Voices: make([]Voice, n),
		Idle:   make([]int, 0, n),
		Active: make([]int, 0, n),
	}
	for i := range p.Voices {
		p.Voices[i] = Voice{Note: MiddleC}
		p.Idle = append(p.Idle, i)
	}
	return p
}

func (p *Pool) Len() int {
	return len(p.Voices)
}

// NoteOn assigns the oldest idle slot to note. When every slot is sounding
// the note is dropped and ok is false; nothing is stolen.
func (p *Pool) NoteOn(note int) (slot int, ok bool) {
	if len(p.Idle) == 0 {
		return -1, false
	}

	slot = p.Idle[0]
	p.Idle = p.Idle[1:]

	p.Voices[slot] = Voice{Note: note, Gate: 1}
	p.Active = append(p.Active, slot)
	return slot, true
}

// NoteOff releases the earliest allocated active slot holding note.
func (p *Pool) NoteOff(note int) (slot int, ok bool) {
	ix := slices.IndexFunc(p.Active, func(s int) bool {
		return p.Voices[s].Note == note
	})
	if ix == -1 {
		return -1, false
	}

	slot = p.Active[ix]
	p.release(ix)
	return slot, true
}

// ReleaseAll gates off every active slot, oldest first.
func (p *Pool) ReleaseAll() []int {
	released := slices.Clone(p.Active)
	for len(p.Active) > 0 {
		p.release(0)
	}
	return released
}

func (p *Pool) release(ix int) {
	slot := p.Active[ix]
	p.Voices[slot].Gate = 0
	p.Active = slices.Delete(p.Active, ix, ix+1)
	p.Idle = append(p.Idle, slot)
}

// IsActive reports whether slot is currently sounding.
func (p *Pool) IsActive(slot int) bool {
	return slices.Contains(p.Active, slot)
}

func (p *Pool) Validate() error {
	seen := make([]int, len(p.Voices))
	for _, s := range p.Idle {
		if s < 0 || s >= len(seen) {
			return fmt.Errorf("idle slot %d out of range", s)
		}
		seen[s]++
		if p.Voices[s].Gate != 0 {
			return fmt.Errorf("idle slot %d has gate %d", s, p.Voices[s].Gate)
		}
	}
	for _, s := range p.Active {
		if s < 0 || s >= len(seen) {
			return fmt.Errorf("active slot %d out of range", s)
		}
		seen[s]++
		if p.Voices[s].Gate != 1 {
			return fmt.Errorf("active slot %d has gate %d", s, p.Voices[s].Gate)
		}
	}
	for s, n := range seen {
		if n != 1 {
			return fmt.Errorf("slot %d appears %d times across idle and active", s, n)
		}
	}
	return nil
}
