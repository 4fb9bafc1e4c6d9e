package main

import (
	"context"
	"time"

	"github.com/whyrusleeping/polysynth/internal/session"
	"github.com/whyrusleeping/polysynth/internal/synth"
)

// Arp loops over notes, holding each for duration, until its context ends.
// A note <= 0 is a rest. The last note is left to the teardown.
type Arp struct {
	notes    []int
	duration time.Duration

	sess *session.Session
}

func (a *Arp) Run(ctx context.Context) {
	ticker := time.NewTicker(a.duration)
	defer ticker.Stop()

	playing := -1
	stop := func() {
		if playing > 0 {
			a.sess.PostEvent(ctx, synth.NoteOff(playing))
		}
		playing = -1
	}

	for i := 0; ; i = (i + 1) % len(a.notes) {
		stop()
		if n := a.notes[i]; n > 0 {
			if !a.sess.PostEvent(ctx, synth.NoteOn(n)) {
				return
			}
			playing = n
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
