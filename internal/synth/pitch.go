package synth

import (
	"fmt"
	"math"
)

func NoteToFreq(note int) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}

var noteNames = []string{
	"C",
	"C#",
	"D",
	"Eb",
	"E",
	"F",
	"F#",
	"G",
	"G#",
	"A",
	"Bb",
	"B",
}

// NoteName formats note in scientific pitch notation, 60 being C4.
func NoteName(note int) string {
	octave := note/12 - 1
	ix := note % 12
	if ix < 0 {
		ix += 12
		octave--
	}
	return fmt.Sprintf("%s%d", noteNames[ix], octave)
}
