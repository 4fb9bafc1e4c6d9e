package engine

import (
	"math/cmplx"
	"sync"

	"github.com/maddyblue/go-dsp/fft"
)

// Scope keeps the most recent output frames for drawing.
type Scope struct {
	lk       sync.Mutex
	buf      [][2]float64
	position int
}

func NewScope(size int) *Scope {
	return &Scope{
		buf: make([][2]float64, size),
	}
}

func (r *Scope) write(samples [][2]float64) {
	r.lk.Lock()
	defer r.lk.Unlock()

	for i := range samples {
		ix := r.position % len(r.buf)
		r.buf[ix] = samples[i]
		r.position++
	}
}

// Snapshot copies up to len(buf) frames, oldest first, and returns how many
// were copied.
func (r *Scope) Snapshot(buf [][2]float64) int {
	r.lk.Lock()
	defer r.lk.Unlock()

	lim := min(len(buf), len(r.buf))
	for i := 0; i < lim; i++ {
		ix := (r.position + i) % len(r.buf)
		buf[i] = r.buf[ix]
	}

	return lim
}

// Left returns the left channel of the whole buffer, oldest first.
func (r *Scope) Left() []float64 {
	frames := make([][2]float64, len(r.buf))
	n := r.Snapshot(frames)

	out := make([]float64, n)
	for i := range out {
		out[i] = frames[i][0]
	}
	return out
}

// Spectrum returns the magnitude spectrum of data, bins 0 through N/2,
// scaled by 1/N.
func Spectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	res := fft.FFTReal(data)

	mags := make([]float64, len(res)/2+1)
	for i, c := range res[:len(mags)] {
		mags[i] = cmplx.Abs(c) / float64(len(data))
	}
	return mags
}
