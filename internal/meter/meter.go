package meter

import "math"

// DBMin stands in for silence.
const DBMin = -100.0

const DBMax = 0.0

func GainToDecibels(gain float64) float64 {
	if gain <= 0 || math.IsNaN(gain) {
		return DBMin
	}
	return math.Max(DBMin, 20*math.Log10(gain))
}

func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func MapTo01Linear(v, min, max float64) float64 {
	return (v - min) / (max - min)
}

// Meter is the display state of one channel's level meter. Peaks register
// immediately; decays follow the smoother.
type Meter struct {
	Source string

	db    *Smoothed
	floor float64
	ceil  float64
}

func New(source string, coefficient float64) *Meter {
	return &Meter{
		Source: source,
		db:     NewSmoothed(DBMin, DBMin, coefficient),
		floor:  DBMin,
		ceil:   DBMax,
	}
}

// Observe feeds one block envelope from the renderer.
func (m *Meter) Observe(min, max float64) {
	peak := math.Max(math.Abs(min), math.Abs(max))
	db := Clamp(GainToDecibels(peak), m.floor, m.ceil)

	if m.db.Current() < db {
		m.db.SetCurrentAndTarget(db)
	} else {
		m.db.SetTarget(db)
	}
}

// Tick advances the release by one display frame.
func (m *Meter) Tick() {
	m.db.Tick()
}

func (m *Meter) Decibels() float64 {
	return m.db.Current()
}

func (m *Meter) Level() float64 {
	return MapTo01Linear(Clamp(m.db.Current(), m.floor, m.ceil), m.floor, m.ceil)
}

// Height is the filled bar height for a meter px pixels tall.
func (m *Meter) Height(px int) int {
	return int(math.Round(float64(px) * m.Level()))
}
