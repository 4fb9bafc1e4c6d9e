package meter

// DefaultCoefficient is the per-frame smoothing step used by the level meters.
const DefaultCoefficient = 0.3

// Smoothed moves a value toward a target by a fixed fraction each Tick: one
// step of a first order exponential filter per display frame.
type Smoothed struct {
	current     float64
	target      float64
	coefficient float64
}

func NewSmoothed(current, target, coefficient float64) *Smoothed {
	return &Smoothed{
		current:     current,
		target:      target,
		coefficient: coefficient,
	}
}

func (s *Smoothed) Current() float64 {
	return s.current
}

func (s *Smoothed) Target() float64 {
	return s.target
}

func (s *Smoothed) SetTarget(v float64) {
	s.target = v
}

func (s *Smoothed) SetCurrentAndTarget(v float64) {
	s.current = v
	s.target = v
}

func (s *Smoothed) Tick() float64 {
	s.current += s.coefficient * (s.target - s.current)
	return s.current
}
