package knob

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRange = errors.New("invalid range")

// Range maps between a control value in [Min, Max] and a knob position in
// [0, 1]. Skew above 1 gives the low end of the range more travel.
type Range struct {
	Min  float64
	Max  float64
	Skew float64
}

func NewRange(min, max, skew float64) (Range, error) {
	if !(min < max) {
		return Range{}, fmt.Errorf("%w: min %g must be below max %g", ErrInvalidRange, min, max)
	}
	if !(skew > 0) || math.IsInf(skew, 0) {
		return Range{}, fmt.Errorf("%w: skew %g must be positive", ErrInvalidRange, skew)
	}
	return Range{Min: min, Max: max, Skew: skew}, nil
}

func mustRange(min, max, skew float64) Range {
	r, err := NewRange(min, max, skew)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) ToNormalized(x float64) float64 {
	x = r.Clamp(x)
	t := (x - r.Min) / (r.Max - r.Min)
	if r.Skew != 1 {
		t = math.Pow(t, 1/r.Skew)
	}
	return clamp01(t)
}

func (r Range) FromNormalized(t float64) float64 {
	t = clamp01(t)
	if r.Skew != 1 {
		t = math.Pow(t, r.Skew)
	}
	return r.Clamp(r.Min + (r.Max-r.Min)*t)
}

// Clamp limits x to the range. NaN maps to Min.
func (r Range) Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x), x < r.Min:
		return r.Min
	case x > r.Max:
		return r.Max
	default:
		return x
	}
}

func clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
