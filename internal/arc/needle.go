package arc

import "math"

// Range is the value domain of a gauge.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

var Percent = Range{Min: 0, Max: 100}

func (r Range) Degenerate() bool { return r.Min == r.Max }

// Clamp clamps v to [Min,Max]. NaN becomes Min.
func (r Range) Clamp(v float64) float64 {
	lo, hi := r.Min, r.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case math.IsNaN(v):
		return r.Min
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Fraction is the clamped position of v within the range, in [0,1].
// A degenerate range yields 0.
func (r Range) Fraction(v float64) float64 {
	if r.Degenerate() {
		return 0
	}
	return Clamp01((r.Clamp(v) - r.Min) / (r.Max - r.Min))
}

// NeedleAngle returns the clockwise CSS rotation (0°=up) of a needle
// pointing at value. The result is not normalized: 450 means 90.
func NeedleAngle(value float64, r Range, span Span) float64 {
	// Rotation is in circle-stroke coordinates (0°=3 o'clock); the trailing
	// +90 moves it into the needle's 12 o'clock basis
	return Rotation(span) + r.Fraction(value)*float64(span) + 90
}
