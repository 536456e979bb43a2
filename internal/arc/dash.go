package arc

import (
	"math"
	"strconv"
)

// Descriptor is everything a renderer needs to draw one arc as a dashed
// circle stroke: dash pattern "Visible Circumference", a dash offset, and
// a rotation (degrees, around the circle center) that places the start of
// the stroke.
type Descriptor struct {
	Circumference float64 `json:"circumference"`
	Visible       float64 `json:"visible"`
	Offset        float64 `json:"offset"`
	Rotation      float64 `json:"rotation"`
}

// DashArray renders the stroke-dasharray value.
func (d Descriptor) DashArray() string {
	return formatFloat(d.Visible) + " " + formatFloat(d.Circumference)
}

// DashOffset renders the stroke-dashoffset value.
func (d Descriptor) DashOffset() string {
	return formatFloat(d.Offset)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func Circumference(radius float64) float64 {
	return 2 * math.Pi * radius
}

// ArcLength is the length of the track along the circle for the given span.
func ArcLength(radius float64, span Span) float64 {
	return float64(span) / 360 * Circumference(radius)
}

// Rotation is the angle that rotates a circle stroke (which starts drawing
// at 3 o'clock) so that the track is symmetric around the bottom of the
// circle and its gap is centered at 6 o'clock.
func Rotation(span Span) float64 {
	return 90 + (360-float64(span))/2
}

// Clamp01 clamps f to [0,1]. NaN becomes 0.
func Clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Dash computes the descriptor of an arc filled to fraction of its span.
// The dash is always arcLength long so the track never exceeds the span;
// the offset hides the unfilled part, sweeping the fill out from the start.
func Dash(radius float64, span Span, fraction float64) Descriptor {
	var (
		circumference = Circumference(radius)
		arcLength     = ArcLength(radius, span)
		filled        = arcLength * Clamp01(fraction)
	)
	return Descriptor{
		Circumference: circumference,
		Visible:       arcLength,
		Offset:        arcLength - filled,
		Rotation:      Rotation(span),
	}
}

// Sweep converts a descriptor back into the start angle and sweep of its
// visible stroke, in circle-stroke degrees (0°=3 o'clock, clockwise).
func Sweep(d Descriptor) (start, sweep float64) {
	if d.Circumference == 0 {
		return d.Rotation, 0
	}
	// a positive offset pulls the dash back before the path start; that part
	// lands in the trailing gap, so only Visible-Offset remains on screen
	visible := d.Visible
	shift := -d.Offset
	if d.Offset > 0 {
		visible = max(d.Visible-d.Offset, 0)
		shift = 0
	}
	start = d.Rotation + shift/d.Circumference*360
	sweep = visible / d.Circumference * 360
	return start, sweep
}
