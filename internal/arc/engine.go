package arc

// Engine is the arc geometry used by renderers.
type Engine interface {
	PolarToCartesian(centerX, centerY, radius, angleDeg float64) (x, y float64)
	Dash(radius float64, span Span, fraction float64) Descriptor
	NeedleAngle(value float64, r Range, span Span) float64
	Segments(radius float64, span Span, fractions []float64) []Descriptor
}

var _ Engine = geometry{}

// Default is the engine backed by the package-level functions.
var Default Engine = geometry{}

type geometry struct{}

func (geometry) PolarToCartesian(centerX, centerY, radius, angleDeg float64) (x, y float64) {
	return PolarToCartesian(centerX, centerY, radius, angleDeg)
}

func (geometry) Dash(radius float64, span Span, fraction float64) Descriptor {
	return Dash(radius, span, fraction)
}

func (geometry) NeedleAngle(value float64, r Range, span Span) float64 {
	return NeedleAngle(value, r, span)
}

func (geometry) Segments(radius float64, span Span, fractions []float64) []Descriptor {
	return Segments(radius, span, fractions)
}
