package arc

// Segments computes one descriptor per fraction so that the arcs tile the
// track in input order, each starting where the previous one ends.
//
// Fractions are neither validated nor normalized: a sum below 1 leaves a
// gap at the far end of the track, a sum above 1 overlaps the start.
func Segments(radius float64, span Span, fractions []float64) []Descriptor {
	var (
		circumference = Circumference(radius)
		arcLength     = ArcLength(radius, span)
		rotation      = Rotation(span)
		consumed      float64
		out           = make([]Descriptor, len(fractions))
	)
	for i, f := range fractions {
		length := arcLength * f
		out[i] = Descriptor{
			Circumference: circumference,
			Visible:       length,
			// 0 - consumed keeps the first offset at +0 rather than -0
			Offset:   0 - consumed,
			Rotation: rotation,
		}
		consumed += length
	}
	return out
}

// Sum adds up fractions; callers use it to detect over- or under-filled
// segment sets.
func Sum(fractions []float64) float64 {
	var total float64
	for _, f := range fractions {
		total += f
	}
	return total
}
