// Package arc computes the geometry of circular arc gauges: stroke-dash
// parameters for partial circles, start rotations, and needle angles.
//
// Every function is pure. Out-of-range input is clamped, never rejected.
package arc

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is the angular width of a gauge track in degrees.
type Span float64

const (
	Span180 Span = 180
	Span240 Span = 240
	Span270 Span = 270
)

const DefaultSpan = Span180

var spans = []Span{Span180, Span240, Span270}

// Spans returns the supported spans in ascending order.
func Spans() []Span {
	out := make([]Span, len(spans))
	copy(out, spans)
	return out
}

// Valid reports whether s is one of the supported spans.
func (s Span) Valid() bool {
	for _, v := range spans {
		if s == v {
			return true
		}
	}
	return false
}

func (s Span) Degrees() float64 { return float64(s) }

func (s Span) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

// Next returns the supported span after s, wrapping around.
// Unsupported spans map to the first one.
func (s Span) Next() Span {
	for i, v := range spans {
		if s == v {
			return spans[(i+1)%len(spans)]
		}
	}
	return spans[0]
}

// ParseSpan parses "180", "240" or "270" (an optional trailing "deg" is accepted).
func ParseSpan(s string) (Span, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "deg")
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid span %q: %w", s, err)
	}
	span := Span(f)
	if !span.Valid() {
		return 0, fmt.Errorf("unsupported span %q (valid: 180, 240, 270)", s)
	}
	return span, nil
}
