package gauge

import (
	"io"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/selection"
)

const dimmedOpacity = "0.3"

// SegmentGauge splits the track into one arc per datum, proportional to
// its share of the total, first datum at the start of the track.
type SegmentGauge struct {
	Data        []Datum
	Span        arc.Span
	Colors      []palette.Token // per datum; missing entries cycle the palette
	Active      string          // selected datum name, owned by the caller
	Label       string
	Size        float64
	StrokeWidth float64
	Engine      arc.Engine
}

// Segments returns the descriptors for the gauge's data at the given radius.
func (s SegmentGauge) Segments(radius float64) []arc.Descriptor {
	return s.engine().Segments(radius, s.span(), Fractions(s.Data))
}

func (s SegmentGauge) engine() arc.Engine {
	if s.Engine == nil {
		return arc.Default
	}
	return s.Engine
}

func (s SegmentGauge) span() arc.Span {
	if s.Span == 0 {
		return arc.DefaultSpan
	}
	return s.Span
}

func (s SegmentGauge) document() document {
	var (
		center, radius, stroke = layout(s.Size, s.StrokeWidth)
		size                   = center * 2
		track                  = s.engine().Dash(radius, s.span(), 1)
		segs                   = s.Segments(radius)
	)

	doc := newDocument(size, size)
	doc.Role = "img"
	doc.AriaLabel = s.Label
	doc.Title = s.Label

	arcs := group{Class: "arcs"}
	arcs.Circles = append(arcs.Circles,
		arcCircle("track", "", center, radius, stroke, palette.Resolve(palette.Track), track),
	)
	doc.Groups = append(doc.Groups, arcs)

	for i, d := range s.Data {
		c := arcCircle("segment", d.Name, center, radius, stroke, palette.Resolve(palette.Pick(s.Colors, i)), segs[i])
		if selection.Dimmed(s.Active, d.Name) {
			c.Opacity = dimmedOpacity
		}
		doc.Groups = append(doc.Groups, group{
			Class:    "segment",
			DataName: d.Name,
			Circles:  []circle{c},
		})
	}

	if s.Label != "" {
		doc.Groups = append(doc.Groups, group{
			Class: "labels",
			Texts: []text{{
				Class:            "label",
				X:                num(center),
				Y:                num(center),
				Fill:             palette.Resolve(palette.Needle),
				FontSize:         num(size / 10),
				FontWeight:       "bold",
				TextAnchor:       "middle",
				DominantBaseline: "central",
				Content:          s.Label,
			}},
		})
	}

	return doc
}

func (s SegmentGauge) Render(w io.Writer) error {
	return encode(w, s.document())
}

func (s SegmentGauge) SVG() (string, error) {
	return encodeString(s.document())
}
