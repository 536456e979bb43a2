package gauge

import (
	"io"

	"github.com/garrettladley/arcgauge/internal/palette"
	"github.com/garrettladley/arcgauge/internal/selection"
)

const (
	legendRowHeight  = 20.0
	legendMarkerSize = 10.0
	legendPadding    = 4.0
	legendWidth      = 160.0
)

// Legend lists the categories of a segment gauge with their colors. Colors
// and Active must match the gauge it accompanies.
type Legend struct {
	Data       []Datum
	Colors     []palette.Token
	Active     string
	ShowValues bool
	Format     Formatter
	Width      float64
}

func (l Legend) document() document {
	width := l.Width
	if width <= 0 {
		width = legendWidth
	}
	height := float64(len(l.Data))*legendRowHeight + 2*legendPadding

	doc := newDocument(width, height)
	doc.Role = "list"

	format := l.Format
	if format == nil {
		format = num
	}

	for i, d := range l.Data {
		y := legendPadding + float64(i)*legendRowHeight
		row := group{
			Class:    "legend-row",
			DataName: d.Name,
			Rects: []rect{{
				X:      num(legendPadding),
				Y:      num(y + (legendRowHeight-legendMarkerSize)/2),
				Width:  num(legendMarkerSize),
				Height: num(legendMarkerSize),
				Rx:     "2",
				Fill:   palette.Resolve(palette.Pick(l.Colors, i)),
			}},
		}
		label := text{
			X:                num(legendPadding + legendMarkerSize + 6),
			Y:                num(y + legendRowHeight/2),
			Fill:             palette.Resolve(palette.Needle),
			FontSize:         "12",
			DominantBaseline: "central",
			Content:          d.Name,
		}
		if selection.IsActive(l.Active, d.Name) {
			label.FontWeight = "bold"
		}
		if selection.Dimmed(l.Active, d.Name) {
			row.Opacity = dimmedOpacity
		}
		row.Texts = append(row.Texts, label)
		if l.ShowValues {
			row.Texts = append(row.Texts, text{
				Class:            "value",
				X:                num(width - legendPadding),
				Y:                num(y + legendRowHeight/2),
				Fill:             palette.Resolve(palette.Gray),
				FontSize:         "12",
				TextAnchor:       "end",
				DominantBaseline: "central",
				Content:          format(d.Value),
			})
		}
		doc.Groups = append(doc.Groups, row)
	}

	return doc
}

func (l Legend) Render(w io.Writer) error {
	return encode(w, l.document())
}

func (l Legend) SVG() (string, error) {
	return encodeString(l.document())
}
