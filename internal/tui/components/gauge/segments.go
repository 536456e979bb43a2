package gauge

import (
	"image/color"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/selection"
	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

// Segment is one slice of a segment gauge.
type Segment struct {
	Name     string
	Fraction float64
	Color    color.Color
}

// Segments draws one arc per item along a shared track. Items other than
// the active one are dimmed while a selection exists.
type Segments struct {
	Items     []Segment
	Active    string
	Span      arc.Span
	Label     string
	BgColor   color.Color
	TextColor color.Color
	Engine    arc.Engine
}

func (s Segments) fractions() []float64 {
	fs := make([]float64, len(s.Items))
	for i, item := range s.Items {
		fs[i] = item.Fraction
	}
	return fs
}

// Names returns the item names in draw order.
func (s Segments) Names() []string {
	names := make([]string, len(s.Items))
	for i, item := range s.Items {
		names[i] = item.Name
	}
	return names
}

func (s Segments) Render() string {
	var (
		engine  = engineOr(s.Engine)
		span    = s.Span
		canvas  = drawille.NewCanvas()
		centerX = float64(gaugeDotsWidth) / 2
		centerY = float64(gaugeDotsHeight) / 2
		radius  = float64(gaugeDotsWidth)/2 - 1
	)
	if span == 0 {
		span = arc.DefaultSpan
	}
	bg := s.BgColor
	if bg == nil {
		bg = theme.ColorBgLight
	}
	fg := s.TextColor
	if fg == nil {
		fg = theme.ColorWhite
	}

	drawDescriptor(&canvas, centerX, centerY, radius, engine.Dash(radius, span, 1))
	layers := []layer{{
		dots:  canvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight),
		style: lipgloss.NewStyle().Foreground(bg),
	}}

	for i, d := range engine.Segments(radius, span, s.fractions()) {
		canvas.Clear()
		drawDescriptor(&canvas, centerX, centerY, radius, d)
		style := lipgloss.NewStyle().Foreground(s.Items[i].Color)
		if selection.Dimmed(s.Active, s.Items[i].Name) {
			style = style.Faint(true)
		}
		layers = append(layers, layer{
			dots:  canvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight),
			style: style,
		})
	}

	center := noValue
	if s.Active != selection.None {
		center = s.Active
	}
	return withCenterText(overlayLayers(layers), center, s.Label, fg)
}
