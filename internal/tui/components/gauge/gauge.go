package gauge

import (
	"fmt"
	"image/color"
	"math"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

const (
	// gauge dimensions in braille dots (2 dots per char width, 4 dots per char height)
	// large enough to have hollow center for the value text
	gaugeDotsWidth  = 52 // 26 chars wide
	gaugeDotsHeight = 52 // 13 chars tall

	noValue = "--"
)

// Gauge is a terminal rendition of a single-value arc gauge.
type Gauge struct {
	Value       *float64 // nil = no data
	Range       arc.Range
	Span        arc.Span
	Label       string
	Color       color.Color // arc fill color
	BgColor     color.Color // track color (unfilled portion)
	TextColor   color.Color
	NeedleColor color.Color
	ShowNeedle  bool
	Format      func(float64) string
	Engine      arc.Engine
}

type Option func(*Gauge)

func WithBgColor(c color.Color) Option {
	return func(g *Gauge) {
		g.BgColor = c
	}
}

func WithTextColor(c color.Color) Option {
	return func(g *Gauge) {
		g.TextColor = c
	}
}

func WithSpan(s arc.Span) Option {
	return func(g *Gauge) {
		g.Span = s
	}
}

func WithNeedle(c color.Color) Option {
	return func(g *Gauge) {
		g.ShowNeedle = true
		g.NeedleColor = c
	}
}

func WithFormat(f func(float64) string) Option {
	return func(g *Gauge) {
		g.Format = f
	}
}

func WithEngine(e arc.Engine) Option {
	return func(g *Gauge) {
		g.Engine = e
	}
}

func New(value *float64, r arc.Range, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Value:       value,
		Range:       r,
		Span:        arc.DefaultSpan,
		Label:       label,
		Color:       c,
		BgColor:     theme.ColorBgLight,
		TextColor:   theme.ColorWhite,
		NeedleColor: theme.ColorWhite,
		Engine:      arc.Default,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Fraction is the filled share of the track; 0 when there is no value.
func (g Gauge) Fraction() float64 {
	if g.Value == nil {
		return 0
	}
	return g.Range.Fraction(*g.Value)
}

// Text is the value shown in the middle of the arc.
func (g Gauge) Text() string {
	if g.Value == nil {
		return noValue
	}
	if g.Format != nil {
		return g.Format(*g.Value)
	}
	return fmt.Sprintf("%.1f", *g.Value)
}

func (g Gauge) Render() string {
	var (
		engine  = engineOr(g.Engine)
		canvas  = drawille.NewCanvas()
		centerX = float64(gaugeDotsWidth) / 2
		centerY = float64(gaugeDotsHeight) / 2
		radius  = float64(gaugeDotsWidth)/2 - 1
	)

	drawDescriptor(&canvas, centerX, centerY, radius, engine.Dash(radius, g.Span, 1))
	layers := []layer{{
		dots:  canvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight),
		style: lipgloss.NewStyle().Foreground(g.BgColor),
	}}

	canvas.Clear()
	if fraction := g.Fraction(); fraction > 0 {
		drawDescriptor(&canvas, centerX, centerY, radius, engine.Dash(radius, g.Span, fraction))
	}
	layers = append(layers, layer{
		dots:  canvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight),
		style: lipgloss.NewStyle().Foreground(g.Color),
	})

	if g.ShowNeedle && g.Value != nil {
		canvas.Clear()
		drawNeedle(&canvas, engine, centerX, centerY, radius-arcThickness-1, engine.NeedleAngle(*g.Value, g.Range, g.Span))
		layers = append(layers, layer{
			dots:  canvasString(&canvas, gaugeDotsWidth, gaugeDotsHeight),
			style: lipgloss.NewStyle().Foreground(g.NeedleColor),
		})
	}

	return withCenterText(overlayLayers(layers), g.Text(), g.Label, g.TextColor)
}

// drawNeedle draws a line from the hub to the point at angle, a clockwise
// rotation from 12 o'clock.
func drawNeedle(canvas *drawille.Canvas, engine arc.Engine, centerX, centerY, length, angle float64) {
	x, y := engine.PolarToCartesian(centerX, centerY, length, angle)
	drawLine(canvas, int(centerX), int(centerY), int(math.Round(x)), int(math.Round(y)))
}

// withCenterText places value in the hollow of the arc and label below it.
func withCenterText(arcStr, value, label string, textColor color.Color) string {
	var (
		arcHeight = lipgloss.Height(arcStr)
		arcWidth  = lipgloss.Width(arcStr)
	)

	valueStyle := lipgloss.NewStyle().
		Foreground(textColor).
		Bold(true)

	centeredValue := lipgloss.Place(
		arcWidth,
		arcHeight,
		lipgloss.Center,
		lipgloss.Center,
		valueStyle.Render(value),
	)

	combined := overlayWithBackground(arcStr, centeredValue)
	if label == "" {
		return combined
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(textColor).
		Width(arcWidth).
		Align(lipgloss.Center)

	return lipgloss.JoinVertical(lipgloss.Center, combined, labelStyle.Render(label))
}

func engineOr(e arc.Engine) arc.Engine {
	if e == nil {
		return arc.Default
	}
	return e
}
