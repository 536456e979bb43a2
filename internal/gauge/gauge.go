package gauge

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/palette"
)

const (
	DefaultSize        = 120.0
	DefaultStrokeWidth = 10.0
	DefaultID          = "arcgauge"

	noValue = "--"
)

// Formatter renders a gauge value as text.
type Formatter func(float64) string

// Threshold switches the fill color once the value reaches Value.
type Threshold struct {
	Value float64       `json:"value" toml:"value"`
	Color palette.Token `json:"color" toml:"color"`
}

// Gauge is a single-value arc gauge.
type Gauge struct {
	Value       *float64 // nil = no data
	Range       arc.Range
	Span        arc.Span
	Color       palette.Token
	Thresholds  []Threshold
	Gradient    bool
	ShowNeedle  bool
	ShowValue   bool
	ShowRange   bool
	Format      Formatter
	Label       string
	Size        float64
	StrokeWidth float64
	Animation   time.Duration
	ID          string // prefix for element ids, unique per page

	engine arc.Engine
}

type Option func(*Gauge)

func WithSpan(s arc.Span) Option { return func(g *Gauge) { g.Span = s } }

func WithThresholds(ts ...Threshold) Option {
	return func(g *Gauge) { g.Thresholds = append(g.Thresholds, ts...) }
}

func WithGradient() Option { return func(g *Gauge) { g.Gradient = true } }

func WithNeedle() Option { return func(g *Gauge) { g.ShowNeedle = true } }

func WithRangeLabels() Option { return func(g *Gauge) { g.ShowRange = true } }

func WithoutValue() Option { return func(g *Gauge) { g.ShowValue = false } }

func WithFormat(f Formatter) Option { return func(g *Gauge) { g.Format = f } }

func WithSize(size float64) Option { return func(g *Gauge) { g.Size = size } }

func WithStrokeWidth(w float64) Option { return func(g *Gauge) { g.StrokeWidth = w } }

func WithAnimation(d time.Duration) Option { return func(g *Gauge) { g.Animation = d } }

func WithID(id string) Option { return func(g *Gauge) { g.ID = id } }

func WithEngine(e arc.Engine) Option { return func(g *Gauge) { g.engine = e } }

func New(value *float64, r arc.Range, label string, c palette.Token, opts ...Option) Gauge {
	g := Gauge{
		Value:       value,
		Range:       r,
		Span:        arc.DefaultSpan,
		Color:       c,
		ShowValue:   true,
		Label:       label,
		Size:        DefaultSize,
		StrokeWidth: DefaultStrokeWidth,
		ID:          DefaultID,
		engine:      arc.Default,
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

// FillColor is the color of the highest threshold the value has reached,
// or the gauge color when none applies.
func (g Gauge) FillColor() palette.Token {
	c := g.Color
	if g.Value == nil || len(g.Thresholds) == 0 {
		return c
	}
	ts := slices.Clone(g.Thresholds)
	slices.SortStableFunc(ts, func(a, b Threshold) int {
		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})
	for _, t := range ts {
		if *g.Value >= t.Value {
			c = t.Color
		}
	}
	return c
}

// Text is the formatted value shown in the center of the gauge.
func (g Gauge) Text() string {
	if g.Value == nil {
		return noValue
	}
	if g.Format != nil {
		return g.Format(*g.Value)
	}
	return DefaultFormat(g.Range)(*g.Value)
}

// DefaultFormat shows whole percentages for 0-100 ranges and one decimal
// otherwise.
func DefaultFormat(r arc.Range) Formatter {
	if r == arc.Percent {
		return func(v float64) string { return fmt.Sprintf("%.0f%%", v) }
	}
	return func(v float64) string { return fmt.Sprintf("%.1f", v) }
}

func layout(size, stroke float64) (center, radius, strokeWidth float64) {
	if size <= 0 {
		size = DefaultSize
	}
	if stroke <= 0 || stroke >= size {
		stroke = min(DefaultStrokeWidth, size/4)
	}
	return size / 2, (size - stroke) / 2, stroke
}

func (g Gauge) document() document {
	var (
		engine                 = g.engine
		center, radius, stroke = layout(g.Size, g.StrokeWidth)
		size                   = center * 2
		fillColor              = palette.Resolve(g.FillColor())
	)
	if engine == nil {
		engine = arc.Default
	}

	doc := newDocument(size, size)
	doc.Role = "meter"
	doc.AriaLabel = g.Label
	if g.Label != "" {
		doc.Title = g.Label + ": " + g.Text()
	}

	track := engine.Dash(radius, g.Span, 1)
	fill := engine.Dash(radius, g.Span, g.Fraction())

	fillStroke := fillColor
	if g.Gradient {
		gradID := g.ID + "-gradient"
		doc.Defs = &defs{Gradients: []linearGradient{{
			ID: gradID, X1: "0%", Y1: "0%", X2: "100%", Y2: "0%",
			Stops: []stop{
				{Offset: "0%", StopColor: palette.Resolve(palette.Track)},
				{Offset: "100%", StopColor: fillColor},
			},
		}}}
		fillStroke = "url(#" + gradID + ")"
	}

	arcs := group{Class: "arcs"}
	arcs.Circles = append(arcs.Circles,
		arcCircle("track", "", center, radius, stroke, palette.Resolve(palette.Track), track),
	)
	fillCircle := arcCircle("fill", "", center, radius, stroke, fillStroke, fill)
	if g.Animation > 0 {
		fillCircle.Animate = &animate{
			AttributeName: "stroke-dashoffset",
			From:          num(fill.Visible),
			To:            fill.DashOffset(),
			Dur:           num(g.Animation.Seconds()) + "s",
			Fill:          "freeze",
		}
	}
	arcs.Circles = append(arcs.Circles, fillCircle)
	doc.Groups = append(doc.Groups, arcs)

	if g.ShowNeedle && g.Value != nil {
		doc.Groups = append(doc.Groups, g.needle(engine, center, radius, stroke))
	}

	labels := group{Class: "labels"}
	if g.ShowValue {
		labels.Texts = append(labels.Texts, text{
			Class:            "value",
			X:                num(center),
			Y:                num(center),
			Fill:             palette.Resolve(palette.Needle),
			FontSize:         num(size / 6),
			FontWeight:       "bold",
			TextAnchor:       "middle",
			DominantBaseline: "central",
			Content:          g.Text(),
		})
	}
	if g.Label != "" {
		labels.Texts = append(labels.Texts, text{
			Class:            "label",
			X:                num(center),
			Y:                num(center + size/6),
			Fill:             palette.Resolve(palette.Gray),
			FontSize:         num(size / 12),
			TextAnchor:       "middle",
			DominantBaseline: "central",
			Content:          g.Label,
		})
	}
	if g.ShowRange {
		format := g.Format
		if format == nil {
			format = DefaultFormat(g.Range)
		}
		inset := radius - stroke*1.5
		for _, v := range []struct {
			class string
			value float64
		}{{"min", g.Range.Min}, {"max", g.Range.Max}} {
			x, y := engine.PolarToCartesian(center, center, inset, engine.NeedleAngle(v.value, g.Range, g.Span))
			labels.Texts = append(labels.Texts, text{
				Class:            v.class,
				X:                num(x),
				Y:                num(y),
				Fill:             palette.Resolve(palette.Gray),
				FontSize:         num(size / 14),
				TextAnchor:       "middle",
				DominantBaseline: "central",
				Content:          format(v.value),
			})
		}
	}
	if len(labels.Texts) > 0 {
		doc.Groups = append(doc.Groups, labels)
	}

	return doc
}

// needle is a vertical line from the hub, rotated by the needle angle.
func (g Gauge) needle(engine arc.Engine, center, radius, stroke float64) group {
	angle := engine.NeedleAngle(*g.Value, g.Range, g.Span)
	color := palette.Resolve(palette.Needle)
	return group{
		Class: "needle",
		Lines: []line{{
			X1:            num(center),
			Y1:            num(center),
			X2:            num(center),
			Y2:            num(center - (radius - stroke)),
			Stroke:        color,
			StrokeWidth:   num(stroke / 3),
			StrokeLinecap: "round",
			Transform:     rotate(angle, center, center),
		}},
		Circles: []circle{{
			Cx:   num(center),
			Cy:   num(center),
			R:    num(stroke / 2),
			Fill: color,
		}},
	}
}

func arcCircle(class, name string, center, radius, stroke float64, color string, d arc.Descriptor) circle {
	return circle{
		Class:            class,
		DataName:         name,
		Cx:               num(center),
		Cy:               num(center),
		R:                num(radius),
		Fill:             "none",
		Stroke:           color,
		StrokeWidth:      num(stroke),
		StrokeDasharray:  d.DashArray(),
		StrokeDashoffset: d.DashOffset(),
		Transform:        rotate(d.Rotation, center, center),
	}
}

func (g Gauge) Render(w io.Writer) error {
	return encode(w, g.document())
}

func (g Gauge) SVG() (string, error) {
	return encodeString(g.document())
}

// Renderer is implemented by every SVG producer in this package.
type Renderer interface {
	Render(w io.Writer) error
	SVG() (string, error)
}

var (
	_ Renderer = Gauge{}
	_ Renderer = SegmentGauge{}
	_ Renderer = Legend{}
)
