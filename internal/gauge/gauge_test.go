package gauge

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/arcgauge/internal/arc"
	"github.com/garrettladley/arcgauge/internal/palette"
)

func ptr(v float64) *float64 { return &v }

func decode(t *testing.T, svg string) document {
	t.Helper()

	var doc document
	if err := xml.Unmarshal([]byte(svg), &doc); err != nil {
		t.Fatalf("failed to parse svg: %v\n%s", err, svg)
	}
	return doc
}

func findGroup(doc document, class string) (group, bool) {
	for _, g := range doc.Groups {
		if g.Class == class {
			return g, true
		}
	}
	return group{}, false
}

func findCircle(doc document, class string) (circle, bool) {
	for _, g := range doc.Groups {
		for _, c := range g.Circles {
			if c.Class == class {
				return c, true
			}
		}
	}
	return circle{}, false
}

func findText(doc document, class string) (text, bool) {
	for _, g := range doc.Groups {
		for _, tx := range g.Texts {
			if tx.Class == class {
				return tx, true
			}
		}
	}
	return text{}, false
}

func TestGaugeArcsFollowEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    *float64
		span     arc.Span
		fraction float64
	}{
		{"empty", ptr(0), arc.Span180, 0},
		{"half", ptr(50), arc.Span180, 0.5},
		{"full 270", ptr(100), arc.Span270, 1},
		{"over max clamps", ptr(180), arc.Span240, 1},
		{"no data", nil, arc.Span240, 0},
	}

	const radius = (DefaultSize - DefaultStrokeWidth) / 2

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := New(tt.value, arc.Percent, "CPU", palette.Blue, WithSpan(tt.span))
			svg, err := g.SVG()
			if err != nil {
				t.Fatalf("SVG() error: %v", err)
			}
			doc := decode(t, svg)

			track, ok := findCircle(doc, "track")
			if !ok {
				t.Fatal("missing track circle")
			}
			wantTrack := arc.Dash(radius, tt.span, 1)
			if track.StrokeDasharray != wantTrack.DashArray() || track.StrokeDashoffset != wantTrack.DashOffset() {
				t.Errorf("track dash = (%q, %q), want (%q, %q)",
					track.StrokeDasharray, track.StrokeDashoffset, wantTrack.DashArray(), wantTrack.DashOffset())
			}

			fill, ok := findCircle(doc, "fill")
			if !ok {
				t.Fatal("missing fill circle")
			}
			wantFill := arc.Dash(radius, tt.span, tt.fraction)
			if fill.StrokeDashoffset != wantFill.DashOffset() {
				t.Errorf("fill offset = %q, want %q", fill.StrokeDashoffset, wantFill.DashOffset())
			}
			if want := rotate(arc.Rotation(tt.span), 60, 60); fill.Transform != want {
				t.Errorf("fill transform = %q, want %q", fill.Transform, want)
			}
		})
	}
}

func TestGaugeNeedle(t *testing.T) {
	t.Parallel()

	g := New(ptr(50), arc.Percent, "", palette.Blue, WithNeedle())
	svg, err := g.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	doc := decode(t, svg)

	needle, ok := findGroup(doc, "needle")
	if !ok {
		t.Fatal("missing needle group")
	}
	if len(needle.Lines) != 1 {
		t.Fatalf("needle has %d lines, want 1", len(needle.Lines))
	}
	if got, want := needle.Lines[0].Transform, "rotate(360 60 60)"; got != want {
		t.Errorf("needle transform = %q, want %q", got, want)
	}

	noData := New(nil, arc.Percent, "", palette.Blue, WithNeedle())
	svg, err = noData.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if _, ok := findGroup(decode(t, svg), "needle"); ok {
		t.Error("needle rendered without a value")
	}
}

func TestGaugeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		gauge Gauge
		want  string
	}{
		{"percent", New(ptr(42), arc.Percent, "", palette.Blue), "42%"},
		{"custom range", New(ptr(10.5), arc.Range{Min: 0, Max: 21}, "", palette.Blue), "10.5"},
		{"no data", New(nil, arc.Percent, "", palette.Blue), "--"},
		{
			"custom formatter",
			New(ptr(3), arc.Range{Max: 5}, "", palette.Blue, WithFormat(func(v float64) string { return "★" + num(v) })),
			"★3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.gauge.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			svg, err := tt.gauge.SVG()
			if err != nil {
				t.Fatalf("SVG() error: %v", err)
			}
			value, ok := findText(decode(t, svg), "value")
			if !ok {
				t.Fatal("missing value text")
			}
			if value.Content != tt.want {
				t.Errorf("value text = %q, want %q", value.Content, tt.want)
			}
		})
	}
}

func TestGaugeFillColor(t *testing.T) {
	t.Parallel()

	thresholds := []Threshold{
		{Value: 80, Color: palette.Pink},
		{Value: 50, Color: palette.Amber},
	}

	tests := []struct {
		name  string
		value *float64
		want  palette.Token
	}{
		{"below all thresholds", ptr(10), palette.Emerald},
		{"at first threshold", ptr(50), palette.Amber},
		{"between", ptr(79), palette.Amber},
		{"above last", ptr(95), palette.Pink},
		{"no data", nil, palette.Emerald},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New(tt.value, arc.Percent, "", palette.Emerald, WithThresholds(thresholds...))
			if got := g.FillColor(); got != tt.want {
				t.Errorf("FillColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGaugeGradient(t *testing.T) {
	t.Parallel()

	g := New(ptr(30), arc.Percent, "", palette.Violet, WithGradient(), WithID("cpu"))
	svg, err := g.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	doc := decode(t, svg)

	if doc.Defs == nil || len(doc.Defs.Gradients) != 1 {
		t.Fatal("expected one gradient definition")
	}
	if got, want := doc.Defs.Gradients[0].ID, "cpu-gradient"; got != want {
		t.Errorf("gradient id = %q, want %q", got, want)
	}
	fill, _ := findCircle(doc, "fill")
	if got, want := fill.Stroke, "url(#cpu-gradient)"; got != want {
		t.Errorf("fill stroke = %q, want %q", got, want)
	}
}

func TestGaugeRangeLabels(t *testing.T) {
	t.Parallel()

	g := New(ptr(30), arc.Percent, "", palette.Blue, WithRangeLabels(), WithSize(100), WithStrokeWidth(10))
	svg, err := g.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	doc := decode(t, svg)

	// radius 45, inset 45 - 15 = 30; min sits at 9 o'clock, max at 3 o'clock
	tests := []struct {
		class string
		x, y  string
		text  string
	}{
		{"min", "20", "50", "0%"},
		{"max", "80", "50", "100%"},
	}
	for _, tt := range tests {
		label, ok := findText(doc, tt.class)
		if !ok {
			t.Fatalf("missing %s label", tt.class)
		}
		if label.Content != tt.text {
			t.Errorf("%s label = %q, want %q", tt.class, label.Content, tt.text)
		}
		if !approxString(label.X, tt.x) || !approxString(label.Y, tt.y) {
			t.Errorf("%s label at (%s, %s), want (%s, %s)", tt.class, label.X, label.Y, tt.x, tt.y)
		}
	}
}

func approxString(got, want string) bool {
	g, err := strconv.ParseFloat(got, 64)
	if err != nil {
		return false
	}
	w, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return false
	}
	return math.Abs(g-w) < 1e-9
}

func TestGaugeAnimation(t *testing.T) {
	t.Parallel()

	g := New(ptr(25), arc.Percent, "", palette.Blue, WithAnimation(600*time.Millisecond))
	svg, err := g.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	fill, _ := findCircle(decode(t, svg), "fill")
	if fill.Animate == nil {
		t.Fatal("missing animate element")
	}
	want := animate{
		XMLName:       xml.Name{Space: svgNamespace, Local: "animate"},
		AttributeName: "stroke-dashoffset",
		From:          num(arc.ArcLength(55, arc.Span180)),
		To:            fill.StrokeDashoffset,
		Dur:           "0.6s",
		Fill:          "freeze",
	}
	if diff := cmp.Diff(want, *fill.Animate); diff != "" {
		t.Errorf("animate mismatch (-want +got):\n%s", diff)
	}
}

type countingEngine struct {
	arc.Engine
	dashCalls int
}

func (c *countingEngine) Dash(radius float64, span arc.Span, fraction float64) arc.Descriptor {
	c.dashCalls++
	return c.Engine.Dash(radius, span, fraction)
}

func TestGaugeUsesInjectedEngine(t *testing.T) {
	t.Parallel()

	engine := &countingEngine{Engine: arc.Default}
	g := New(ptr(1), arc.Percent, "", palette.Blue, WithEngine(engine))
	if _, err := g.SVG(); err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if engine.dashCalls != 2 {
		t.Errorf("Dash called %d times, want 2 (track and fill)", engine.dashCalls)
	}
}

func TestGaugeRenderIdempotent(t *testing.T) {
	t.Parallel()

	g := New(ptr(61.3), arc.Percent, "Disk", palette.Cyan, WithSpan(arc.Span270), WithNeedle(), WithGradient())
	a, err := g.SVG()
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	var b strings.Builder
	if err := g.Render(&b); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if a != b.String() {
		t.Error("SVG() and Render() produced different output")
	}
}
