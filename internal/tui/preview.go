package tui

import (
	"fmt"
	"slices"

	"github.com/garrettladley/arcgauge/internal/document"
	"github.com/garrettladley/arcgauge/internal/gauge"
	"github.com/garrettladley/arcgauge/internal/palette"
	tuigauge "github.com/garrettladley/arcgauge/internal/tui/components/gauge"
	"github.com/garrettladley/arcgauge/internal/tui/components/legend"
	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

// renderSpec draws one gauge document entry for the terminal.
func renderSpec(spec document.Spec) (string, error) {
	switch spec.ResolvedKind() {
	case document.KindSingle:
		return singleGauge(spec).Render(), nil
	case document.KindSegments:
		data, err := spec.Datums()
		if err != nil {
			return "", err
		}
		fractions := gauge.Fractions(data)
		items := make([]tuigauge.Segment, len(data))
		for i, d := range data {
			items[i] = tuigauge.Segment{
				Name:     d.Name,
				Fraction: fractions[i],
				Color:    theme.Token(palette.Pick(spec.Colors, i)),
			}
		}
		return tuigauge.Segments{
			Items:  items,
			Active: spec.Active,
			Span:   spec.ResolvedSpan(),
			Label:  spec.Label,
		}.Render(), nil
	case document.KindLegend:
		data, err := spec.Datums()
		if err != nil {
			return "", err
		}
		items := make([]legend.Item, len(data))
		for i, d := range data {
			items[i] = legend.Item{
				Name:  d.Name,
				Value: d.Value,
				Color: theme.Token(palette.Pick(spec.Colors, i)),
			}
		}
		return legend.Legend{
			Items:      items,
			Active:     spec.Active,
			ShowValues: spec.ShowValues,
		}.Render(), nil
	default:
		return "", fmt.Errorf("unknown kind %q", spec.Kind)
	}
}

func singleGauge(spec document.Spec) tuigauge.Gauge {
	core := spec.Gauge()
	opts := []tuigauge.Option{
		tuigauge.WithSpan(spec.ResolvedSpan()),
		tuigauge.WithBgColor(theme.Token(palette.Track)),
		tuigauge.WithFormat(gauge.DefaultFormat(spec.Range())),
	}
	if spec.Needle {
		opts = append(opts, tuigauge.WithNeedle(theme.Token(palette.Needle)))
	}
	return tuigauge.New(spec.Value, spec.Range(), spec.Label, theme.Token(core.FillColor()), opts...)
}

// names lists the selectable names of a segments or legend spec.
func names(spec document.Spec) []string {
	switch spec.ResolvedKind() {
	case document.KindSegments, document.KindLegend:
		data, err := spec.Datums()
		if err != nil {
			return nil
		}
		return gauge.Names(data)
	default:
		return nil
	}
}

// linked reports whether two specs show the same set of names, so a
// selection on one is mirrored on the other.
func linked(a, b document.Spec) bool {
	an, bn := names(a), names(b)
	return len(an) > 0 && slices.Equal(an, bn)
}

func title(spec document.Spec, i int) string {
	switch {
	case spec.Name != "":
		return spec.Name
	case spec.Label != "":
		return spec.Label
	default:
		return fmt.Sprintf("gauge %d", i+1)
	}
}
