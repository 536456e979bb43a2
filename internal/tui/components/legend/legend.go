// Package legend renders the key of a segment gauge, one swatch per item,
// with the active item highlighted.
package legend

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/selection"
	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

const (
	swatch       = "●"
	activeMarker = "›"
)

type Item struct {
	Name  string
	Value float64
	Color color.Color
}

type Legend struct {
	Items      []Item
	Active     string
	ShowValues bool
	Format     func(float64) string
	TextColor  color.Color
	Width      int
}

func (l Legend) format(v float64) string {
	if l.Format != nil {
		return l.Format(v)
	}
	return fmt.Sprintf("%g", v)
}

func (l Legend) Render() string {
	textColor := l.TextColor
	if textColor == nil {
		textColor = theme.ColorWhite
	}

	nameWidth := 0
	for _, item := range l.Items {
		nameWidth = max(nameWidth, lipgloss.Width(item.Name))
	}

	rows := make([]string, len(l.Items))
	for i, item := range l.Items {
		var (
			dimmed = selection.Dimmed(l.Active, item.Name)
			active = selection.IsActive(l.Active, item.Name)
			sw     = lipgloss.NewStyle().Foreground(item.Color).Faint(dimmed)
			text   = lipgloss.NewStyle().Foreground(textColor).Faint(dimmed).Bold(active)
			marker = " "
		)
		if active {
			marker = activeMarker
		}

		var row strings.Builder
		row.WriteString(marker)
		row.WriteString(" ")
		row.WriteString(sw.Render(swatch))
		row.WriteString(" ")
		row.WriteString(text.Render(item.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(item.Name))))
		if l.ShowValues {
			row.WriteString("  ")
			row.WriteString(text.Render(l.format(item.Value)))
		}
		rows[i] = row.String()
	}

	out := strings.Join(rows, "\n")
	if l.Width > 0 {
		out = lipgloss.NewStyle().Width(l.Width).Render(out)
	}
	return out
}
