package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

// Binding is one key hint shown in the footer.
type Binding struct {
	Key  string
	Help string
}

var (
	keyStyle  = lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true)
	helpStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)
)

type Footer struct {
	bindings []Binding
	width    int
	padding  int
}

func New(width int, bindings ...Binding) Footer {
	return Footer{
		bindings: bindings,
		width:    width,
		padding:  2,
	}
}

func (f Footer) help() string {
	parts := make([]string, len(f.bindings))
	for i, b := range f.bindings {
		parts[i] = keyStyle.Render(b.Key) + " " + helpStyle.Render(b.Help)
	}
	return strings.Join(parts, helpStyle.Render(" • "))
}

func (f Footer) Render() string {
	var (
		leftContent  = f.leftContent()
		rightContent = f.help()
		leftWidth    = lipgloss.Width(leftContent)
		rightWidth   = lipgloss.Width(rightContent)
		spacerWidth  = max(f.width-leftWidth-rightWidth-(f.padding*2), 1)
	)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + rightContent)
}
