package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/palette"
)

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // screen background
	ColorBgLight = lipgloss.Color("#283339") // unfilled track
	ColorFocus   = lipgloss.Color("#00F19F") // focused gauge border
	ColorError   = lipgloss.Color("#FF0026")
)

// Token maps a palette token to its terminal color. The light SVG track
// color disappears on dark terminals, so the track uses ColorBgLight.
func Token(t palette.Token) color.Color {
	if t == palette.Track {
		return ColorBgLight
	}
	return palette.Color(t)
}
