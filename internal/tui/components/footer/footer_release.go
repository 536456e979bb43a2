//go:build release

package footer

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/tui/theme"
	"github.com/garrettladley/arcgauge/internal/version"
)

var versionStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

func (f Footer) leftContent() string {
	return versionStyle.Render("arcgauge " + version.Short(version.Get()))
}
