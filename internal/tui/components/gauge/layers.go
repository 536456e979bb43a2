package gauge

import (
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
)

const (
	emptyBraille rune = '⠀'
	ansiEscape   rune = '\x1b'
)

// layer is one braille drawing and the style its dots are painted with.
type layer struct {
	dots  string
	style lipgloss.Style
}

// overlayLayers ORs the braille dots of every layer together cell by cell.
// Each cell takes the style of the topmost (last) layer with dots in it.
func overlayLayers(layers []layer) string {
	if len(layers) == 0 {
		return ""
	}

	grids := make([][][]rune, len(layers))
	for i, l := range layers {
		lines := strings.Split(l.dots, "\n")
		grids[i] = make([][]rune, len(lines))
		for j, line := range lines {
			grids[i][j] = []rune(line)
		}
	}

	base := grids[0]
	result := make([]string, len(base))
	for row := range base {
		var b strings.Builder
		for col := range base[row] {
			var (
				combined rune
				top      = -1
			)
			for i := range grids {
				if row >= len(grids[i]) || col >= len(grids[i][row]) {
					continue
				}
				r := grids[i][row][col]
				if !isBraille(r) || r == emptyBraille {
					continue
				}
				combined |= r - emptyBraille
				top = i
			}
			if top == -1 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(layers[top].style.Render(string(emptyBraille + combined)))
		}
		result[row] = b.String()
	}
	return strings.Join(result, "\n")
}

func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

// overlayWithBackground overlays foreground on background, keeping the
// background on either side of each foreground line's visible content.
func overlayWithBackground(background, foreground string) string {
	var (
		bgLines  = strings.Split(background, "\n")
		fgLines  = strings.Split(foreground, "\n")
		maxLines = max(len(bgLines), len(fgLines))
		result   = make([]string, maxLines)
	)

	for i := range maxLines {
		var bgLine, fgLine string
		if i < len(bgLines) {
			bgLine = bgLines[i]
		}
		if i < len(fgLines) {
			fgLine = fgLines[i]
		}

		fgStart, fgEnd := -1, -1
		for idx, r := range []rune(stripAnsi(fgLine)) {
			if r != ' ' {
				if fgStart == -1 {
					fgStart = idx
				}
				fgEnd = idx + 1
			}
		}
		if fgStart == -1 {
			result[i] = bgLine
			continue
		}

		bgWidth := len([]rune(stripAnsi(bgLine)))
		var b strings.Builder
		if fgStart > 0 {
			b.WriteString(extractStyledSegment(bgLine, 0, fgStart))
		}
		b.WriteString(extractStyledSegment(fgLine, fgStart, fgEnd))
		if fgEnd < bgWidth {
			b.WriteString(extractStyledSegment(bgLine, fgEnd, bgWidth))
		}
		result[i] = b.String()
	}

	return strings.Join(result, "\n")
}

// extractStyledSegment extracts the visible cells [start, end) of a styled
// string along with the escape sequences that precede each cell.
func extractStyledSegment(styledStr string, start, end int) string {
	var (
		result         strings.Builder
		visibleIdx     = 0
		inEscape       = false
		pendingEscapes strings.Builder
	)

	for _, r := range styledStr {
		if r == ansiEscape {
			inEscape = true
			pendingEscapes.WriteRune(r)
			continue
		}
		if inEscape {
			pendingEscapes.WriteRune(r)
			if unicode.IsLetter(r) {
				inEscape = false
			}
			continue
		}

		if visibleIdx >= start && visibleIdx < end {
			result.WriteString(pendingEscapes.String())
			result.WriteRune(r)
		}
		pendingEscapes.Reset()
		visibleIdx++
	}

	return result.String()
}

func stripAnsi(s string) string {
	var (
		result   strings.Builder
		inEscape = false
	)

	for _, r := range s {
		if r == ansiEscape {
			inEscape = true
			continue
		}
		if inEscape {
			if unicode.IsLetter(r) {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
