package palette

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type Token string

const (
	Blue    Token = "blue"
	Emerald Token = "emerald"
	Violet  Token = "violet"
	Amber   Token = "amber"
	Gray    Token = "gray"
	Cyan    Token = "cyan"
	Pink    Token = "pink"
	Lime    Token = "lime"
	Fuchsia Token = "fuchsia"

	Track  Token = "track"  // unfilled background arc
	Needle Token = "needle" // pointer and center hub
)

const Default = Blue

// chart colors in the order segments pick them
var chart = []Token{Blue, Emerald, Violet, Amber, Gray, Cyan, Pink, Lime, Fuchsia}

var hex = map[Token]string{
	Blue:    "#3b82f6",
	Emerald: "#10b981",
	Violet:  "#8b5cf6",
	Amber:   "#f59e0b",
	Gray:    "#6b7280",
	Cyan:    "#06b6d4",
	Pink:    "#ec4899",
	Lime:    "#84cc16",
	Fuchsia: "#d946ef",
	Track:   "#e5e7eb",
	Needle:  "#374151",
}

// Tokens returns the chart color tokens in cycle order.
func Tokens() []Token {
	out := make([]Token, len(chart))
	copy(out, chart)
	return out
}

func Hex(t Token) (string, bool) {
	h, ok := hex[t]
	return h, ok
}

// Valid reports whether t resolves to a color.
func Valid(t Token) bool {
	_, ok := hex[t]
	return ok
}

// Resolve returns the hex value of t, falling back to Default.
func Resolve(t Token) string {
	if h, ok := hex[t]; ok {
		return h
	}
	return hex[Default]
}

// Color resolves t for terminal rendering.
func Color(t Token) color.Color {
	return lipgloss.Color(Resolve(t))
}

// Cycle returns the i-th chart color, wrapping around.
func Cycle(i int) Token {
	if i < 0 {
		i = -i
	}
	return chart[i%len(chart)]
}

// Pick returns colors[i] when set, otherwise Cycle(i).
func Pick(colors []Token, i int) Token {
	if i >= 0 && i < len(colors) && colors[i] != "" {
		return colors[i]
	}
	return Cycle(i)
}
