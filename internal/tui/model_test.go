package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/arcgauge/internal/document"
)

func ptr(f float64) *float64 { return &f }

func key(s string) tea.KeyPressMsg {
	switch s {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		r := []rune(s)[0]
		return tea.KeyPressMsg{Code: r, Text: s}
	}
}

func data() []map[string]any {
	return []map[string]any{
		{"name": "alpha", "value": 3},
		{"name": "beta", "value": 1},
		{"name": "gamma", "value": 1},
	}
}

func testSpecs() []document.Spec {
	return []document.Spec{
		{Name: "cpu", Value: ptr(50)},
		{Name: "share", Kind: document.KindSegments, Data: data()},
		{Name: "key", Kind: document.KindLegend, Data: data()},
	}
}

// press sends keys in order and runs any returned command so selection
// messages reach the model.
func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(SelectionChangedMsg); ok {
			m.Update(msg)
		}
	}
}

func TestStepValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec document.Spec
		keys []string
		want *float64
	}{
		{"right", document.Spec{Value: ptr(50)}, []string{"right", "l"}, ptr(52)},
		{"left", document.Spec{Value: ptr(50)}, []string{"left", "h"}, ptr(48)},
		{"clamps at max", document.Spec{Value: ptr(99.5)}, []string{"right"}, ptr(100)},
		{"clamps at min", document.Spec{Value: ptr(0)}, []string{"left"}, ptr(0)},
		{"custom range step", document.Spec{Value: ptr(0), Min: ptr(0), Max: ptr(21)}, []string{"right"}, ptr(0.21)},
		{"no value starts at min", document.Spec{Min: ptr(10), Max: ptr(20)}, []string{"right"}, ptr(10)},
		{"degenerate range ignored", document.Spec{Value: ptr(5), Min: ptr(5), Max: ptr(5)}, []string{"right"}, ptr(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New([]document.Spec{tt.spec})
			press(t, &m, tt.keys...)
			if diff := cmp.Diff(tt.want, m.specs[0].Value); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStepIgnoresSegments(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	press(t, &m, "down", "right")
	if m.specs[1].Value != nil {
		t.Errorf("segments gauge got a value: %v", *m.specs[1].Value)
	}
}

func TestFocusWraps(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	press(t, &m, "up")
	if m.focus != 2 {
		t.Errorf("focus after up = %d, want 2", m.focus)
	}
	press(t, &m, "down", "j")
	if m.focus != 1 {
		t.Errorf("focus after down,j = %d, want 1", m.focus)
	}
}

func TestCycleSpan(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	var got []float64
	for range 3 {
		press(t, &m, "s")
		got = append(got, m.specs[0].Span)
	}
	if diff := cmp.Diff([]float64{240, 270, 180}, got); diff != "" {
		t.Errorf("span cycle mismatch (-want +got):\n%s", diff)
	}
}

func TestSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		keys       []string
		wantActive string
		wantStatus string
	}{
		{"tab selects first", []string{"down", "tab"}, "alpha", "share: alpha"},
		{"tab advances", []string{"down", "tab", "tab"}, "beta", "share: beta"},
		{"tab wraps", []string{"down", "tab", "tab", "tab", "tab"}, "alpha", "share: alpha"},
		{"shift+tab from none selects last", []string{"down", "shift+tab"}, "gamma", "share: gamma"},
		{"esc clears", []string{"down", "tab", "esc"}, "", ""},
		{"single gauge has nothing to select", []string{"tab"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New(testSpecs())
			press(t, &m, tt.keys...)

			if got := m.specs[1].Active; got != tt.wantActive {
				t.Errorf("segments active = %q, want %q", got, tt.wantActive)
			}
			// the legend shows the same names and follows the selection
			if got := m.specs[2].Active; got != tt.wantActive {
				t.Errorf("legend active = %q, want %q", got, tt.wantActive)
			}
			if m.status != tt.wantStatus {
				t.Errorf("status = %q, want %q", m.status, tt.wantStatus)
			}
		})
	}
}

func TestSelectionNotMirroredOnOtherData(t *testing.T) {
	t.Parallel()

	specs := testSpecs()
	specs[2].Data = []map[string]any{{"name": "other", "value": 1}}
	m := New(specs)
	press(t, &m, "down", "tab")

	if got := m.specs[2].Active; got != "" {
		t.Errorf("unrelated legend active = %q, want empty", got)
	}
}

func TestSelectionCommand(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	m.focus = 2
	_, cmd := m.Update(key("tab"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	want := SelectionChangedMsg{Gauge: "key", Active: "alpha"}
	if diff := cmp.Diff(want, cmd()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m := New(testSpecs())
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	press(t, &m, "down", "tab")

	plain := ansi.Strip(m.gaugesView())
	for _, want := range []string{"CPU", "SHARE", "KEY", "50%", "alpha", "share: alpha"} {
		if !strings.Contains(plain, want) {
			t.Errorf("view missing %q:\n%s", want, plain)
		}
	}
}

func TestViewBadData(t *testing.T) {
	t.Parallel()

	m := New([]document.Spec{{Name: "broken", Kind: document.KindSegments}})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if plain := ansi.Strip(m.gaugesView()); !strings.Contains(plain, "BROKEN") {
		t.Errorf("view should still show the panel:\n%s", plain)
	}
}
