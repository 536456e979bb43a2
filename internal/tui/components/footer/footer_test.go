package footer

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestFooterRender(t *testing.T) {
	t.Parallel()

	f := New(80,
		Binding{Key: "q", Help: "quit"},
		Binding{Key: "tab", Help: "select"},
	)
	out := f.Render()

	for _, want := range []string{"q", "quit", "tab", "select"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if got := lipgloss.Width(out); got != 80 {
		t.Errorf("width = %d, want 80", got)
	}
}

func TestFooterNarrow(t *testing.T) {
	t.Parallel()

	out := New(0, Binding{Key: "q", Help: "quit"}).Render()
	if !strings.Contains(out, "quit") {
		t.Errorf("Render() should keep the help when narrow:\n%s", out)
	}
}
