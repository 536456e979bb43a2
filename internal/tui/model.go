package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/arcgauge/internal/document"
	"github.com/garrettladley/arcgauge/internal/selection"
	"github.com/garrettladley/arcgauge/internal/tui/components/footer"
	"github.com/garrettladley/arcgauge/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

// valueSteps is how many key presses move a value across its whole range.
const valueSteps = 100

var bindings = []footer.Binding{
	{Key: "←/→", Help: "value"},
	{Key: "↑/↓", Help: "focus"},
	{Key: "s", Help: "span"},
	{Key: "tab", Help: "select"},
	{Key: "esc", Help: "clear"},
	{Key: "q", Help: "quit"},
}

// Model previews the gauges of a document in the terminal. It owns every
// selection; the components it renders are stateless.
type Model struct {
	ready          bool
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	specs          []document.Spec
	focus          int
	status         string
}

func New(specs []document.Spec) Model {
	return Model{
		theme: theme.New(),
		specs: specs,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.step(-1)
		case "right", "l":
			m.step(1)
		case "up", "k":
			m.moveFocus(-1)
		case "down", "j":
			m.moveFocus(1)
		case "s":
			m.cycleSpan()
		case "tab":
			return m, m.selectWith(selection.Next)
		case "shift+tab":
			return m, m.selectWith(selection.Prev)
		case "esc":
			return m, m.selectWith(func(string, []string) string { return selection.None })
		}

	case SelectionChangedMsg:
		if msg.Active == selection.None {
			m.status = ""
		} else {
			m.status = msg.Gauge + ": " + msg.Active
		}
	}

	return m, nil
}

func (m *Model) focused() (*document.Spec, bool) {
	if m.focus < 0 || m.focus >= len(m.specs) {
		return nil, false
	}
	return &m.specs[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	if len(m.specs) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.specs)) % len(m.specs)
}

// step moves the focused single gauge's value by one hundredth of its
// range, staying inside the range.
func (m *Model) step(dir float64) {
	spec, ok := m.focused()
	if !ok || spec.ResolvedKind() != document.KindSingle {
		return
	}
	r := spec.Range()
	if r.Degenerate() {
		return
	}
	v := r.Min
	if spec.Value != nil {
		v = r.Clamp(*spec.Value + dir*(r.Max-r.Min)/valueSteps)
	}
	spec.Value = &v
}

func (m *Model) cycleSpan() {
	spec, ok := m.focused()
	if !ok {
		return
	}
	spec.Span = spec.ResolvedSpan().Next().Degrees()
}

// selectWith updates the focused gauge's selection and mirrors it on every
// gauge that shows the same names.
func (m *Model) selectWith(pick func(active string, names []string) string) tea.Cmd {
	spec, ok := m.focused()
	if !ok {
		return nil
	}
	ns := names(*spec)
	if len(ns) == 0 {
		return nil
	}

	active := pick(spec.Active, ns)
	source := *spec
	for i := range m.specs {
		if i == m.focus || linked(source, m.specs[i]) {
			m.specs[i].Active = active
		}
	}

	name := title(source, m.focus)
	return func() tea.Msg {
		return SelectionChangedMsg{Gauge: name, Active: active}
	}
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	content := lipgloss.Place(
		m.viewportWidth,
		max(m.viewportHeight-2, 0),
		lipgloss.Center,
		lipgloss.Center,
		m.gaugesView(),
	)

	view.SetContent(lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		footer.New(m.viewportWidth, bindings...).Render(),
	))
	return view
}

// gaugesView lays the panels out left to right, wrapping to a new row when
// the viewport is full.
func (m *Model) gaugesView() string {
	if len(m.specs) == 0 {
		return m.theme.Muted().Render("no gauges")
	}

	var (
		rows     []string
		row      []string
		rowWidth int
	)
	for i, spec := range m.specs {
		panel := m.panel(spec, i)
		w := lipgloss.Width(panel)
		if len(row) > 0 && m.viewportWidth > 0 && rowWidth+w > m.viewportWidth {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, panel)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	if m.status != "" {
		rows = append(rows, m.theme.Muted().Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m *Model) panel(spec document.Spec, i int) string {
	body, err := renderSpec(spec)
	if err != nil {
		body = m.theme.Error().Render(err.Error())
	}

	heading := m.theme.Muted().Render(strings.ToUpper(title(spec, i)) + " · " + spec.ResolvedSpan().String() + "°")
	return m.theme.Panel(i == m.focus).Render(lipgloss.JoinVertical(lipgloss.Center, heading, body))
}
