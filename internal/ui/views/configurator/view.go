package configurator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusfence/internal/modules/session/dto"
	"focusfence/internal/ui/components"
	"focusfence/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Preview(minutes int) sessiondto.GrowthOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// StartMsg asks the app to start a session of Minutes.
type StartMsg struct{ Minutes int }

// ─── model ───────────────────────────────────────────────────────────────────

const step = 5

type Model struct {
	port   Port
	input  textinput.Model
	err    string
	styles theme.Styles
	width  int
	height int
}

func New(port Port, defaultMinutes int, st theme.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "minutes"
	ti.CharLimit = 4
	ti.Width = 6
	ti.SetValue(strconv.Itoa(defaultMinutes))
	ti.Focus()
	return Model{port: port, input: ti, styles: st}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) SetStyles(st theme.Styles) { m.styles = st }

// Minutes is the typed duration, or 0 when it does not parse.
func (m Model) Minutes() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return 0
	}
	return n
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			m.input.SetValue(strconv.Itoa(m.Minutes() + step))
			m.err = ""
			return m, nil
		case "down":
			if n := m.Minutes() - step; n >= 1 {
				m.input.SetValue(strconv.Itoa(n))
			}
			m.err = ""
			return m, nil
		case "enter":
			minutes := m.Minutes()
			if minutes < 1 {
				m.err = "Please enter a valid duration of at least 1 minute."
				return m, nil
			}
			m.err = ""
			return m, func() tea.Msg { return StartMsg{Minutes: minutes} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	minutes := m.Minutes()
	preview := components.Tree(m.port.Preview(max(minutes, 0)), m.styles)

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Plant a focus tree") + "\n\n")
	sb.WriteString(preview + "\n\n")
	sb.WriteString(fmt.Sprintf("Duration: %s minutes\n", m.input.View()))
	if m.err != "" {
		sb.WriteString(m.styles.Hot.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("↑/↓: ±5 min  enter: start  :: palette"))

	pane := m.styles.Pane.Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pane)
}
