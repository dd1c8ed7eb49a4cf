package onboarding

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "focusfence/internal/modules/profile/dto"
	"focusfence/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Onboard(ctx context.Context, name, email string) (profiledto.ProfileOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OnboardedMsg struct {
	Profile profiledto.ProfileOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldName = iota
	fieldEmail
	fieldCount
)

type Model struct {
	port       Port
	fields     [fieldCount]textinput.Model
	focus      int
	submitting bool
	err        string
	styles     theme.Styles
	width      int
	height     int
}

func New(port Port, st theme.Styles) Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 64
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128

	return Model{port: port, fields: [fieldCount]textinput.Model{name, email}, styles: st}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) SetStyles(st theme.Styles) { m.styles = st }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case OnboardedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus == fieldName {
				return m, m.setFocus(fieldEmail)
			}
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			m.err = ""
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = i
	return m.fields[m.focus].Focus()
}

func (m Model) submitCmd() tea.Cmd {
	name := m.fields[fieldName].Value()
	email := m.fields[fieldEmail].Value()
	return func() tea.Msg {
		out, err := m.port.Onboard(context.Background(), name, email)
		return OnboardedMsg{Profile: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Welcome to FocusFence") + "\n\n")
	sb.WriteString(m.styles.Muted.Render("Grow a tree by staying focused. Leave early and it withers.") + "\n\n")
	sb.WriteString("Name\n" + m.fields[fieldName].View() + "\n\n")
	sb.WriteString("Email\n" + m.fields[fieldEmail].View() + "\n")
	if m.err != "" {
		sb.WriteString("\n" + m.styles.Hot.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("tab: next field  enter: start growing"))

	pane := m.styles.PaneActive.Width(min(m.width-4, 60)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pane)
}
