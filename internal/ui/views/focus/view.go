package focus

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focusfence/internal/modules/session/dto"
	"focusfence/internal/ui/components"
	"focusfence/internal/ui/theme"
)

// Model renders whatever the session controller last reported. It holds no
// session state of its own.
type Model struct {
	snap   sessiondto.SnapshotOutput
	bar    progress.Model
	styles theme.Styles
	width  int
	height int
}

func New(st theme.Styles) Model {
	m := Model{styles: st}
	m.bar = newBar(st)
	return m
}

func newBar(st theme.Styles) progress.Model {
	return progress.New(
		progress.WithGradient(string(st.Palette.Sapphire), string(st.Palette.Green)),
		progress.WithWidth(40),
	)
}

func (m *Model) SetStyles(st theme.Styles) {
	m.styles = st
	m.bar = newBar(st)
}

func (m *Model) SetSnapshot(snap sessiondto.SnapshotOutput) { m.snap = snap }

func (m Model) Snapshot() sessiondto.SnapshotOutput { return m.snap }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(msg.Width-20, 10), 60)
	}
	return m, nil
}

// Countdown formats seconds as HH:MM:SS.
func Countdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func (m Model) View() string {
	var sb strings.Builder
	switch m.snap.Phase {
	case "completed":
		sb.WriteString(m.styles.Good.Render("Session complete! You planted a new tree.") + "\n\n")
		sb.WriteString(components.Tree(m.snap.Growth, m.styles) + "\n")
	case "withered":
		if m.snap.Alarm {
			sb.WriteString(m.styles.Alarm.Render("🚨 ALARM 🚨") + "\n\n")
		}
		sb.WriteString(m.styles.Hot.Render("Your tree withered.") + "\n")
		sb.WriteString(m.styles.Muted.Render("You ended the session early. Stay focused next time!") + "\n\n")
		sb.WriteString(components.Tree(m.snap.Growth, m.styles) + "\n")
	default:
		if m.snap.Alarm {
			sb.WriteString(m.styles.Alarm.Render("🚨 ALARM! BACK TO FOCUS! 🚨") + "\n\n")
		} else {
			sb.WriteString(m.styles.Title.Render("Stay focused") + "\n\n")
		}
		sb.WriteString(components.Tree(m.snap.Growth, m.styles) + "\n\n")
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(Countdown(m.snap.RemainingSeconds)) + "\n\n")
		sb.WriteString(m.bar.ViewAs(m.snap.Progress) + "\n\n")
		origin := ""
		if m.snap.Origin == "schedule" {
			origin = "scheduled session  "
		}
		sb.WriteString(m.styles.Muted.Render(origin + "e: end early (your tree will wither)"))
	}
	block := lipgloss.NewStyle().Align(lipgloss.Center).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}
