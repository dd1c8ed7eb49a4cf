package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	profiledto "focusfence/internal/modules/profile/dto"
	"focusfence/internal/ui/theme"
)

// Model is the profile strip shown under the configurator: trees planted,
// the next milestone and today's reward.
type Model struct {
	profile     profiledto.ProfileOutput
	loaded      bool
	welcomeBack bool
	styles      theme.Styles
	width       int
}

func New(st theme.Styles) Model {
	return Model{styles: st}
}

func (m *Model) SetStyles(st theme.Styles) { m.styles = st }
func (m *Model) SetWidth(w int)            { m.width = w }

func (m *Model) SetProfile(p profiledto.ProfileOutput) {
	m.profile = p
	m.loaded = true
}

func (m *Model) SetWelcomeBack(v bool) { m.welcomeBack = v }

// DismissWelcome hides the welcome-back banner.
func (m *Model) DismissWelcome() { m.welcomeBack = false }

func (m Model) Profile() profiledto.ProfileOutput { return m.profile }

func (m Model) View() string {
	if !m.loaded {
		return ""
	}
	p := m.profile
	var lines []string
	if m.welcomeBack {
		lines = append(lines, m.styles.Good.Render(fmt.Sprintf("Welcome back, %s! Your forest missed you.", p.Name)))
	}

	trees := m.styles.Good.Render(fmt.Sprintf("🌳 %d", p.TotalTreesPlanted))
	milestone := m.styles.Muted.Render("all milestones reached")
	if p.Milestone.Next > p.Milestone.Previous {
		milestone = m.styles.Muted.Render(fmt.Sprintf("next milestone %d (%.0f%%)", p.Milestone.Next, p.Milestone.Percent))
	}
	lines = append(lines, trees+"  "+milestone+"  "+m.rewardLabel())
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func (m Model) rewardLabel() string {
	r := m.profile.Reward
	switch {
	case r.Claimed:
		return m.styles.Good.Render("🎁 daily reward claimed")
	case r.Unlocked:
		return m.styles.Hot.Render("🎁 daily reward ready: type :claim")
	default:
		return m.styles.Muted.Render(fmt.Sprintf("🎁 daily reward %d/1 sessions", r.SessionsToday))
	}
}
