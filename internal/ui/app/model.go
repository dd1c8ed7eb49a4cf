package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "focusfence/internal/modules/profile/dto"
	sessiondto "focusfence/internal/modules/session/dto"
	apperrors "focusfence/internal/platform/errors"
	"focusfence/internal/ui/components"
	"focusfence/internal/ui/theme"
	"focusfence/internal/ui/views/configurator"
	"focusfence/internal/ui/views/dashboard"
	"focusfence/internal/ui/views/focus"
	"focusfence/internal/ui/views/onboarding"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type profilePort interface {
	Onboard(ctx context.Context, name, email string) (profiledto.ProfileOutput, error)
	Load(ctx context.Context) (profiledto.LoadOutput, error)
	ClaimDailyReward(ctx context.Context) (profiledto.ProfileOutput, error)
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) (string, error)
}

type sessionPort interface {
	Start(ctx context.Context, minutes int) (sessiondto.SnapshotOutput, error)
	Tick(ctx context.Context) (sessiondto.SnapshotOutput, error)
	EarlyEnd(ctx context.Context) (sessiondto.SnapshotOutput, error)
	Reset(ctx context.Context) sessiondto.SnapshotOutput
	VisibilityChanged(ctx context.Context, hidden bool) sessiondto.SnapshotOutput
	FullscreenLost(ctx context.Context) sessiondto.SnapshotOutput
	Snapshot() sessiondto.SnapshotOutput
	Preview(minutes int) sessiondto.GrowthOutput
	Stats(ctx context.Context) (sessiondto.StatsOutput, error)
}

// effectsPort hands terminal side effects queued by the session controller
// back to the program.
type effectsPort interface {
	Drain() tea.Cmd
	Ring() tea.Cmd
}

// ─── screens ─────────────────────────────────────────────────────────────────

type screenID int

const (
	screenLoading screenID = iota
	screenOnboarding
	screenHome
	screenSession
)

// ─── async messages ───────────────────────────────────────────────────────────

// SnapshotMsg carries a controller snapshot pushed from outside the program,
// such as a deferred transition or a scheduled start.
type SnapshotMsg struct {
	Snapshot sessiondto.SnapshotOutput
}

type profileLoadedMsg struct {
	out profiledto.LoadOutput
	err error
}

type themeMsg struct {
	name string
	err  error
}

type sessionStartedMsg struct {
	snap sessiondto.SnapshotOutput
	err  error
}

type rewardClaimedMsg struct {
	profile profiledto.ProfileOutput
	err     error
}

type statsMsg struct {
	stats sessiondto.StatsOutput
	err   error
}

type tickMsg struct{ sessionID string }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	EarlyEnd key.Binding
	Suspend  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		EarlyEnd: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session early")),
		Suspend:  key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend (sounds the alarm)")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.EarlyEnd, k.Suspend},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Options struct {
	DefaultMinutes int
	// StartMinutes starts a session as soon as the profile is loaded.
	StartMinutes int
}

// Model is the root Bubble Tea model. It routes between onboarding, the
// configurator and the session screen, and renders what the session
// controller reports. Session state itself lives in the controller.
type Model struct {
	profile profilePort
	session sessionPort
	effects effectsPort
	opts    Options

	onboard onboarding.Model
	config  configurator.Model
	focus   focus.Model
	dash    dashboard.Model

	styles    theme.Styles
	screen    screenID
	snap      sessiondto.SnapshotOutput
	tickingID string
	autoStart bool
	// onboarded is false until a profile has been loaded or created; a
	// scheduled session can run before that.
	onboarded bool

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	status   string
	width    int
	height   int
}

func NewModel(profile profilePort, session sessionPort, effects effectsPort, opts Options) Model {
	if opts.DefaultMinutes < 1 {
		opts.DefaultMinutes = 25
	}
	st := theme.For("dark")
	return Model{
		profile:   profile,
		session:   session,
		effects:   effects,
		opts:      opts,
		onboard:   onboarding.New(onboardBridge{p: profile}, st),
		config:    configurator.New(session, opts.DefaultMinutes, st),
		focus:     focus.New(st),
		dash:      dashboard.New(st),
		styles:    st,
		screen:    screenLoading,
		autoStart: opts.StartMinutes > 0,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(st),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("FocusFence"),
		m.loadThemeCmd(),
		m.loadProfileCmd(),
		m.config.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if effects := next.effects.Drain(); effects != nil {
		cmd = tea.Sequence(effects, cmd)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 60))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.status = "theme: " + msg.err.Error()
			return m, nil
		}
		m.applyTheme(msg.name)
		return m, nil

	case profileLoadedMsg:
		return m.handleProfile(msg)

	case onboarding.OnboardedMsg:
		var cmd tea.Cmd
		m.onboard, cmd = m.onboard.Update(msg)
		if msg.Err != nil {
			return m, cmd
		}
		m.dash.SetProfile(msg.Profile)
		m.status = "welcome, " + msg.Profile.Name
		m.onboarded = true
		m.screen = screenHome
		return m, tea.Batch(cmd, m.maybeAutoStart())

	case configurator.StartMsg:
		return m, m.startSessionCmd(msg.Minutes)

	case sessionStartedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrActiveSessionExists) {
				m.status = "a session is already running"
			} else {
				m.status = "start: " + msg.err.Error()
			}
			return m, nil
		}
		return m.applySnapshot(msg.snap)

	case SnapshotMsg:
		return m.applySnapshot(msg.Snapshot)

	case tickMsg:
		if msg.sessionID != m.tickingID || !m.snap.Active() {
			return m, nil
		}
		snap, err := m.session.Tick(context.Background())
		if err != nil {
			m.tickingID = ""
			return m, nil
		}
		next, cmd := m.applySnapshot(snap)
		if snap.Active() {
			cmd = tea.Batch(cmd, tickCmd(snap.SessionID), next.effects.Ring())
		}
		return next, cmd

	case tea.BlurMsg:
		return m.applySnapshot(m.session.VisibilityChanged(context.Background(), true))

	case tea.FocusMsg:
		return m.applySnapshot(m.session.VisibilityChanged(context.Background(), false))

	case tea.ResumeMsg:
		return m.applySnapshot(m.session.VisibilityChanged(context.Background(), false))

	case rewardClaimedMsg:
		switch {
		case errors.Is(msg.err, apperrors.ErrRewardLocked):
			m.status = "finish a session today to unlock the daily reward"
		case msg.err != nil:
			m.status = "claim: " + msg.err.Error()
		default:
			m.dash.SetProfile(msg.profile)
			m.status = "daily reward claimed 🎁"
		}
		return m, nil

	case statsMsg:
		if msg.err != nil {
			m.status = "stats: " + msg.err.Error()
			return m, nil
		}
		s := msg.stats
		m.status = fmt.Sprintf("last 7 days: %d completed, %d withered, %d abandoned, %s focused",
			s.Completed, s.Withered, s.Abandoned, (time.Duration(s.FocusedTicks) * time.Second).String())
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.delegate(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.session.Reset(context.Background())
		return m, tea.Quit
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch m.screen {
	case screenOnboarding:
		// Every other key is typing.
		return m.delegate(msg)

	case screenSession:
		switch {
		case key.Matches(msg, m.keys.EarlyEnd) && m.snap.Active():
			snap, err := m.session.EarlyEnd(context.Background())
			if err != nil {
				return m, nil
			}
			return m.applySnapshot(snap)
		case key.Matches(msg, m.keys.Suspend) && m.snap.Active():
			next, cmd := m.applySnapshot(m.session.FullscreenLost(context.Background()))
			return next, tea.Sequence(cmd, next.effects.Drain(), tea.Suspend)
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		}
		return m, nil
	}

	switch {
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		return m, m.palette.Open()
	case msg.String() == "esc":
		m.dash.DismissWelcome()
		return m, nil
	}
	return m.delegate(msg)
}

func (m Model) delegate(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenOnboarding:
		m.onboard, cmd = m.onboard.Update(msg)
	case screenHome:
		m.config, cmd = m.config.Update(msg)
	}
	return m, cmd
}

func (m Model) handleProfile(msg profileLoadedMsg) (Model, tea.Cmd) {
	if errors.Is(msg.err, apperrors.ErrNoProfile) {
		if m.screen == screenSession {
			// Onboarding follows once the session is back to idle.
			return m, nil
		}
		m.screen = screenOnboarding
		return m, m.onboard.Init()
	}
	if msg.err != nil {
		m.status = "profile: " + msg.err.Error()
		m.screen = screenHome
		return m, nil
	}
	m.onboarded = true
	m.dash.SetProfile(msg.out.Profile)
	m.dash.SetWelcomeBack(msg.out.WelcomeBack)
	if m.screen != screenSession {
		m.screen = screenHome
	}
	return m, m.maybeAutoStart()
}

func (m *Model) maybeAutoStart() tea.Cmd {
	if !m.autoStart {
		return nil
	}
	m.autoStart = false
	return m.startSessionCmd(m.opts.StartMinutes)
}

// applySnapshot renders a controller snapshot. Snapshots arrive both as
// return values and through the subscription, so older versions are
// dropped.
func (m Model) applySnapshot(snap sessiondto.SnapshotOutput) (Model, tea.Cmd) {
	if snap.Version < m.snap.Version {
		return m, nil
	}
	prev := m.snap
	m.snap = snap
	m.focus.SetSnapshot(snap)

	var cmds []tea.Cmd
	switch snap.Phase {
	case "active":
		m.screen = screenSession
		if m.tickingID != snap.SessionID {
			m.tickingID = snap.SessionID
			cmds = append(cmds, tickCmd(snap.SessionID))
		}
	case "completed":
		m.screen = screenSession
		m.tickingID = ""
		if prev.Phase != "completed" {
			m.status = "session complete, you planted a new tree 🌳"
			cmds = append(cmds, m.loadProfileCmd())
		}
	case "withered":
		m.screen = screenSession
		m.tickingID = ""
		if prev.Phase != "withered" {
			m.status = "session ended early, your tree withered"
		}
	default:
		m.tickingID = ""
		if m.screen == screenSession {
			m.screen = screenHome
			if !m.onboarded {
				m.screen = screenOnboarding
				cmds = append(cmds, m.onboard.Init())
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applyTheme(name string) {
	m.styles = theme.For(name)
	m.onboard.SetStyles(m.styles)
	m.config.SetStyles(m.styles)
	m.focus.SetStyles(m.styles)
	m.dash.SetStyles(m.styles)
	m.palette.SetStyles(m.styles)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.screen == screenSession && !m.palette.Visible() && !m.showHelp {
		return m.focus.View()
	}

	statusBar := m.renderStatusBar()
	footer := m.dash.View()
	contentH := m.height - lipgloss.Height(statusBar) - lipgloss.Height(footer)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.screen == screenOnboarding:
		return m.onboard.View()
	case m.screen == screenLoading:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.styles.Muted.Render("loading…"))
	default:
		content = m.config.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, footer, statusBar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := m.styles.Muted.Render("?:help  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + m.styles.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "start":
		minutes := m.config.Minutes()
		if len(parts) >= 2 {
			n, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "usage: start <minutes>"
				return m, nil
			}
			minutes = n
		}
		return m, m.startSessionCmd(minutes)

	case "end":
		snap, err := m.session.EarlyEnd(context.Background())
		if err != nil {
			m.status = "no session is running"
			return m, nil
		}
		return m.applySnapshot(snap)

	case "reset":
		return m.applySnapshot(m.session.Reset(context.Background()))

	case "claim":
		return m, m.claimRewardCmd()

	case "theme":
		return m, m.setThemeCmd("")

	case "theme:light":
		return m, m.setThemeCmd("light")

	case "theme:dark":
		return m, m.setThemeCmd("dark")

	case "stats":
		return m, m.statsCmd()

	case "quit":
		m.session.Reset(context.Background())
		return m, tea.Quit

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	contentH := m.height - 4
	sz := tea.WindowSizeMsg{Width: m.width, Height: contentH}
	m.onboard, _ = m.onboard.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.config, _ = m.config.Update(sz)
	m.focus, _ = m.focus.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.dash.SetWidth(m.width)
}

func tickCmd(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{sessionID: sessionID}
	})
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.profile.Load(context.Background())
		return profileLoadedMsg{out: out, err: err}
	}
}

func (m Model) loadThemeCmd() tea.Cmd {
	return func() tea.Msg {
		name, err := m.profile.Theme(context.Background())
		return themeMsg{name: name, err: err}
	}
}

func (m Model) setThemeCmd(name string) tea.Cmd {
	return func() tea.Msg {
		applied, err := m.profile.SetTheme(context.Background(), name)
		return themeMsg{name: applied, err: err}
	}
}

func (m Model) startSessionCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		snap, err := m.session.Start(context.Background(), minutes)
		return sessionStartedMsg{snap: snap, err: err}
	}
}

func (m Model) claimRewardCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.profile.ClaimDailyReward(context.Background())
		return rewardClaimedMsg{profile: out, err: err}
	}
}

func (m Model) statsCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stats(context.Background())
		return statsMsg{stats: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type onboardBridge struct{ p profilePort }

func (b onboardBridge) Onboard(ctx context.Context, name, email string) (profiledto.ProfileOutput, error) {
	return b.p.Onboard(ctx, name, email)
}
