package out

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	AppTitle   = "FocusFence"
	AlarmTitle = "🚨 ALARM! BACK TO FOCUS! 🚨"
)

// TerminalPresenter implements the full-screen and alarm ports on a Bubble
// Tea program. The controller may call it from any goroutine, so effects are
// queued as commands and the program runs them on its next Drain.
type TerminalPresenter struct {
	mu         sync.Mutex
	bell       io.Writer
	queue      []tea.Cmd
	fullscreen bool
	alarm      bool
}

// NewTerminalPresenter rings the bell by writing BEL to bell; nil disables
// the audible part of the alarm.
func NewTerminalPresenter(bell io.Writer) *TerminalPresenter {
	return &TerminalPresenter{bell: bell}
}

func (p *TerminalPresenter) Enter(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fullscreen {
		return nil
	}
	p.fullscreen = true
	p.queue = append(p.queue, tea.EnterAltScreen)
	return nil
}

func (p *TerminalPresenter) Exit(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fullscreen {
		return nil
	}
	p.fullscreen = false
	p.queue = append(p.queue, tea.ExitAltScreen)
	return nil
}

func (p *TerminalPresenter) Raise(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.alarm {
		return nil
	}
	p.alarm = true
	p.queue = append(p.queue, tea.SetWindowTitle(AlarmTitle), p.ring())
	return nil
}

func (p *TerminalPresenter) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.alarm {
		return nil
	}
	p.alarm = false
	p.queue = append(p.queue, tea.SetWindowTitle(AppTitle))
	return nil
}

// Ring sounds the bell again while the alarm is on. The UI calls it on
// every tick so the alarm keeps buzzing.
func (p *TerminalPresenter) Ring() tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.alarm {
		return nil
	}
	return p.ring()
}

func (p *TerminalPresenter) Alarming() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alarm
}

// Drain hands the queued effects to the program in order.
func (p *TerminalPresenter) Drain() tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return nil
	}
	cmds := p.queue
	p.queue = nil
	return tea.Sequence(cmds...)
}

func (p *TerminalPresenter) ring() tea.Cmd {
	bell := p.bell
	if bell == nil {
		return nil
	}
	return func() tea.Msg {
		_, _ = io.WriteString(bell, "\a")
		return nil
	}
}
