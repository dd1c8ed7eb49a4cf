package out

import (
	"bytes"
	"context"
	"testing"
)

func TestTerminalPresenterQueuesEachChangeOnce(t *testing.T) {
	t.Parallel()
	bell := &bytes.Buffer{}
	p := NewTerminalPresenter(bell)
	ctx := context.Background()

	if cmd := p.Drain(); cmd != nil {
		t.Fatalf("fresh presenter should have nothing queued")
	}
	_ = p.Enter(ctx)
	_ = p.Enter(ctx)
	_ = p.Raise(ctx)
	_ = p.Raise(ctx)
	if len(p.queue) != 3 {
		t.Fatalf("expected alt screen, title and bell queued once, got %d", len(p.queue))
	}
	if p.Drain() == nil || len(p.queue) != 0 {
		t.Fatalf("drain should empty the queue")
	}
	if !p.Alarming() {
		t.Fatalf("alarm should be on")
	}

	if cmd := p.Ring(); cmd == nil {
		t.Fatalf("ring while alarming should return a command")
	} else {
		cmd()
	}
	if bell.String() != "\a" {
		t.Fatalf("expected one BEL, got %q", bell.String())
	}

	_ = p.Clear(ctx)
	_ = p.Exit(ctx)
	_ = p.Exit(ctx)
	if len(p.queue) != 2 {
		t.Fatalf("expected title restore and alt screen exit, got %d", len(p.queue))
	}
	if p.Ring() != nil {
		t.Fatalf("no ring once the alarm is cleared")
	}
}
