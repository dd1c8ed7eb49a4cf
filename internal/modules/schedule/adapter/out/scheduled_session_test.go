package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"focusfence/internal/modules/schedule/domain"
	"focusfence/internal/modules/schedule/service"
	sessionadapter "focusfence/internal/modules/session/adapter/out"
	sessionservice "focusfence/internal/modules/session/service"
	sessionusecase "focusfence/internal/modules/session/usecase"
	"focusfence/internal/platform/clock"
	"focusfence/internal/platform/id"
	"focusfence/internal/platform/kv"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type heldFunc struct {
	fn      func()
	stopped bool
}

func (h *heldFunc) Stop() bool {
	was := h.stopped
	h.stopped = true
	return !was
}

type heldScheduler struct{ held []*heldFunc }

func (s *heldScheduler) AfterFunc(_ time.Duration, fn func()) clock.Stopper {
	h := &heldFunc{fn: fn}
	s.held = append(s.held, h)
	return h
}

func (s *heldScheduler) Flush() {
	held := s.held
	s.held = nil
	for _, h := range held {
		if !h.stopped {
			h.stopped = true
			h.fn()
		}
	}
}

type countingRewards struct{ trees int }

func (r *countingRewards) RecordCompletion(context.Context) (int, error) {
	r.trees++
	return r.trees, nil
}

func TestScheduledSessionEndedEarlyIsNotRestartedInSameWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := kv.Open(filepath.Join(t.TempDir(), "focusfence.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	// Monday 08:15 at UTC+7.
	clk := &fixedClock{now: time.Date(2026, 3, 2, 1, 15, 0, 0, time.UTC)}
	zone := clock.FixedZone(7)
	scheduler := &heldScheduler{}
	presenter := sessionadapter.NewTerminalPresenter(nil)
	sessions := sessionusecase.NewInteractor(sessionservice.NewSessionService(sessionservice.Deps{
		Clock:      clk,
		Scheduler:  scheduler,
		IDs:        id.UUID{},
		Fullscreen: presenter,
		Alarm:      presenter,
		Rewards:    &countingRewards{},
		Log:        zerolog.Nop(),
	}, sessionservice.Delays{Completion: 500 * time.Millisecond, Withered: 4 * time.Second}), clk, zone)

	poller := service.NewScheduleService(clk, zone, NewKVScheduleStore(store), NewSessionStarterAdapter(sessions), zerolog.Nop())
	window, _ := domain.New("08:00", "10:00", []string{"mon"})
	if _, err := poller.Save(ctx, window); err != nil {
		t.Fatalf("save schedule: %v", err)
	}

	first, err := poller.PollOnce(ctx)
	if err != nil || !first.Started || first.RemainingMinutes != 105 {
		t.Fatalf("first poll should start a 105 minute session, got %+v err=%v", first, err)
	}
	if _, err := sessions.EarlyEnd(ctx); err != nil {
		t.Fatalf("early end: %v", err)
	}
	scheduler.Flush()
	if snap := sessions.Snapshot(); snap.Phase != "idle" {
		t.Fatalf("expected idle after the withered delay, got %s", snap.Phase)
	}

	clk.now = clk.now.Add(time.Minute)
	second, err := poller.PollOnce(ctx)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if second.Started || !second.WindowUsed {
		t.Fatalf("same window must not start again, got %+v", second)
	}
	if snap := sessions.Snapshot(); snap.Phase != "idle" {
		t.Fatalf("controller should stay idle, got %s", snap.Phase)
	}
}
