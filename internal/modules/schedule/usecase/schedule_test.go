package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	scheduleout "focusfence/internal/modules/schedule/adapter/out"
	scheduledto "focusfence/internal/modules/schedule/dto"
	schedulein "focusfence/internal/modules/schedule/port/in"
	"focusfence/internal/modules/schedule/service"
	"focusfence/internal/modules/schedule/usecase"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
	"focusfence/internal/platform/kv"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type idleStarter struct{ calls int }

func (s *idleStarter) StartIfIdle(context.Context, int) (string, bool, error) {
	s.calls++
	return "x", true, nil
}

func newInteractor(t *testing.T) (schedulein.Usecase, *kv.SQLiteStore, *idleStarter) {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "focusfence.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	starter := &idleStarter{}
	clk := &fakeClock{now: time.Date(2026, 3, 4, 1, 30, 0, 0, time.UTC)}
	svc := service.NewScheduleService(clk, clock.FixedZone(7), scheduleout.NewKVScheduleStore(store), starter, zerolog.Nop())
	return usecase.NewInteractor(svc), store, starter
}

func TestSaveGetClear(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	ctx := context.Background()

	if _, err := uc.Get(ctx); !errors.Is(err, apperrors.ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule, got %v", err)
	}
	saved, err := uc.Save(ctx, scheduledto.ScheduleInput{StartTime: "08:00", EndTime: "09:00", Days: []string{"wed"}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// Latest save wins.
	saved, err = uc.Save(ctx, scheduledto.ScheduleInput{StartTime: "08:00", EndTime: "11:00", Days: []string{"Wed", "mon"}})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EndTime != "11:00" || len(got.Days) != 2 || got.Days[0] != "mon" || saved.Days[1] != "wed" {
		t.Fatalf("unexpected schedule: %+v", got)
	}
	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := uc.Get(ctx); !errors.Is(err, apperrors.ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule after clear, got %v", err)
	}
}

func TestSaveRequiresFields(t *testing.T) {
	t.Parallel()
	uc, _, _ := newInteractor(t)
	if _, err := uc.Save(context.Background(), scheduledto.ScheduleInput{StartTime: "08:00"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCheckDoesNotStart(t *testing.T) {
	t.Parallel()
	uc, _, starter := newInteractor(t)
	ctx := context.Background()
	if _, err := uc.Save(ctx, scheduledto.ScheduleInput{StartTime: "08:00", EndTime: "09:00", Days: []string{"wed"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Wednesday 08:30 at UTC+7.
	out, err := uc.Check(ctx)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !out.InWindow || out.RemainingMinutes != 30 || out.Started || starter.calls != 0 {
		t.Fatalf("unexpected check: %+v calls=%d", out, starter.calls)
	}
	out, err = uc.PollOnce(ctx)
	if err != nil || !out.Started || starter.calls != 1 {
		t.Fatalf("poll should start, got %+v err=%v", out, err)
	}
}

func TestCorruptStoredScheduleReadsAsNone(t *testing.T) {
	t.Parallel()
	uc, store, _ := newInteractor(t)
	if err := store.Set(context.Background(), "schedule", `{"startTime":"10:00","endTime":"09:00","days":["mon"]}`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := uc.Get(context.Background()); !errors.Is(err, apperrors.ErrNoSchedule) {
		t.Fatalf("expected ErrNoSchedule, got %v", err)
	}
}
