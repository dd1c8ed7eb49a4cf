package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	profileout "focusfence/internal/modules/profile/adapter/out"
	profiledto "focusfence/internal/modules/profile/dto"
	profilein "focusfence/internal/modules/profile/port/in"
	"focusfence/internal/modules/profile/service"
	"focusfence/internal/modules/profile/usecase"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
	"focusfence/internal/platform/kv"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newInteractor(t *testing.T, clk *fakeClock) (profilein.Usecase, *kv.SQLiteStore) {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "focusfence.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	svc := service.NewProfileService(clk, clock.FixedZone(7), profileout.NewKVProfileStore(store), profileout.NewKVThemeStore(store), zerolog.Nop())
	return usecase.NewInteractor(svc), store
}

func TestLoadWithoutProfile(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})
	if _, err := uc.Load(context.Background()); !errors.Is(err, apperrors.ErrNoProfile) {
		t.Fatalf("expected no profile, got %v", err)
	}
}

func TestCorruptProfileForcesOnboarding(t *testing.T) {
	t.Parallel()
	uc, store := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})
	if err := store.Set(context.Background(), "studentData", "{not json"); err != nil {
		t.Fatalf("seed corrupt profile: %v", err)
	}
	if _, err := uc.Load(context.Background()); !errors.Is(err, apperrors.ErrNoProfile) {
		t.Fatalf("corrupt profile should read as missing, got %v", err)
	}
}

func TestOnboardValidatesAndCarriesLegacyCounter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, store := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})

	if _, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: " ", Email: "an@school.edu"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name should fail, got %v", err)
	}
	if _, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: "An", Email: "nope"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("bad email should fail, got %v", err)
	}
	if err := store.Set(ctx, "totalTreesPlanted", "4"); err != nil {
		t.Fatalf("seed legacy counter: %v", err)
	}
	out, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: "An", Email: "an@school.edu"})
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if out.TotalTreesPlanted != 4 {
		t.Fatalf("expected legacy count 4, got %d", out.TotalTreesPlanted)
	}
	if out.Reward.Date != "2026-03-01" {
		t.Fatalf("expected reward day in UTC+7, got %s", out.Reward.Date)
	}
}

func TestLoadRollsOverRewardAndFlagsWelcomeBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)}
	uc, _ := newInteractor(t, clk)
	if _, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: "An", Email: "an@school.edu"}); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if _, err := uc.RecordCompletion(ctx); err != nil {
		t.Fatalf("record completion: %v", err)
	}

	// Same day: reward untouched, not a welcome back.
	loaded, err := uc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.WelcomeBack || loaded.Profile.Reward.SessionsToday != 1 {
		t.Fatalf("same-day load should keep reward, got %+v", loaded)
	}

	// Next day (UTC+7): rollover, last seen was yesterday so no welcome back.
	clk.now = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	loaded, err = uc.Load(ctx)
	if err != nil {
		t.Fatalf("load next day: %v", err)
	}
	if loaded.Profile.Reward != (profiledto.RewardOutput{Date: "2026-03-02"}) {
		t.Fatalf("expected fresh reward, got %+v", loaded.Profile.Reward)
	}
	if loaded.WelcomeBack {
		t.Fatalf("seen yesterday should not be welcome back")
	}
	if loaded.Profile.TotalTreesPlanted != 1 {
		t.Fatalf("rollover must not touch total trees")
	}

	clk.now = clk.now.AddDate(0, 0, 3)
	loaded, err = uc.Load(ctx)
	if err != nil {
		t.Fatalf("load after absence: %v", err)
	}
	if !loaded.WelcomeBack {
		t.Fatalf("expected welcome back after three days away")
	}
}

func TestClaimDailyReward(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})
	if _, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: "An", Email: "an@school.edu"}); err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if _, err := uc.ClaimDailyReward(ctx); !errors.Is(err, apperrors.ErrRewardLocked) {
		t.Fatalf("expected locked reward, got %v", err)
	}
	if _, err := uc.RecordCompletion(ctx); err != nil {
		t.Fatalf("record completion: %v", err)
	}
	out, err := uc.ClaimDailyReward(ctx)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !out.Reward.Claimed || !out.Reward.Unlocked {
		t.Fatalf("expected claimed reward, got %+v", out.Reward)
	}
	again, err := uc.ClaimDailyReward(ctx)
	if err != nil || again.Reward != out.Reward {
		t.Fatalf("second claim should be a no-op, got %+v %v", again.Reward, err)
	}
}

func TestThemeDefaultsToDarkAndToggles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})
	theme, err := uc.Theme(ctx)
	if err != nil || theme != "dark" {
		t.Fatalf("expected dark default, got %q %v", theme, err)
	}
	if theme, err = uc.SetTheme(ctx, ""); err != nil || theme != "light" {
		t.Fatalf("expected toggle to light, got %q %v", theme, err)
	}
	if theme, _ = uc.Theme(ctx); theme != "light" {
		t.Fatalf("expected persisted light, got %q", theme)
	}
	if _, err := uc.SetTheme(ctx, "neon"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid theme error, got %v", err)
	}
}

func TestRecordCompletionWithoutProfileKeepsTheTree(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)})

	for want := 1; want <= 2; want++ {
		out, err := uc.RecordCompletion(ctx)
		if err != nil {
			t.Fatalf("record completion: %v", err)
		}
		if out.TotalTreesPlanted != want {
			t.Fatalf("expected %d trees, got %d", want, out.TotalTreesPlanted)
		}
	}
	if _, err := uc.Load(ctx); !errors.Is(err, apperrors.ErrNoProfile) {
		t.Fatalf("recording a tree must not create a profile, got %v", err)
	}

	out, err := uc.Onboard(ctx, profiledto.OnboardInput{Name: "An", Email: "an@school.edu"})
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if out.TotalTreesPlanted != 2 {
		t.Fatalf("onboarding should carry the 2 early trees, got %d", out.TotalTreesPlanted)
	}
}
