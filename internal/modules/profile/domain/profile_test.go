package domain_test

import (
	"errors"
	"testing"
	"time"

	"focusfence/internal/modules/profile/domain"
	apperrors "focusfence/internal/platform/errors"
)

func newProfile(t *testing.T) domain.Profile {
	t.Helper()
	p, err := domain.New("  An  ", "an@school.edu", time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC), "2026-03-01")
	if err != nil {
		t.Fatalf("new profile: %v", err)
	}
	return p
}

func TestNewValidatesAndTrims(t *testing.T) {
	t.Parallel()
	p := newProfile(t)
	if p.Name != "An" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.DailyReward != (domain.DailyRewardStatus{Date: "2026-03-01"}) {
		t.Fatalf("expected fresh reward, got %+v", p.DailyReward)
	}
	if _, err := domain.New(" ", "an@school.edu", time.Now(), "2026-03-01"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name should fail, got %v", err)
	}
	for _, email := range []string{"", "an", "an@school", "a n@school.edu"} {
		if _, err := domain.New("An", email, time.Now(), "2026-03-01"); err == nil {
			t.Fatalf("email %q should fail", email)
		}
	}
}

func TestRolloverOnlyWhenDayDiffers(t *testing.T) {
	t.Parallel()
	p := newProfile(t)
	p.DailyReward = domain.DailyRewardStatus{Date: "2026-03-01", SessionsToday: 3, Claimed: true}

	if p.Rollover("2026-03-01") {
		t.Fatalf("same day must not roll over")
	}
	if p.DailyReward.SessionsToday != 3 || !p.DailyReward.Claimed {
		t.Fatalf("same-day reward must be untouched, got %+v", p.DailyReward)
	}
	if !p.Rollover("2026-03-02") {
		t.Fatalf("new day must roll over")
	}
	if p.DailyReward != (domain.DailyRewardStatus{Date: "2026-03-02"}) {
		t.Fatalf("expected zeroed reward, got %+v", p.DailyReward)
	}
}

func TestRecordCompletedSessionIncrementsByOne(t *testing.T) {
	t.Parallel()
	p := newProfile(t)
	p.TotalTreesPlanted = 7
	p.RecordCompletedSession("2026-03-01")
	if p.TotalTreesPlanted != 8 || p.DailyReward.SessionsToday != 1 {
		t.Fatalf("expected 8 trees and 1 session today, got %d/%d", p.TotalTreesPlanted, p.DailyReward.SessionsToday)
	}
	p.RecordCompletedSession("2026-03-02")
	if p.TotalTreesPlanted != 9 || p.DailyReward.SessionsToday != 1 || p.DailyReward.Date != "2026-03-02" {
		t.Fatalf("expected rollover before counting, got %+v total=%d", p.DailyReward, p.TotalTreesPlanted)
	}
}

func TestClaimRequiresSessionAndIsIdempotent(t *testing.T) {
	t.Parallel()
	p := newProfile(t)
	if err := p.Claim("2026-03-01"); !errors.Is(err, apperrors.ErrRewardLocked) {
		t.Fatalf("claim without session should be locked, got %v", err)
	}
	if p.DailyReward.Claimed {
		t.Fatalf("locked claim must not mark claimed")
	}
	p.RecordCompletedSession("2026-03-01")
	if err := p.Claim("2026-03-01"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	before := p
	if err := p.Claim("2026-03-01"); err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if p != before {
		t.Fatalf("second claim must not change profile")
	}
}

func TestMilestone(t *testing.T) {
	t.Parallel()
	cases := []struct {
		total   int
		prev    int
		next    int
		percent float64
		reached int
	}{
		{total: 0, prev: 0, next: 1, percent: 0, reached: 0},
		{total: 1, prev: 1, next: 5, percent: 0, reached: 1},
		{total: 3, prev: 1, next: 5, percent: 50, reached: 1},
		{total: 30, prev: 25, next: 50, percent: 20, reached: 4},
		{total: 100, prev: 100, next: 100, percent: 100, reached: 6},
		{total: 250, prev: 100, next: 100, percent: 100, reached: 6},
	}
	for _, tc := range cases {
		got := domain.Milestone(tc.total)
		if got.Previous != tc.prev || got.Next != tc.next || got.Percent != tc.percent || len(got.Reached) != tc.reached {
			t.Fatalf("total=%d: got %+v", tc.total, got)
		}
	}
}

func TestThemeValidateAndToggle(t *testing.T) {
	t.Parallel()
	if err := domain.Theme("sepia").Validate(); err == nil {
		t.Fatalf("unknown theme should fail")
	}
	if domain.ThemeDark.Toggle() != domain.ThemeLight || domain.ThemeLight.Toggle() != domain.ThemeDark {
		t.Fatalf("toggle should flip light and dark")
	}
}
