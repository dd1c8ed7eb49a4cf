package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "focusfence/internal/platform/errors"
)

// DailyRewardGoal is the number of completed sessions that unlocks the
// daily reward.
const DailyRewardGoal = 1

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type DailyRewardStatus struct {
	Date          string `json:"date"`
	SessionsToday int    `json:"sessionsToday"`
	Claimed       bool   `json:"claimed"`
}

func FreshReward(day string) DailyRewardStatus {
	return DailyRewardStatus{Date: day}
}

func (r DailyRewardStatus) Unlocked() bool {
	return r.SessionsToday >= DailyRewardGoal
}

// Profile is persisted as one JSON blob under the studentData key.
type Profile struct {
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	LastSeen          int64             `json:"lastSeen"`
	TotalTreesPlanted int               `json:"totalTreesPlanted"`
	DailyReward       DailyRewardStatus `json:"dailyReward"`
}

func New(name, email string, now time.Time, today string) (Profile, error) {
	p := Profile{
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		LastSeen:    now.UnixMilli(),
		DailyReward: FreshReward(today),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	if !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("%w: email %q is not valid", apperrors.ErrInvalidInput, p.Email)
	}
	if p.TotalTreesPlanted < 0 || p.DailyReward.SessionsToday < 0 {
		return fmt.Errorf("%w: counters must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}

func (p Profile) LastSeenAt() time.Time {
	return time.UnixMilli(p.LastSeen).UTC()
}

// Rollover replaces the daily reward with a fresh record when its date is
// not today. It reports whether anything changed.
func (p *Profile) Rollover(today string) bool {
	if p.DailyReward.Date == today {
		return false
	}
	p.DailyReward = FreshReward(today)
	return true
}

// RecordCompletedSession plants one tree and counts it toward today.
func (p *Profile) RecordCompletedSession(today string) {
	p.Rollover(today)
	p.TotalTreesPlanted++
	p.DailyReward.SessionsToday++
}

// Claim marks today's reward claimed. Claiming an already claimed reward is
// a no-op; claiming before the goal is met fails.
func (p *Profile) Claim(today string) error {
	p.Rollover(today)
	if p.DailyReward.Claimed {
		return nil
	}
	if !p.DailyReward.Unlocked() {
		return apperrors.ErrRewardLocked
	}
	p.DailyReward.Claimed = true
	return nil
}
