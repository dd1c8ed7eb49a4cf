package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"focusfence/internal/modules/profile/domain"
	profileout "focusfence/internal/modules/profile/port/out"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
)

type ProfileService struct {
	clock  clock.Clock
	zone   *time.Location
	store  profileout.ProfileStore
	themes profileout.ThemeStore
	log    zerolog.Logger
}

func NewProfileService(clk clock.Clock, zone *time.Location, store profileout.ProfileStore, themes profileout.ThemeStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{clock: clk, zone: zone, store: store, themes: themes, log: log.With().Str("module", "profile").Logger()}
}

func (s *ProfileService) today(now time.Time) string {
	return clock.CalendarDayFor(now, s.zone)
}

// Onboard creates the profile. A tree counter left by an older install is
// carried over.
func (s *ProfileService) Onboard(ctx context.Context, name, email string) (domain.Profile, error) {
	now := s.clock.Now()
	profile, err := domain.New(name, email, now, s.today(now))
	if err != nil {
		return domain.Profile{}, err
	}
	legacy, err := s.store.LoadTreeCount(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("read legacy tree counter")
	} else if legacy > 0 {
		profile.TotalTreesPlanted = legacy
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	s.log.Info().Str("name", profile.Name).Msg("profile onboarded")
	return profile, nil
}

// Load returns the stored profile with the daily reward rolled over to
// today, and whether the user was last seen before yesterday.
func (s *ProfileService) Load(ctx context.Context) (domain.Profile, bool, error) {
	profile, err := s.load(ctx)
	if err != nil {
		return domain.Profile{}, false, err
	}
	now := s.clock.Now()
	if profile.Rollover(s.today(now)) {
		if err := s.store.Save(ctx, profile); err != nil {
			s.log.Warn().Err(err).Msg("persist daily reward rollover")
		}
	}

	yesterday := clock.StartOfDay(now, s.zone).AddDate(0, 0, -1)
	welcomeBack := profile.LastSeenAt().Before(yesterday)

	profile.LastSeen = now.UnixMilli()
	if err := s.store.Save(ctx, profile); err != nil {
		s.log.Warn().Err(err).Msg("persist last seen")
	}
	return profile, welcomeBack, nil
}

func (s *ProfileService) load(ctx context.Context) (domain.Profile, error) {
	profile, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoProfile) && err != apperrors.ErrNoProfile {
			s.log.Warn().Err(err).Msg("discarding unreadable profile")
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) Save(ctx context.Context, profile domain.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return s.store.Save(ctx, profile)
}

// RecordCompletion plants one tree. Without a profile the tree goes to the
// standalone counter, which Onboard picks up later.
func (s *ProfileService) RecordCompletion(ctx context.Context) (domain.Profile, error) {
	profile, err := s.load(ctx)
	if errors.Is(err, apperrors.ErrNoProfile) {
		total, err := s.store.IncrementTreeCount(ctx)
		if err != nil {
			return domain.Profile{}, fmt.Errorf("record completion: %w", err)
		}
		s.log.Info().Int("total_trees", total).Msg("tree planted before onboarding")
		return domain.Profile{TotalTreesPlanted: total}, nil
	}
	if err != nil {
		return domain.Profile{}, err
	}
	profile.RecordCompletedSession(s.today(s.clock.Now()))
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("record completion: %w", err)
	}
	s.log.Info().Int("total_trees", profile.TotalTreesPlanted).Int("sessions_today", profile.DailyReward.SessionsToday).Msg("tree planted")
	return profile, nil
}

func (s *ProfileService) Claim(ctx context.Context) (domain.Profile, error) {
	profile, err := s.load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	before := profile.DailyReward
	if err := profile.Claim(s.today(s.clock.Now())); err != nil {
		return domain.Profile{}, err
	}
	if profile.DailyReward != before {
		if err := s.store.Save(ctx, profile); err != nil {
			return domain.Profile{}, fmt.Errorf("claim reward: %w", err)
		}
	}
	return profile, nil
}

func (s *ProfileService) Theme(ctx context.Context) (domain.Theme, error) {
	theme, ok, err := s.themes.LoadTheme(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("load theme")
		return domain.ThemeDark, nil
	}
	if !ok || theme.Validate() != nil {
		return domain.ThemeDark, nil
	}
	return theme, nil
}

func (s *ProfileService) SetTheme(ctx context.Context, theme domain.Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	return s.themes.SaveTheme(ctx, theme)
}
