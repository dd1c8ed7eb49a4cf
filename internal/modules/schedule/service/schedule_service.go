package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focusfence/internal/modules/schedule/domain"
	scheduleout "focusfence/internal/modules/schedule/port/out"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
)

// Decision is the outcome of evaluating the stored window at one instant.
type Decision struct {
	At               time.Time
	Configured       bool
	InWindow         bool
	RemainingMinutes int
	Started          bool
	SessionID        string
	// WindowUsed is set when this window already started a session.
	WindowUsed bool

	window string
}

type ScheduleService struct {
	clock   clock.Clock
	zone    *time.Location
	store   scheduleout.ScheduleStore
	starter scheduleout.SessionStarter
	log     zerolog.Logger

	// mu serialises polls; lastWindow is the window that last started a
	// session, so it never starts a second one.
	mu         sync.Mutex
	lastWindow string
}

func NewScheduleService(clk clock.Clock, zone *time.Location, store scheduleout.ScheduleStore, starter scheduleout.SessionStarter, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{clock: clk, zone: zone, store: store, starter: starter, log: log.With().Str("module", "schedule").Logger()}
}

func (s *ScheduleService) Save(ctx context.Context, schedule domain.Schedule) (domain.Schedule, error) {
	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, err
	}
	if err := s.store.Save(ctx, schedule); err != nil {
		return domain.Schedule{}, err
	}
	s.forgetWindow()
	s.log.Info().Str("start", schedule.StartTime).Str("end", schedule.EndTime).Strs("days", schedule.Days).Msg("schedule saved")
	return schedule, nil
}

func (s *ScheduleService) Get(ctx context.Context) (domain.Schedule, error) {
	return s.store.Load(ctx)
}

func (s *ScheduleService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.forgetWindow()
	return nil
}

func (s *ScheduleService) forgetWindow() {
	s.mu.Lock()
	s.lastWindow = ""
	s.mu.Unlock()
}

// Evaluate matches the stored window against the current time.
func (s *ScheduleService) Evaluate(ctx context.Context) (Decision, error) {
	decision, _, err := s.evaluate(ctx)
	if err != nil || !decision.InWindow {
		return decision, err
	}
	s.mu.Lock()
	decision.WindowUsed = s.lastWindow == decision.window
	s.mu.Unlock()
	return decision, nil
}

func (s *ScheduleService) evaluate(ctx context.Context) (Decision, domain.Schedule, error) {
	decision := Decision{At: s.clock.Now()}
	schedule, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNoSchedule) {
		return decision, schedule, nil
	}
	if err != nil {
		return decision, schedule, err
	}
	decision.Configured = true
	decision.RemainingMinutes, decision.InWindow = schedule.Match(decision.At, s.zone)
	if decision.InWindow {
		decision.window = clock.CalendarDayFor(decision.At, s.zone) + "@" + schedule.StartTime
	}
	return decision, schedule, nil
}

// PollOnce starts a session for the rest of the window when the window is
// open. A running session makes it a no-op, and each window starts at
// most one session even if that session ends before the window closes.
func (s *ScheduleService) PollOnce(ctx context.Context) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	decision, _, err := s.evaluate(ctx)
	if err != nil || !decision.InWindow {
		return decision, err
	}
	if s.lastWindow == decision.window {
		decision.WindowUsed = true
		return decision, nil
	}
	sessionID, started, err := s.starter.StartIfIdle(ctx, decision.RemainingMinutes)
	if err != nil {
		return decision, err
	}
	decision.Started = started
	decision.SessionID = sessionID
	if started {
		s.lastWindow = decision.window
		s.log.Info().Str("session_id", sessionID).Str("window", decision.window).Int("minutes", decision.RemainingMinutes).Msg("scheduled session started")
	}
	return decision, nil
}

// Run polls immediately and then every interval until ctx is done. Poll
// failures are logged and never stop the loop.
func (s *ScheduleService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := s.PollOnce(ctx); err != nil {
			s.log.Warn().Err(err).Msg("schedule poll")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
