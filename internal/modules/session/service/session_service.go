package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focusfence/internal/modules/session/domain"
	sessionout "focusfence/internal/modules/session/port/out"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
	"focusfence/internal/platform/id"
	"focusfence/internal/platform/metrics"
)

// Delays hold the transient phases on screen before returning to idle.
type Delays struct {
	Completion time.Duration
	Withered   time.Duration
}

type Deps struct {
	Clock      clock.Clock
	Scheduler  clock.Scheduler
	IDs        id.Generator
	Fullscreen sessionout.Fullscreen
	Alarm      sessionout.Alarm
	Rewards    sessionout.RewardRecorder
	History    sessionout.HistoryStore
	Journal    sessionout.JournalStore
	Metrics    metrics.Recorder
	Log        zerolog.Logger
}

// SessionService is the session controller. It is the only owner of the
// session state, the full-screen surface and the alarm; every transition
// runs under one mutex, so a check for "idle" and the start that follows
// cannot interleave with another caller.
type SessionService struct {
	mu sync.Mutex

	clock      clock.Clock
	scheduler  clock.Scheduler
	ids        id.Generator
	fullscreen sessionout.Fullscreen
	alarm      sessionout.Alarm
	rewards    sessionout.RewardRecorder
	history    sessionout.HistoryStore
	journal    sessionout.JournalStore
	metrics    metrics.Recorder
	log        zerolog.Logger
	delays     Delays

	phase     domain.Phase
	config    *domain.SessionConfig
	timer     *domain.Timer
	monitor   domain.AttentionMonitor
	sessionID string
	origin    domain.Origin
	startedAt time.Time
	progress  float64
	alarmOn   bool
	version   uint64

	// epoch invalidates deferred transitions scheduled before the latest
	// Start or Reset.
	epoch   uint64
	pending clock.Stopper

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(domain.Snapshot)
}

func NewSessionService(deps Deps, delays Delays) *SessionService {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Noop{}
	}
	return &SessionService{
		clock:       deps.Clock,
		scheduler:   deps.Scheduler,
		ids:         deps.IDs,
		fullscreen:  deps.Fullscreen,
		alarm:       deps.Alarm,
		rewards:     deps.Rewards,
		history:     deps.History,
		journal:     deps.Journal,
		metrics:     deps.Metrics,
		log:         deps.Log.With().Str("module", "session").Logger(),
		delays:      delays,
		phase:       domain.PhaseIdle,
		subscribers: map[int]func(domain.Snapshot){},
	}
}

// Subscribe registers fn to receive a snapshot after every transition,
// including deferred ones. Calls happen outside the controller lock.
func (s *SessionService) Subscribe(fn func(domain.Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	key := s.nextSubID
	s.nextSubID++
	s.subscribers[key] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, key)
	}
}

func (s *SessionService) notify(snap domain.Snapshot) {
	s.subMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *SessionService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionService) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Version:   s.version,
		Phase:     s.phase,
		SessionID: s.sessionID,
		Origin:    s.origin,
		Progress:  s.progress,
		Alarm:     s.alarmOn,
		StartedAt: s.startedAt,
	}
	if s.config != nil {
		snap.DurationSeconds = s.config.DurationSeconds
	}
	if s.timer != nil {
		snap.RemainingSeconds = s.timer.Remaining()
	}
	return snap
}

// commit bumps the version, releases the lock and notifies subscribers.
func (s *SessionService) commit() domain.Snapshot {
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return snap
}

// Start is valid only from idle.
func (s *SessionService) Start(ctx context.Context, cfg domain.SessionConfig, origin domain.Origin) (domain.Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Snapshot{}, err
	}
	s.mu.Lock()
	if s.phase != domain.PhaseIdle {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperrors.ErrActiveSessionExists
	}
	s.cancelPendingLocked()

	s.config = &cfg
	s.timer = domain.NewTimer(cfg.DurationSeconds)
	s.sessionID = s.ids.New()
	s.origin = origin
	s.startedAt = s.clock.Now()
	s.progress = 0
	s.phase = domain.PhaseActive
	s.monitor.Arm()

	if err := s.fullscreen.Enter(ctx); err != nil {
		s.log.Warn().Err(err).Msg("enter full-screen")
	}
	s.metrics.SessionStarted(string(origin))
	s.metrics.SetActive(true)
	s.log.Info().Str("session_id", s.sessionID).Str("origin", string(origin)).Int("duration_s", cfg.DurationSeconds).Msg("session started")

	if s.timer.Ended() {
		s.completeLocked(ctx)
	}
	return s.commit(), nil
}

// Tick feeds one second to the running timer.
func (s *SessionService) Tick(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	if s.phase != domain.PhaseActive {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperrors.ErrNoActiveSession
	}
	ended := s.timer.Tick()
	s.progress = s.timer.Progress()
	if ended {
		s.completeLocked(ctx)
	}
	return s.commit(), nil
}

func (s *SessionService) completeLocked(ctx context.Context) {
	total, err := s.rewards.RecordCompletion(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", s.sessionID).Msg("record completion reward")
	}
	s.archiveLocked(ctx, domain.OutcomeCompleted)

	s.teardownLocked(ctx)
	s.phase = domain.PhaseCompleted
	s.metrics.SessionFinished(string(domain.OutcomeCompleted))
	s.metrics.SetActive(false)
	s.log.Info().Str("session_id", s.sessionID).Int("total_trees", total).Msg("session completed")
	s.deferIdleLocked(s.delays.Completion)
}

// EarlyEnd abandons the running session: the tree withers and the alarm
// sounds until the withered screen is dismissed.
func (s *SessionService) EarlyEnd(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	if s.phase != domain.PhaseActive {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperrors.ErrNoActiveSession
	}
	s.progress = s.timer.Progress()
	s.monitor.Disarm()
	if err := s.fullscreen.Exit(ctx); err != nil {
		s.log.Warn().Err(err).Msg("exit full-screen")
	}
	s.raiseLocked(ctx)
	s.archiveLocked(ctx, domain.OutcomeWithered)

	s.phase = domain.PhaseWithered
	s.metrics.SessionFinished(string(domain.OutcomeWithered))
	s.metrics.SetActive(false)
	s.log.Info().Str("session_id", s.sessionID).Float64("progress", s.progress).Msg("session ended early")
	s.deferIdleLocked(s.delays.Withered)
	return s.commit(), nil
}

// Reset returns to idle from any phase, cancelling any pending deferred
// transition. Resources are released even if they were never acquired.
func (s *SessionService) Reset(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	s.cancelPendingLocked()
	if s.phase == domain.PhaseActive {
		s.progress = s.timer.Progress()
		s.archiveLocked(ctx, domain.OutcomeAbandoned)
		s.metrics.SessionFinished(string(domain.OutcomeAbandoned))
		s.metrics.SetActive(false)
		s.log.Info().Str("session_id", s.sessionID).Msg("session abandoned")
	}
	s.toIdleLocked(ctx)
	return s.commit()
}

func (s *SessionService) VisibilityChanged(ctx context.Context, hidden bool) domain.Snapshot {
	s.mu.Lock()
	changed := s.applyLocked(ctx, s.monitor.Visibility(hidden))
	if !changed {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	return s.commit()
}

func (s *SessionService) FullscreenLost(ctx context.Context) domain.Snapshot {
	s.mu.Lock()
	changed := s.applyLocked(ctx, s.monitor.FullscreenLost())
	if !changed {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	return s.commit()
}

func (s *SessionService) applyLocked(ctx context.Context, change domain.AlarmChange) bool {
	switch change {
	case domain.AlarmRaise:
		if s.alarmOn {
			return false
		}
		s.raiseLocked(ctx)
		return true
	case domain.AlarmClear:
		if !s.alarmOn {
			return false
		}
		s.clearLocked(ctx)
		return true
	default:
		return false
	}
}

func (s *SessionService) raiseLocked(ctx context.Context) {
	if err := s.alarm.Raise(ctx); err != nil {
		s.log.Warn().Err(err).Msg("raise alarm")
	}
	s.alarmOn = true
	s.metrics.AlarmRaised()
}

func (s *SessionService) clearLocked(ctx context.Context) {
	if err := s.alarm.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear alarm")
	}
	s.alarmOn = false
}

// teardownLocked is the single release path for everything a session
// acquires.
func (s *SessionService) teardownLocked(ctx context.Context) {
	s.monitor.Disarm()
	s.clearLocked(ctx)
	if err := s.fullscreen.Exit(ctx); err != nil {
		s.log.Warn().Err(err).Msg("exit full-screen")
	}
}

func (s *SessionService) toIdleLocked(ctx context.Context) {
	s.teardownLocked(ctx)
	s.phase = domain.PhaseIdle
	s.config = nil
	s.timer = nil
	s.sessionID = ""
	s.origin = ""
	s.startedAt = time.Time{}
	s.progress = 0
}

func (s *SessionService) deferIdleLocked(d time.Duration) {
	s.cancelPendingLocked()
	epoch := s.epoch
	s.pending = s.scheduler.AfterFunc(d, func() {
		s.mu.Lock()
		if s.epoch != epoch {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		s.toIdleLocked(context.Background())
		s.commit()
	})
}

func (s *SessionService) cancelPendingLocked() {
	s.epoch++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *SessionService) archiveLocked(ctx context.Context, outcome domain.Outcome) {
	record := domain.Record{
		ID:        s.sessionID,
		Origin:    s.origin,
		Outcome:   outcome,
		StartedAt: s.startedAt,
		EndedAt:   s.clock.Now(),
		Progress:  s.progress,
	}
	if s.timer != nil {
		record.PlannedSeconds = s.timer.Duration()
		record.ElapsedTicks = s.timer.Duration() - s.timer.Remaining()
	}
	if s.history != nil {
		if err := s.history.Append(ctx, record); err != nil {
			s.log.Warn().Err(err).Str("session_id", record.ID).Msg("append session history")
		}
	}
	if s.journal != nil {
		if path, err := s.journal.Write(ctx, record); err != nil {
			s.log.Warn().Err(err).Str("session_id", record.ID).Msg("write session journal")
		} else {
			s.log.Debug().Str("path", path).Msg("session journal written")
		}
	}
}

func (s *SessionService) History(ctx context.Context, limit int) ([]domain.Record, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

func (s *SessionService) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	if s.history == nil {
		return domain.Summary{}, nil
	}
	return s.history.Summary(ctx, since)
}
