package domain

import (
	"fmt"
	"time"

	apperrors "focusfence/internal/platform/errors"
)

const SchemaVersion = 1

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseActive    Phase = "active"
	PhaseCompleted Phase = "completed"
	PhaseWithered  Phase = "withered"
)

type Origin string

const (
	OriginManual   Origin = "manual"
	OriginSchedule Origin = "schedule"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeWithered  Outcome = "withered"
	OutcomeAbandoned Outcome = "abandoned"
)

type SessionConfig struct {
	DurationSeconds int
}

func (c SessionConfig) Validate() error {
	if c.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", apperrors.ErrInvalidInput, c.DurationSeconds)
	}
	return nil
}

// Snapshot is a read-only view of the controller. Version grows with every
// transition so observers can drop out-of-order deliveries.
type Snapshot struct {
	Version          uint64
	Phase            Phase
	SessionID        string
	Origin           Origin
	DurationSeconds  int
	RemainingSeconds int
	Progress         float64
	Alarm            bool
	StartedAt        time.Time
}

func (s Snapshot) Growth() Growth {
	return Grow(s.Progress, s.Phase == PhaseWithered)
}

// Record is one finished session as kept in history.
type Record struct {
	ID             string
	Origin         Origin
	Outcome        Outcome
	StartedAt      time.Time
	EndedAt        time.Time
	PlannedSeconds int
	ElapsedTicks   int
	Progress       float64
}

type Summary struct {
	Completed    int
	Withered     int
	Abandoned    int
	FocusedTicks int
}
