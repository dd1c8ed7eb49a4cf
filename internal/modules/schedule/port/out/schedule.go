package out

import (
	"context"

	"focusfence/internal/modules/schedule/domain"
)

type ScheduleStore interface {
	// Load returns ErrNoSchedule when nothing usable is stored.
	Load(ctx context.Context) (domain.Schedule, error)
	Save(ctx context.Context, schedule domain.Schedule) error
	Clear(ctx context.Context) error
}

// SessionStarter starts a scheduled session only if none is running.
type SessionStarter interface {
	StartIfIdle(ctx context.Context, minutes int) (sessionID string, started bool, err error)
}
