package out

import (
	"context"
	"time"

	"focusfence/internal/modules/session/domain"
)

// Fullscreen is the exclusive presentation surface. Enter and Exit must be
// safe to call repeatedly.
type Fullscreen interface {
	Enter(ctx context.Context) error
	Exit(ctx context.Context) error
}

// Alarm is the out-of-band attention signal. Raise and Clear must be safe to
// call repeatedly.
type Alarm interface {
	Raise(ctx context.Context) error
	Clear(ctx context.Context) error
}

type RewardRecorder interface {
	RecordCompletion(ctx context.Context) (totalTrees int, err error)
}

type HistoryStore interface {
	Append(ctx context.Context, record domain.Record) error
	List(ctx context.Context, limit int) ([]domain.Record, error)
	Summary(ctx context.Context, since time.Time) (domain.Summary, error)
}

type JournalStore interface {
	Write(ctx context.Context, record domain.Record) (string, error)
}
