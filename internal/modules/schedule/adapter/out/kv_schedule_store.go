package out

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"focusfence/internal/modules/schedule/domain"
	scheduleout "focusfence/internal/modules/schedule/port/out"
	apperrors "focusfence/internal/platform/errors"
)

const keySchedule = "schedule"

type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type KVScheduleStore struct {
	kv KeyValue
}

func NewKVScheduleStore(kv KeyValue) scheduleout.ScheduleStore {
	return &KVScheduleStore{kv: kv}
}

// Load treats a stored value that no longer decodes or validates as absent.
func (s *KVScheduleStore) Load(ctx context.Context) (domain.Schedule, error) {
	raw, ok, err := s.kv.Get(ctx, keySchedule)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("read schedule: %w", err)
	}
	if !ok {
		return domain.Schedule{}, apperrors.ErrNoSchedule
	}
	schedule := domain.Schedule{}
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		return domain.Schedule{}, fmt.Errorf("decode schedule: %v: %w", err, apperrors.ErrNoSchedule)
	}
	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, fmt.Errorf("stored schedule: %v: %w", err, apperrors.ErrNoSchedule)
	}
	return schedule, nil
}

func (s *KVScheduleStore) Save(ctx context.Context, schedule domain.Schedule) error {
	payload, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	if err := s.kv.Set(ctx, keySchedule, string(payload)); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

func (s *KVScheduleStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, keySchedule)
}
