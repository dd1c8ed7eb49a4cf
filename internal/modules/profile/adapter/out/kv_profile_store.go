package out

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"focusfence/internal/modules/profile/domain"
	profileout "focusfence/internal/modules/profile/port/out"
	apperrors "focusfence/internal/platform/errors"
	"focusfence/internal/platform/tx"
)

const (
	keyStudentData = "studentData"
	keyTotalTrees  = "totalTreesPlanted"
	keyTheme       = "theme"
)

// KeyValue is the storage surface the profile adapters need.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	tx.Manager
}

type KVProfileStore struct {
	kv KeyValue
}

func NewKVProfileStore(kv KeyValue) profileout.ProfileStore {
	return &KVProfileStore{kv: kv}
}

func (s *KVProfileStore) Load(ctx context.Context) (domain.Profile, error) {
	raw, ok, err := s.kv.Get(ctx, keyStudentData)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if !ok {
		return domain.Profile{}, apperrors.ErrNoProfile
	}
	profile := domain.Profile{}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile: %v: %w", err, apperrors.ErrNoProfile)
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("stored profile: %v: %w", err, apperrors.ErrNoProfile)
	}
	return profile, nil
}

func (s *KVProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return s.kv.Within(ctx, func(ctx context.Context) error {
		if err := s.kv.Set(ctx, keyStudentData, string(payload)); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}
		if err := s.kv.Set(ctx, keyTotalTrees, strconv.Itoa(profile.TotalTreesPlanted)); err != nil {
			return fmt.Errorf("write tree counter: %w", err)
		}
		return nil
	})
}

// LoadTreeCount reads the standalone counter; missing or garbled values
// count as zero.
func (s *KVProfileStore) LoadTreeCount(ctx context.Context) (int, error) {
	raw, ok, err := s.kv.Get(ctx, keyTotalTrees)
	if err != nil {
		return 0, fmt.Errorf("read tree counter: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (s *KVProfileStore) IncrementTreeCount(ctx context.Context) (int, error) {
	var total int
	err := s.kv.Within(ctx, func(ctx context.Context) error {
		n, err := s.LoadTreeCount(ctx)
		if err != nil {
			return err
		}
		total = n + 1
		if err := s.kv.Set(ctx, keyTotalTrees, strconv.Itoa(total)); err != nil {
			return fmt.Errorf("write tree counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

type KVThemeStore struct {
	kv KeyValue
}

func NewKVThemeStore(kv KeyValue) profileout.ThemeStore {
	return &KVThemeStore{kv: kv}
}

func (s *KVThemeStore) LoadTheme(ctx context.Context) (domain.Theme, bool, error) {
	raw, ok, err := s.kv.Get(ctx, keyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	var theme domain.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		return "", false, nil
	}
	return theme, true, nil
}

func (s *KVThemeStore) SaveTheme(ctx context.Context, theme domain.Theme) error {
	payload, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	return s.kv.Set(ctx, keyTheme, string(payload))
}
