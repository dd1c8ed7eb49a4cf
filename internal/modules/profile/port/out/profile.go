package out

import (
	"context"

	"focusfence/internal/modules/profile/domain"
)

// ProfileStore persists the whole profile record; Save overwrites it.
// Load returns apperrors.ErrNoProfile when nothing usable is stored.
type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	LoadTreeCount(ctx context.Context) (int, error)
	// IncrementTreeCount bumps the standalone counter and returns the new value.
	IncrementTreeCount(ctx context.Context) (int, error)
}

type ThemeStore interface {
	LoadTheme(ctx context.Context) (domain.Theme, bool, error)
	SaveTheme(ctx context.Context, theme domain.Theme) error
}
