package in

import (
	"context"

	"focusfence/internal/modules/profile/dto"
)

type Usecase interface {
	Onboard(ctx context.Context, input dto.OnboardInput) (dto.ProfileOutput, error)
	Load(ctx context.Context) (dto.LoadOutput, error)
	RecordCompletion(ctx context.Context) (dto.ProfileOutput, error)
	ClaimDailyReward(ctx context.Context) (dto.ProfileOutput, error)
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) (string, error)
}
