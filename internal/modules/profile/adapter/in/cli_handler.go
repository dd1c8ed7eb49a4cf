package in

import (
	"context"

	profiledto "focusfence/internal/modules/profile/dto"
	profilein "focusfence/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Onboard(ctx context.Context, name, email string) (profiledto.ProfileOutput, error) {
	return h.usecase.Onboard(ctx, profiledto.OnboardInput{Name: name, Email: email})
}

func (h CLIHandler) Load(ctx context.Context) (profiledto.LoadOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) ClaimDailyReward(ctx context.Context) (profiledto.ProfileOutput, error) {
	return h.usecase.ClaimDailyReward(ctx)
}

func (h CLIHandler) Theme(ctx context.Context) (string, error) {
	return h.usecase.Theme(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) (string, error) {
	return h.usecase.SetTheme(ctx, theme)
}
