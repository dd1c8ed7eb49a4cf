package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/validate"

	"focusfence/internal/modules/profile/domain"
	profiledto "focusfence/internal/modules/profile/dto"
	profilein "focusfence/internal/modules/profile/port/in"
	"focusfence/internal/modules/profile/service"
	apperrors "focusfence/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Onboard(ctx context.Context, input profiledto.OnboardInput) (profiledto.ProfileOutput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	v := validate.Struct(input)
	if !v.Validate() {
		return profiledto.ProfileOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, v.Errors.One())
	}
	profile, err := i.svc.Onboard(ctx, input.Name, input.Email)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) Load(ctx context.Context) (profiledto.LoadOutput, error) {
	profile, welcomeBack, err := i.svc.Load(ctx)
	if err != nil {
		return profiledto.LoadOutput{}, err
	}
	return profiledto.LoadOutput{Profile: toOutput(profile), WelcomeBack: welcomeBack}, nil
}

func (i *Interactor) RecordCompletion(ctx context.Context) (profiledto.ProfileOutput, error) {
	profile, err := i.svc.RecordCompletion(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) ClaimDailyReward(ctx context.Context) (profiledto.ProfileOutput, error) {
	profile, err := i.svc.Claim(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) Theme(ctx context.Context) (string, error) {
	theme, err := i.svc.Theme(ctx)
	return string(theme), err
}

// SetTheme stores theme; an empty theme toggles the current one.
func (i *Interactor) SetTheme(ctx context.Context, theme string) (string, error) {
	next := domain.Theme(theme)
	if theme == "" {
		current, err := i.svc.Theme(ctx)
		if err != nil {
			return "", err
		}
		next = current.Toggle()
	}
	if err := i.svc.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return string(next), nil
}

func toOutput(p domain.Profile) profiledto.ProfileOutput {
	m := domain.Milestone(p.TotalTreesPlanted)
	return profiledto.ProfileOutput{
		Name:              p.Name,
		Email:             p.Email,
		LastSeen:          p.LastSeenAt(),
		TotalTreesPlanted: p.TotalTreesPlanted,
		Reward: profiledto.RewardOutput{
			Date:          p.DailyReward.Date,
			SessionsToday: p.DailyReward.SessionsToday,
			Claimed:       p.DailyReward.Claimed,
			Unlocked:      p.DailyReward.Unlocked(),
		},
		Milestone: profiledto.MilestoneOutput{Previous: m.Previous, Next: m.Next, Percent: m.Percent},
	}
}
