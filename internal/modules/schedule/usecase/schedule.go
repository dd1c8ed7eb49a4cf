package usecase

import (
	"context"
	"fmt"

	"github.com/gookit/validate"

	"focusfence/internal/modules/schedule/domain"
	scheduledto "focusfence/internal/modules/schedule/dto"
	schedulein "focusfence/internal/modules/schedule/port/in"
	"focusfence/internal/modules/schedule/service"
	apperrors "focusfence/internal/platform/errors"
)

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Save(ctx context.Context, input scheduledto.ScheduleInput) (scheduledto.ScheduleOutput, error) {
	v := validate.Struct(input)
	if !v.Validate() {
		return scheduledto.ScheduleOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, v.Errors.One())
	}
	schedule, err := domain.New(input.StartTime, input.EndTime, input.Days)
	if err != nil {
		return scheduledto.ScheduleOutput{}, err
	}
	saved, err := i.svc.Save(ctx, schedule)
	if err != nil {
		return scheduledto.ScheduleOutput{}, err
	}
	return toOutput(saved), nil
}

func (i *Interactor) Get(ctx context.Context) (scheduledto.ScheduleOutput, error) {
	schedule, err := i.svc.Get(ctx)
	if err != nil {
		return scheduledto.ScheduleOutput{}, err
	}
	return toOutput(schedule), nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Check(ctx context.Context) (scheduledto.CheckOutput, error) {
	decision, err := i.svc.Evaluate(ctx)
	return toCheckOutput(decision), err
}

func (i *Interactor) PollOnce(ctx context.Context) (scheduledto.CheckOutput, error) {
	decision, err := i.svc.PollOnce(ctx)
	return toCheckOutput(decision), err
}

func toOutput(schedule domain.Schedule) scheduledto.ScheduleOutput {
	return scheduledto.ScheduleOutput{
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		Days:      append([]string(nil), schedule.Days...),
	}
}

func toCheckOutput(decision service.Decision) scheduledto.CheckOutput {
	return scheduledto.CheckOutput{
		At:               decision.At,
		Configured:       decision.Configured,
		InWindow:         decision.InWindow,
		RemainingMinutes: decision.RemainingMinutes,
		Started:          decision.Started,
		SessionID:        decision.SessionID,
		WindowUsed:       decision.WindowUsed,
	}
}
