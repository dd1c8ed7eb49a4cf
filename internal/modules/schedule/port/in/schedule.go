package in

import (
	"context"

	"focusfence/internal/modules/schedule/dto"
)

type Usecase interface {
	Save(ctx context.Context, input dto.ScheduleInput) (dto.ScheduleOutput, error)
	Get(ctx context.Context) (dto.ScheduleOutput, error)
	Clear(ctx context.Context) error
	// Check evaluates the window without starting anything.
	Check(ctx context.Context) (dto.CheckOutput, error)
	PollOnce(ctx context.Context) (dto.CheckOutput, error)
}
