package in

import (
	"context"

	scheduledto "focusfence/internal/modules/schedule/dto"
	schedulein "focusfence/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Set(ctx context.Context, start, end string, days []string) (scheduledto.ScheduleOutput, error) {
	return h.usecase.Save(ctx, scheduledto.ScheduleInput{StartTime: start, EndTime: end, Days: days})
}

func (h CLIHandler) Show(ctx context.Context) (scheduledto.ScheduleOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Check(ctx context.Context) (scheduledto.CheckOutput, error) {
	return h.usecase.Check(ctx)
}
