package in

import (
	"context"

	sessiondto "focusfence/internal/modules/session/dto"
	sessionin "focusfence/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, minutes int) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Minutes: minutes, Origin: "manual"})
}

func (h CLIHandler) Tick(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Tick(ctx)
}

func (h CLIHandler) EarlyEnd(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.EarlyEnd(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) sessiondto.SnapshotOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) VisibilityChanged(ctx context.Context, hidden bool) sessiondto.SnapshotOutput {
	return h.usecase.VisibilityChanged(ctx, hidden)
}

func (h CLIHandler) FullscreenLost(ctx context.Context) sessiondto.SnapshotOutput {
	return h.usecase.FullscreenLost(ctx)
}

func (h CLIHandler) Snapshot() sessiondto.SnapshotOutput {
	return h.usecase.Snapshot()
}

func (h CLIHandler) Preview(minutes int) sessiondto.GrowthOutput {
	return h.usecase.Preview(minutes)
}

func (h CLIHandler) Subscribe(fn func(sessiondto.SnapshotOutput)) func() {
	return h.usecase.Subscribe(fn)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.RecordOutput, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) Stats(ctx context.Context) (sessiondto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
