package in

import (
	"context"

	"focusfence/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SnapshotOutput, error)
	Tick(ctx context.Context) (dto.SnapshotOutput, error)
	EarlyEnd(ctx context.Context) (dto.SnapshotOutput, error)
	Reset(ctx context.Context) dto.SnapshotOutput
	VisibilityChanged(ctx context.Context, hidden bool) dto.SnapshotOutput
	FullscreenLost(ctx context.Context) dto.SnapshotOutput
	Snapshot() dto.SnapshotOutput
	Preview(minutes int) dto.GrowthOutput
	Subscribe(fn func(dto.SnapshotOutput)) (unsubscribe func())
	History(ctx context.Context, limit int) ([]dto.RecordOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
}
