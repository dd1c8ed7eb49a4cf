package usecase

import (
	"context"
	"fmt"
	"time"

	"focusfence/internal/modules/session/domain"
	"focusfence/internal/modules/session/dto"
	sessionin "focusfence/internal/modules/session/port/in"
	"focusfence/internal/modules/session/service"
	"focusfence/internal/platform/clock"
	apperrors "focusfence/internal/platform/errors"
)

// StatsWindow is how far back Stats looks.
const StatsWindow = 7 * 24 * time.Hour

type Interactor struct {
	svc   *service.SessionService
	clock clock.Clock
	zone  *time.Location
}

var _ sessionin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.SessionService, clk clock.Clock, zone *time.Location) *Interactor {
	return &Interactor{svc: svc, clock: clk, zone: zone}
}

// Start rejects anything below one whole minute before touching the
// controller.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SnapshotOutput, error) {
	if input.Minutes < 1 {
		return dto.SnapshotOutput{}, fmt.Errorf("%w: minutes must be at least 1, got %d", apperrors.ErrInvalidInput, input.Minutes)
	}
	origin := domain.Origin(input.Origin)
	switch origin {
	case "":
		origin = domain.OriginManual
	case domain.OriginManual, domain.OriginSchedule:
	default:
		return dto.SnapshotOutput{}, fmt.Errorf("%w: unknown origin %q", apperrors.ErrInvalidInput, input.Origin)
	}
	snap, err := i.svc.Start(ctx, domain.SessionConfig{DurationSeconds: input.Minutes * 60}, origin)
	return toSnapshotOutput(snap), err
}

func (i *Interactor) Tick(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, err := i.svc.Tick(ctx)
	return toSnapshotOutput(snap), err
}

func (i *Interactor) EarlyEnd(ctx context.Context) (dto.SnapshotOutput, error) {
	snap, err := i.svc.EarlyEnd(ctx)
	return toSnapshotOutput(snap), err
}

func (i *Interactor) Reset(ctx context.Context) dto.SnapshotOutput {
	return toSnapshotOutput(i.svc.Reset(ctx))
}

func (i *Interactor) VisibilityChanged(ctx context.Context, hidden bool) dto.SnapshotOutput {
	return toSnapshotOutput(i.svc.VisibilityChanged(ctx, hidden))
}

func (i *Interactor) FullscreenLost(ctx context.Context) dto.SnapshotOutput {
	return toSnapshotOutput(i.svc.FullscreenLost(ctx))
}

func (i *Interactor) Snapshot() dto.SnapshotOutput {
	return toSnapshotOutput(i.svc.Snapshot())
}

func (i *Interactor) Preview(minutes int) dto.GrowthOutput {
	return toGrowthOutput(domain.Preview(minutes))
}

func (i *Interactor) Subscribe(fn func(dto.SnapshotOutput)) func() {
	return i.svc.Subscribe(func(snap domain.Snapshot) {
		fn(toSnapshotOutput(snap))
	})
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.RecordOutput, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperrors.ErrInvalidInput)
	}
	records, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, dto.RecordOutput{
			ID:             record.ID,
			Origin:         string(record.Origin),
			Outcome:        string(record.Outcome),
			StartedAt:      record.StartedAt,
			EndedAt:        record.EndedAt,
			PlannedSeconds: record.PlannedSeconds,
			ElapsedTicks:   record.ElapsedTicks,
			Progress:       record.Progress,
		})
	}
	return out, nil
}

// Stats summarises the last seven calendar days, today included.
func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	since := clock.StartOfDay(i.clock.Now(), i.zone).Add(-StatsWindow + 24*time.Hour)
	summary, err := i.svc.Summary(ctx, since)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Since:        since,
		Completed:    summary.Completed,
		Withered:     summary.Withered,
		Abandoned:    summary.Abandoned,
		FocusedTicks: summary.FocusedTicks,
	}, nil
}

func toSnapshotOutput(snap domain.Snapshot) dto.SnapshotOutput {
	return dto.SnapshotOutput{
		Version:          snap.Version,
		Phase:            string(snap.Phase),
		SessionID:        snap.SessionID,
		Origin:           string(snap.Origin),
		DurationSeconds:  snap.DurationSeconds,
		RemainingSeconds: snap.RemainingSeconds,
		Progress:         snap.Progress,
		Alarm:            snap.Alarm,
		StartedAt:        snap.StartedAt,
		Growth:           toGrowthOutput(snap.Growth()),
	}
}

func toGrowthOutput(g domain.Growth) dto.GrowthOutput {
	return dto.GrowthOutput{
		TrunkHeight:    g.TrunkHeight,
		FoliageScale:   g.FoliageScale,
		FoliageVisible: g.FoliageVisible,
		Opacity:        g.Opacity,
		Withered:       g.Withered,
	}
}
