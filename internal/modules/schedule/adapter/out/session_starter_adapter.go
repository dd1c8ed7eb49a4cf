package out

import (
	"context"
	"errors"

	scheduleout "focusfence/internal/modules/schedule/port/out"
	sessiondto "focusfence/internal/modules/session/dto"
	sessionin "focusfence/internal/modules/session/port/in"
	apperrors "focusfence/internal/platform/errors"
)

type SessionStarterAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionStarterAdapter(sessions sessionin.Usecase) scheduleout.SessionStarter {
	return &SessionStarterAdapter{sessions: sessions}
}

func (a *SessionStarterAdapter) StartIfIdle(ctx context.Context, minutes int) (string, bool, error) {
	snap, err := a.sessions.Start(ctx, sessiondto.StartInput{Minutes: minutes, Origin: "schedule"})
	if errors.Is(err, apperrors.ErrActiveSessionExists) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return snap.SessionID, true, nil
}
