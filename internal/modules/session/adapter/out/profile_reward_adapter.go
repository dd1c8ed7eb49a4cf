package out

import (
	"context"

	profilein "focusfence/internal/modules/profile/port/in"
	sessionout "focusfence/internal/modules/session/port/out"
)

type ProfileRewardAdapter struct {
	profile profilein.Usecase
}

func NewProfileRewardAdapter(profile profilein.Usecase) sessionout.RewardRecorder {
	return &ProfileRewardAdapter{profile: profile}
}

func (a *ProfileRewardAdapter) RecordCompletion(ctx context.Context) (int, error) {
	out, err := a.profile.RecordCompletion(ctx)
	if err != nil {
		return 0, err
	}
	return out.TotalTreesPlanted, nil
}
