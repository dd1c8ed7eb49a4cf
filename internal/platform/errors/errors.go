package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrNoProfile           = errors.New("no profile")
	ErrRewardLocked        = errors.New("daily reward locked")
	ErrNoSchedule          = errors.New("no schedule configured")
)
