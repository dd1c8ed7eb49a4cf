package dto

import "time"

type ScheduleInput struct {
	StartTime string   `validate:"required"`
	EndTime   string   `validate:"required"`
	Days      []string `validate:"required"`
}

type ScheduleOutput struct {
	StartTime string
	EndTime   string
	Days      []string
}

// CheckOutput is one poll decision.
type CheckOutput struct {
	At               time.Time
	Configured       bool
	InWindow         bool
	RemainingMinutes int
	Started          bool
	SessionID        string
	WindowUsed       bool
}
