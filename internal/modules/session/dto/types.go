package dto

import "time"

type StartInput struct {
	Minutes int
	Origin  string
}

type GrowthOutput struct {
	TrunkHeight    float64
	FoliageScale   float64
	FoliageVisible bool
	Opacity        float64
	Withered       bool
}

type SnapshotOutput struct {
	Version          uint64
	Phase            string
	SessionID        string
	Origin           string
	DurationSeconds  int
	RemainingSeconds int
	Progress         float64
	Alarm            bool
	StartedAt        time.Time
	Growth           GrowthOutput
}

func (s SnapshotOutput) Active() bool { return s.Phase == "active" }

type RecordOutput struct {
	ID             string
	Origin         string
	Outcome        string
	StartedAt      time.Time
	EndedAt        time.Time
	PlannedSeconds int
	ElapsedTicks   int
	Progress       float64
}

type StatsOutput struct {
	Since        time.Time
	Completed    int
	Withered     int
	Abandoned    int
	FocusedTicks int
}
