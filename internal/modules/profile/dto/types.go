package dto

import "time"

type OnboardInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required|email"`
}

type RewardOutput struct {
	Date          string
	SessionsToday int
	Claimed       bool
	Unlocked      bool
}

type MilestoneOutput struct {
	Previous int
	Next     int
	Percent  float64
}

type ProfileOutput struct {
	Name              string
	Email             string
	LastSeen          time.Time
	TotalTreesPlanted int
	Reward            RewardOutput
	Milestone         MilestoneOutput
}

type LoadOutput struct {
	Profile     ProfileOutput
	WelcomeBack bool
}
