package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "focusfence/internal/platform/errors"
)

// DayCodes lists the accepted weekday codes in calendar order.
var DayCodes = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var weekdayCode = map[time.Weekday]string{
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
	time.Sunday:    "sun",
}

// Schedule is a recurring same-day focus window.
type Schedule struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Days      []string `json:"days"`
}

// New normalises days to lowercase calendar order without duplicates and
// validates the window.
func New(start, end string, days []string) (Schedule, error) {
	s := Schedule{
		StartTime: strings.TrimSpace(start),
		EndTime:   strings.TrimSpace(end),
		Days:      normaliseDays(days),
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func normaliseDays(days []string) []string {
	seen := map[string]bool{}
	for _, d := range days {
		seen[strings.ToLower(strings.TrimSpace(d))] = true
	}
	out := []string{}
	for _, code := range DayCodes {
		if seen[code] {
			out = append(out, code)
			delete(seen, code)
		}
	}
	for d := range seen {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (s Schedule) Validate() error {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time: %v", apperrors.ErrInvalidInput, err)
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time: %v", apperrors.ErrInvalidInput, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start %s must be before end %s", apperrors.ErrInvalidInput, s.StartTime, s.EndTime)
	}
	if len(s.Days) == 0 {
		return fmt.Errorf("%w: at least one day is required", apperrors.ErrInvalidInput)
	}
	for _, d := range s.Days {
		if !knownDay(d) {
			return fmt.Errorf("%w: unknown day %q", apperrors.ErrInvalidInput, d)
		}
	}
	return nil
}

func knownDay(code string) bool {
	for _, c := range DayCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ParseClock turns "HH:MM" into minutes after midnight.
func ParseClock(hhmm string) (int, error) {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, fmt.Errorf("%q is not HH:MM", hhmm)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%q has an invalid hour", hhmm)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%q has an invalid minute", hhmm)
	}
	return hours*60 + minutes, nil
}

// Match reports the whole minutes left in the window when now, read in
// zone, falls on a scheduled day inside [start, end).
func (s Schedule) Match(now time.Time, zone *time.Location) (int, bool) {
	local := now.In(zone)
	if !s.hasDay(weekdayCode[local.Weekday()]) {
		return 0, false
	}
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return 0, false
	}
	current := local.Hour()*60 + local.Minute()
	if current < start || current >= end {
		return 0, false
	}
	remaining := end - current
	return remaining, remaining > 0
}

func (s Schedule) hasDay(code string) bool {
	for _, d := range s.Days {
		if d == code {
			return true
		}
	}
	return false
}
