package clock

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// FixedZone returns a location pinned to a whole-hour UTC offset. Day
// boundaries and schedules are computed in it regardless of the host locale.
func FixedZone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	if offsetHours == 0 {
		name = "UTC"
	}
	return time.FixedZone(name, offsetHours*3600)
}

// CalendarDayFor returns the YYYY-MM-DD day key of ts in the given zone.
func CalendarDayFor(ts time.Time, zone *time.Location) string {
	return ts.In(zone).Format(DayLayout)
}

// StartOfDay returns midnight of the day containing ts in zone.
func StartOfDay(ts time.Time, zone *time.Location) time.Time {
	local := ts.In(zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
}
