package models

import "time"

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock anchors a wall-clock "HH:MM" value to its calendar day.
func ParseClock(day, clock string) (time.Time, error) {
	return time.Parse(DayLayout+"T"+ClockLayout, day+"T"+clock)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
