package schedule

import (
	"fmt"

	"babydbg/internal/models"
)

type Totals struct {
	NapMinutes   int
	AwakeMinutes int
}

// ComputeTotals sums the day across its segments. Awake time is the sum of
// awake windows over segments with a wake-up time. Naptime chains each
// segment's wake-up time against the previous segment's derived sleep time:
// the gap between putting the baby down and it waking again. Segments with no
// wake-up time are excluded from both sums, as are nap gaps whose previous
// segment is unset.
func ComputeTotals(segments []*models.NapSegment) Totals {
	var totals Totals
	for i, seg := range segments {
		if !seg.HasWakeUp() {
			continue
		}
		totals.AwakeMinutes += seg.AwakeWindow
		if i == 0 {
			continue
		}
		prev := segments[i-1]
		if !prev.HasWakeUp() {
			continue
		}
		wake, err := models.ParseClock(seg.Day, seg.WakeUpTime)
		if err != nil {
			continue
		}
		// Hour/minute decomposition, not full date subtraction, so a sleep
		// time that rolled past midnight still compares on the wall clock.
		totals.NapMinutes += (wake.Hour()-prev.SleepTime.Hour())*60 +
			wake.Minute() - prev.SleepTime.Minute()
	}
	return totals
}

// FormatDuration renders minute totals for display: "45 minutes" under an
// hour, "1hrs 30mins" from an hour up. Integer decomposition, no rounding.
func FormatDuration(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%d minutes", mins)
	}
	return fmt.Sprintf("%dhrs %dmins", mins/60, mins%60)
}
