package schedule

import (
	"fmt"

	"babydbg/internal/models"
)

// Outline renders the day as one interval line per division: the morning
// runs up to the first wake-up, each nap from its own derived sleep time to
// the next segment's wake-up, and the night segment is open-ended. Unset
// times render empty, leaving the line's shape intact.
func Outline(segments []*models.NapSegment) []string {
	if len(segments) == 0 {
		return nil
	}
	lines := make([]string, 0, len(segments)+1)
	lines = append(lines, fmt.Sprintf("morning (...%s)", segments[0].WakeUpTime))
	for i := 0; i < len(segments)-1; i++ {
		lines = append(lines, fmt.Sprintf("%s (%s - %s)",
			segments[i].Label, segments[i].SleepTimeFormatted, segments[i+1].WakeUpTime))
	}
	last := segments[len(segments)-1]
	lines = append(lines, fmt.Sprintf("%s (%s...)", last.Label, last.SleepTimeFormatted))
	return lines
}
