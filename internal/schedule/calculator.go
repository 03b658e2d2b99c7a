package schedule

import (
	"fmt"
	"time"

	"babydbg/internal/models"
)

const (
	SegmentsPerDay  = 5
	DefaultCalmDown = 15

	MinAwakeWindow  = 30
	MaxAwakeWindow  = 180
	AwakeWindowStep = 5
	MaxCalmDown     = 60
)

// segmentDefaults drives per-index variance: label plus the awake window used
// when the upstream record has no data for that index. Index 5 is the night
// segment.
var segmentDefaults = [SegmentsPerDay]struct {
	Label       string
	AwakeWindow int
}{
	{"nap 1", 80},
	{"nap 2", 95},
	{"nap 3", 95},
	{"nap 4", 90},
	{"night", 105},
}

// DefaultAwakeWindow returns the documented default for a 1-based segment index.
func DefaultAwakeWindow(index int) int {
	return segmentDefaults[index-1].AwakeWindow
}

func SegmentLabel(index int) string {
	return segmentDefaults[index-1].Label
}

// Estimate derives sleep and put-down times from a segment's raw fields:
// sleep = wakeUp + awakeWindow, putDown = sleep - calmDown, minute arithmetic
// anchored to the segment's calendar day. A sum past midnight rolls into the
// next date transparently. No-op when the wake-up time is unset. Idempotent.
func Estimate(seg *models.NapSegment) error {
	if !seg.HasWakeUp() {
		return nil
	}
	wakeUp, err := models.ParseClock(seg.Day, seg.WakeUpTime)
	if err != nil {
		return fmt.Errorf("segment %d: bad wake-up time %q: %w", seg.Index, seg.WakeUpTime, err)
	}
	seg.SleepTime = wakeUp.Add(time.Duration(seg.AwakeWindow) * time.Minute)
	seg.SleepTimeFormatted = models.FormatClock(seg.SleepTime)
	seg.PutDownTime = seg.SleepTime.Add(-time.Duration(seg.CalmDown) * time.Minute)
	seg.PutDownTimeFormatted = models.FormatClock(seg.PutDownTime)
	return nil
}

// NewSegment returns an unset segment carrying only its index defaults.
func NewSegment(babyID int, day string, index int) *models.NapSegment {
	return &models.NapSegment{
		BabyID:      babyID,
		Day:         day,
		Index:       index,
		Label:       SegmentLabel(index),
		AwakeWindow: DefaultAwakeWindow(index),
		CalmDown:    DefaultCalmDown,
	}
}

// ReconcileDay turns an upstream day record into the five segments of the
// day. A nil record is the valid "no data yet" state: every segment keeps its
// defaults, stays editable and has no wake-up time. Indices present in the
// record are populated and estimated; their cached flag follows the record's,
// so cache-served data propagates read-only segments. Defaulted segments are
// never cached — there is nothing to protect.
func ReconcileDay(babyID int, day string, record *models.DayRecord) ([]*models.NapSegment, error) {
	segments := make([]*models.NapSegment, SegmentsPerDay)
	for i := range segments {
		index := i + 1
		seg := NewSegment(babyID, day, index)
		if nap := record.Nap(index); nap != nil {
			seg.WakeUpTime = nap.WakeUpTime
			seg.AwakeWindow = nap.AwakeWindow
			seg.CalmDown = nap.CalmDownTime
			seg.Cached = record.Cached
			if err := Estimate(seg); err != nil {
				return nil, err
			}
		}
		segments[i] = seg
	}
	return segments, nil
}
