package models

import (
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

type SavingStatus int32

const (
	SavingIdle SavingStatus = iota
	SavingInFlight
	SavingError
)

func (s SavingStatus) String() string {
	switch s {
	case SavingInFlight:
		return "saving"
	case SavingError:
		return "error"
	default:
		return "idle"
	}
}

// NapSegment is one of the five ordered divisions of a day (naps 1-4, then
// night). WakeUpTime is the raw stored field; SleepTime and PutDownTime are
// derived and never persisted. Cached marks data served from the offline
// store, which makes the segment read-only.
type NapSegment struct {
	BabyID int    `json:"baby_id"`
	Day    string `json:"day"`
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Cached bool   `json:"cached"`

	WakeUpTime  string `json:"wake_up_time,omitempty"`
	AwakeWindow int    `json:"awake_window"`
	CalmDown    int    `json:"calm_down_time"`

	SleepTime            time.Time `json:"-"`
	SleepTimeFormatted   string    `json:"sleep_time,omitempty"`
	PutDownTime          time.Time `json:"-"`
	PutDownTimeFormatted string    `json:"put_down_time,omitempty"`

	saving atomic.Int32
}

func (n *NapSegment) HasWakeUp() bool {
	return n.WakeUpTime != ""
}

func (n *NapSegment) SavingStatus() SavingStatus {
	return SavingStatus(n.saving.Load())
}

// TryBeginSave transitions idle or error to in-flight. Returns false when a
// save is already running, so concurrent saves on the same segment collapse
// to one.
func (n *NapSegment) TryBeginSave() bool {
	return n.saving.CompareAndSwap(int32(SavingIdle), int32(SavingInFlight)) ||
		n.saving.CompareAndSwap(int32(SavingError), int32(SavingInFlight))
}

func (n *NapSegment) FinishSave(ok bool) {
	if ok {
		n.saving.Store(int32(SavingIdle))
	} else {
		n.saving.Store(int32(SavingError))
	}
}

// Clone returns a detached copy carrying the segment's current saving
// status. The copy shares no state with the original, so it may be read or
// serialized while the original keeps changing.
func (n *NapSegment) Clone() *NapSegment {
	c := &NapSegment{
		BabyID: n.BabyID,
		Day:    n.Day,
		Index:  n.Index,
		Label:  n.Label,
		Cached: n.Cached,

		WakeUpTime:  n.WakeUpTime,
		AwakeWindow: n.AwakeWindow,
		CalmDown:    n.CalmDown,

		SleepTime:            n.SleepTime,
		SleepTimeFormatted:   n.SleepTimeFormatted,
		PutDownTime:          n.PutDownTime,
		PutDownTimeFormatted: n.PutDownTimeFormatted,
	}
	c.saving.Store(n.saving.Load())
	return c
}

func (n *NapSegment) MarshalJSON() ([]byte, error) {
	type alias NapSegment
	return json.Marshal(&struct {
		*alias
		SavingStatus string `json:"saving_status"`
	}{(*alias)(n), n.SavingStatus().String()})
}
