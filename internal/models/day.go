package models

import "strconv"

// DayRecord is the upstream wire format for one baby's calendar day.
// Nap indices with no data are absent from Naps, never zero-filled.
type DayRecord struct {
	Baby   Baby            `json:"baby"`
	Day    string          `json:"day"`
	Naps   map[string]*Nap `json:"naps"`
	Cached bool            `json:"cached,omitempty"`
}

type Baby struct {
	Name string `json:"name"`
}

// BabyInfo is one entry of the upstream babies listing.
type BabyInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Nap struct {
	WakeUpTime   string `json:"wake_up_time"`
	AwakeWindow  int    `json:"awake_window"`
	CalmDownTime int    `json:"calm_down_time"`
}

// Nap returns the stored nap for a segment index, or nil when absent.
func (d *DayRecord) Nap(index int) *Nap {
	if d == nil || d.Naps == nil {
		return nil
	}
	return d.Naps[strconv.Itoa(index)]
}
