package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"babydbg/internal/providers"
	"babydbg/internal/structures"
)

type HealthController struct {
	store     providers.StoreProviderInterface
	conf      *structures.Config
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	OfflineVersion string  `json:"offline_version"`
	StoreEntries   int     `json:"store_entries"`
	Upstream       string  `json:"upstream"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:         "ok",
		Uptime:         formatUptime(uptime),
		UptimeSeconds:  uptime.Seconds(),
		OfflineVersion: hc.conf.Offline.Version,
		StoreEntries:   hc.store.EntryCount(),
		Upstream:       hc.conf.Upstream.BaseURL,
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(store providers.StoreProviderInterface, conf *structures.Config) *HealthController {
	return &HealthController{
		store:     store,
		conf:      conf,
		startTime: time.Now(),
	}
}
