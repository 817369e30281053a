// Package models defines the gin-facing request/response shapes for
// the admin API, separated from the core engine's own types the same
// way the teacher keeps internal/api/models apart from internal/zone's
// wire types.
package models

import "time"

// ErrorResponse is the shape of every non-2xx admin API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the /healthz response body.
type StatusResponse struct {
	Status string `json:"status"`
}

// CPUStats mirrors the teacher's models.CPUStats — system-wide CPU
// usage sampled via gopsutil.
type CPUStats struct {
	NumCPU      int     `json:"num_cpu"`
	UsedPercent float64 `json:"used_percent"`
	IdlePercent float64 `json:"idle_percent"`
}

// MemoryStats mirrors the teacher's models.MemoryStats.
type MemoryStats struct {
	TotalMB     float64 `json:"total_mb"`
	FreeMB      float64 `json:"free_mb"`
	UsedMB      float64 `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// IndexStats summarizes the search index's state for /debug/stats.
type IndexStats struct {
	Engine string `json:"engine"`
}

// StatsResponse is the /debug/stats response body.
type StatsResponse struct {
	Uptime        string     `json:"uptime"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     time.Time  `json:"start_time"`
	CPU           CPUStats   `json:"cpu"`
	Memory        MemoryStats `json:"memory"`
	Index         IndexStats `json:"index"`
}
