package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	cfg       *config.Config
}

func NewMetricsHandler(version string, cfg *config.Config) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		cfg:       cfg,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version"`
	StartTime string        `json:"start_time"`
	System    SystemMetrics `json:"system"`
	Engine    EngineInfo    `json:"engine"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

// EngineInfo describes how the calculation engine is configured
type EngineInfo struct {
	Notes          int      `json:"notes"`
	Languages      []string `json:"languages"`
	StrictNoteMath bool     `json:"strict_note_math"`
	AuthMode       string   `json:"auth_mode"`
	MIDITempo      int      `json:"midi_tempo"`
}

const (
	bytesToMB = 1024 * 1024
)

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
		Engine: EngineInfo{
			Notes:          len(theory.AllNotes),
			Languages:      []string{string(theory.English), string(theory.Spanish)},
			StrictNoteMath: h.cfg.StrictNoteMath,
			AuthMode:       h.cfg.AuthMode,
			MIDITempo:      h.cfg.MIDITempo,
		},
	}

	c.JSON(http.StatusOK, metrics)
}
