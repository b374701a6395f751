package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/qsignal/internal/database"
	"github.com/aristath/qsignal/internal/events"
	"github.com/aristath/qsignal/internal/modules/runs"
)

// SystemHandlers provides system monitoring endpoints
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	db        *database.DB
	runsRepo  *runs.Repository
	bus       *events.Bus
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(
	log zerolog.Logger,
	dataDir string,
	db *database.DB,
	runsRepo *runs.Repository,
	bus *events.Bus,
) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("module", "system_handlers").Logger(),
		dataDir:   dataDir,
		db:        db,
		runsRepo:  runsRepo,
		bus:       bus,
		startedAt: time.Now(),
	}
}

// SystemStatusResponse describes the running service and its host
type SystemStatusResponse struct {
	UptimeSeconds  float64 `json:"uptime_seconds"`
	Goroutines     int     `json:"goroutines"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskPercent    float64 `json:"disk_percent"`
	StoredRuns     int64   `json:"stored_runs"`
	Subscribers    int     `json:"subscribers"`
	DatabaseStatus string  `json:"database_status"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, memPercent := h.getSystemStats()

	diskPercent := 0.0
	if usage, err := disk.Usage(h.dataDir); err == nil {
		diskPercent = usage.UsedPercent
	} else {
		h.log.Warn().Err(err).Msg("Failed to get disk usage")
	}

	storedRuns, err := h.runsRepo.Count()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to count stored runs")
	}

	dbStatus := "ok"
	if err := h.db.HealthCheck(r.Context()); err != nil {
		dbStatus = "unreachable"
	}

	response := SystemStatusResponse{
		UptimeSeconds:  time.Since(h.startedAt).Seconds(),
		Goroutines:     runtime.NumGoroutine(),
		CPUPercent:     cpuPercent,
		MemoryPercent:  memPercent,
		DiskPercent:    diskPercent,
		StoredRuns:     storedRuns,
		Subscribers:    h.bus.SubscriberCount(),
		DatabaseStatus: dbStatus,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode system status")
	}
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval so the endpoint responds quickly.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
