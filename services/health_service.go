package services

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

var uptimeStart = time.Now()

// Pinger is the part of a database handle the health checks need.
type Pinger interface {
	PingContext(ctx context.Context) error
	GetStats() sql.DBStats
}

type serverHealthStatus struct {
	Uptime       float64   `json:"uptime"`       // in seconds
	CurrentTime  time.Time `json:"current_time"` // server current time
	ServiceAlive bool      `json:"service_alive"`
	RamStats     *RamStats `json:"ram_stats"`
}

type RamStats struct {
	TotalMB     uint64 `json:"total_mb"`
	UsedMB      uint64 `json:"used_mb"`
	FreeMB      uint64 `json:"free_mb"`
	UsedPercent uint64 `json:"used_percent"`
}

type dependencyHealthStatus struct {
	Connected      bool      `json:"connected"`
	LastChecked    time.Time `json:"last_checked"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Pool           any       `json:"pool,omitempty"`
}

type HealthService struct {
	logger *gecho.Logger
	db     Pinger
	cache  *CacheService
}

func NewHealthService(logger *gecho.Logger, db Pinger, cache *CacheService) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

func getRamStats() *RamStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	totalMB := m.Sys / 1024 / 1024
	usedMB := m.Alloc / 1024 / 1024
	usedPercent := uint64(0)
	if totalMB > 0 {
		usedPercent = (usedMB * 100) / totalMB
	}

	return &RamStats{
		TotalMB:     totalMB,
		UsedMB:      usedMB,
		FreeMB:      totalMB - usedMB,
		UsedPercent: usedPercent,
	}
}

func (hs *HealthService) GetServerHealthStatus() serverHealthStatus {
	return serverHealthStatus{
		Uptime:       time.Since(uptimeStart).Seconds(),
		CurrentTime:  time.Now(),
		ServiceAlive: true,
		RamStats:     getRamStats(),
	}
}

func timedCheck(check func() error) (dependencyHealthStatus, error) {
	start := time.Now()
	err := check()
	return dependencyHealthStatus{
		Connected:      err == nil,
		LastChecked:    time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}, err
}

func (hs *HealthService) GetDatabaseHealthStatus(ctx context.Context) (dependencyHealthStatus, error) {
	status, err := timedCheck(func() error {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return hs.db.PingContext(ctx)
	})
	if err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
	}
	stats := hs.db.GetStats()
	status.Pool = map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
	}
	return status, err
}

func (hs *HealthService) GetCacheHealthStatus(ctx context.Context) (dependencyHealthStatus, error) {
	status, err := timedCheck(func() error { return hs.cache.Ping(ctx) })
	if err != nil && hs.cache.Enabled() {
		hs.logger.Error("Cache health check failed", gecho.Field("error", err))
	}
	status.Pool = hs.cache.GetConnectionStats()
	return status, err
}
