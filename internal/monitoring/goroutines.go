// Package monitoring provides lightweight runtime health checks for
// long-running server processes.
package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GoroutineMonitor samples the process goroutine count on an interval and
// warns when it climbs past a threshold, which usually means a connection
// handler or worker is leaking.
type GoroutineMonitor struct {
	mu             sync.RWMutex
	baseline       int
	current        int
	peak           int
	checkInterval  time.Duration
	alertThreshold int
	lastAlert      time.Time
	alertCooldown  time.Duration
	stopChan       chan struct{}
	doneChan       chan struct{}
	logger         zerolog.Logger
}

// GoroutineMetrics is a point-in-time view of the monitor's counters.
type GoroutineMetrics struct {
	Current  int `json:"current"`
	Baseline int `json:"baseline"`
	Peak     int `json:"peak"`
	Growth   int `json:"growth"`
}

// NewGoroutineMonitor creates a monitor with the current goroutine count as
// its baseline.
func NewGoroutineMonitor(logger zerolog.Logger) *GoroutineMonitor {
	baseline := runtime.NumGoroutine()
	return &GoroutineMonitor{
		baseline:       baseline,
		current:        baseline,
		peak:           baseline,
		checkInterval:  30 * time.Second,
		alertThreshold: 1000,
		alertCooldown:  5 * time.Minute,
		stopChan:       make(chan struct{}),
		doneChan:       make(chan struct{}),
		logger:         logger.With().Str("component", "monitoring").Logger(),
	}
}

// Start begins the sampling loop.
func (gm *GoroutineMonitor) Start() {
	go gm.monitor()
	gm.logger.Info().Int("baseline", gm.baseline).Msg("Started goroutine monitoring")
}

// Stop terminates the sampling loop and waits for it to exit.
func (gm *GoroutineMonitor) Stop() {
	close(gm.stopChan)
	<-gm.doneChan
}

func (gm *GoroutineMonitor) monitor() {
	defer close(gm.doneChan)

	ticker := time.NewTicker(gm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.sample()
		case <-gm.stopChan:
			return
		}
	}
}

func (gm *GoroutineMonitor) sample() {
	current := runtime.NumGoroutine()

	gm.mu.Lock()
	gm.current = current
	if current > gm.peak {
		gm.peak = current
	}
	growth := current - gm.baseline
	shouldAlert := current > gm.alertThreshold &&
		time.Since(gm.lastAlert) > gm.alertCooldown
	if shouldAlert {
		gm.lastAlert = time.Now()
	}
	gm.mu.Unlock()

	gm.logger.Debug().
		Int("current", current).
		Int("baseline", gm.baseline).
		Int("peak", gm.peak).
		Int("growth", growth).
		Msg("Goroutine metrics")

	if shouldAlert {
		gm.logger.Warn().
			Int("current", current).
			Int("threshold", gm.alertThreshold).
			Msg("High goroutine count, possible leak")
	}
}

// Metrics returns the monitor's current counters.
func (gm *GoroutineMonitor) Metrics() GoroutineMetrics {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return GoroutineMetrics{
		Current:  gm.current,
		Baseline: gm.baseline,
		Peak:     gm.peak,
		Growth:   gm.current - gm.baseline,
	}
}
