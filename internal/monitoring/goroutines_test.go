package monitoring

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGoroutineMonitorMetrics(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop())

	m := gm.Metrics()
	assert.Equal(t, m.Baseline, m.Current)
	assert.Equal(t, m.Baseline, m.Peak)
	assert.Zero(t, m.Growth)
}

func TestGoroutineMonitorSampleTracksPeak(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop())

	stop := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() { <-stop }()
	}
	gm.sample()
	close(stop)

	m := gm.Metrics()
	assert.GreaterOrEqual(t, m.Peak, m.Baseline)
	assert.GreaterOrEqual(t, m.Current, m.Baseline)
}

func TestGoroutineMonitorStartStop(t *testing.T) {
	gm := NewGoroutineMonitor(zerolog.Nop())
	gm.checkInterval = 10 * time.Millisecond

	gm.Start()
	time.Sleep(30 * time.Millisecond)
	gm.Stop()

	m := gm.Metrics()
	assert.GreaterOrEqual(t, m.Current, 1)
}
