package replay

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexciv/hexciv/internal/game/core"
	"github.com/hexciv/hexciv/internal/game/events"
)

func newTestRecorder(t *testing.T, cfg Config) *Recorder {
	t.Helper()
	if cfg.BaseDir == "" {
		cfg.BaseDir = t.TempDir()
	}
	rec, err := NewRecorder(cfg, "game-1", zerolog.Nop())
	require.NoError(t, err)
	return rec
}

func TestRecorderRoundTrip(t *testing.T) {
	rec := newTestRecorder(t, Config{})

	scout := core.NewUnit(3, core.UnitScout, 0, core.NewHex(0, 0))
	require.NoError(t, rec.Record(events.NewTurnStartedEvent("game-1", 0, 1)))
	require.NoError(t, rec.Record(events.NewUnitMovedEvent("game-1", scout, core.NewHex(0, 0), core.NewHex(1, 0), 1)))
	path := rec.Path()
	require.NoError(t, rec.Close())

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, events.TypeTurnStarted, entries[0].Type)
	assert.Equal(t, events.TypeUnitMoved, entries[1].Type)
	assert.Equal(t, "game-1", entries[0].GameID)
	assert.NotEmpty(t, entries[1].Raw)
}

func TestRecorderRotation(t *testing.T) {
	dir := t.TempDir()
	rec := newTestRecorder(t, Config{BaseDir: dir, MaxFileSize: 200})

	first := rec.Path()
	for i := 0; i < 20; i++ {
		require.NoError(t, rec.Record(events.NewTurnStartedEvent("game-1", 0, i)))
	}
	require.NotEqual(t, first, rec.Path())
	require.NoError(t, rec.Close())

	files, err := filepath.Glob(filepath.Join(dir, "game-1_*.jsonl"))
	require.NoError(t, err)
	assert.Greater(t, len(files), 1)
}

func TestRecorderClosedRejectsEvents(t *testing.T) {
	rec := newTestRecorder(t, Config{})
	require.NoError(t, rec.Close())

	err := rec.Record(events.NewTurnStartedEvent("game-1", 0, 1))
	assert.ErrorIs(t, err, ErrRecorderClosed)
	assert.NoError(t, rec.Close(), "second close is a no-op")
}

func TestRecorderOnEventBus(t *testing.T) {
	rec := newTestRecorder(t, Config{})

	bus := events.NewEventBus()
	bus.Subscribe(rec)
	bus.Publish(events.NewGameStartedEvent("game-1", 2, 20))
	bus.Publish(events.NewTurnStartedEvent("game-1", 0, 1))

	path := rec.Path()
	require.NoError(t, rec.Close())

	entries, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, events.TypeGameStarted, entries[0].Type)
}
