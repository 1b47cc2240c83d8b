// Package replay records game events to disk as JSON lines so that finished
// games can be replayed or inspected after the fact. One file is written per
// game, rotated when it grows past the configured size.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hexciv/hexciv/internal/game/events"
)

// ErrRecorderClosed is returned when events are recorded after Close.
var ErrRecorderClosed = errors.New("replay recorder is closed")

// Config contains settings for the replay recorder.
type Config struct {
	// BaseDir is the directory replay files are written to.
	BaseDir string
	// MaxFileSize is the size in bytes after which the current file is rotated.
	MaxFileSize int64
	// FlushInterval controls how often buffered events are flushed to disk.
	FlushInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(baseDir string) Config {
	return Config{
		BaseDir:       baseDir,
		MaxFileSize:   16 * 1024 * 1024,
		FlushInterval: 5 * time.Second,
	}
}

// Recorder subscribes to a game's event bus and appends every event to a
// JSON-lines file. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	cfg      Config
	gameID   string
	file     *os.File
	writer   *bufio.Writer
	written  int64
	sequence int
	closed   bool
	stopChan chan struct{}
	doneChan chan struct{}
	logger   zerolog.Logger
}

// NewRecorder creates a recorder for the given game and opens its first file.
func NewRecorder(cfg Config, gameID string, logger zerolog.Logger) (*Recorder, error) {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 16 * 1024 * 1024
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating replay directory: %w", err)
	}

	r := &Recorder{
		cfg:      cfg,
		gameID:   gameID,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
		logger:   logger.With().Str("component", "replay").Str("game_id", gameID).Logger(),
	}
	if err := r.openFile(); err != nil {
		return nil, err
	}

	go r.flushLoop()
	r.logger.Info().Str("dir", cfg.BaseDir).Msg("Replay recording started")
	return r, nil
}

// ID implements events.Subscriber.
func (r *Recorder) ID() string {
	return "replay-recorder-" + r.gameID
}

// InterestedIn implements events.Subscriber. The recorder keeps every event.
func (r *Recorder) InterestedIn(eventType string) bool {
	return true
}

// HandleEvent implements events.Subscriber.
func (r *Recorder) HandleEvent(event events.Event) {
	if err := r.Record(event); err != nil {
		r.logger.Error().Err(err).Str("event_type", event.Type()).Msg("Failed to record event")
	}
}

// Record appends a single event to the current replay file.
func (r *Recorder) Record(event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRecorderClosed
	}
	if r.written+int64(len(data))+1 > r.cfg.MaxFileSize {
		if err := r.rotateLocked(); err != nil {
			return err
		}
	}

	n, err := r.writer.Write(append(data, '\n'))
	if err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	r.written += int64(n)
	return nil
}

// Flush forces buffered events onto disk.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	return r.writer.Flush()
}

// Close flushes and closes the current file. Further Record calls fail.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.stopChan)
	flushErr := r.writer.Flush()
	closeErr := r.file.Close()
	r.mu.Unlock()

	<-r.doneChan
	r.logger.Info().Msg("Replay recording stopped")
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Path returns the file currently being written.
func (r *Recorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return ""
	}
	return r.file.Name()
}

func (r *Recorder) openFile() error {
	name := fmt.Sprintf("%s_%03d.jsonl", r.gameID, r.sequence)
	f, err := os.OpenFile(filepath.Join(r.cfg.BaseDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening replay file: %w", err)
	}
	r.file = f
	r.writer = bufio.NewWriter(f)
	r.written = 0
	r.sequence++
	return nil
}

func (r *Recorder) rotateLocked() error {
	if err := r.writer.Flush(); err != nil {
		return err
	}
	if err := r.file.Close(); err != nil {
		return err
	}
	r.logger.Debug().Int("sequence", r.sequence).Msg("Rotating replay file")
	return r.openFile()
}

func (r *Recorder) flushLoop() {
	defer close(r.doneChan)

	ticker := time.NewTicker(r.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			if !r.closed {
				if err := r.writer.Flush(); err != nil {
					r.logger.Error().Err(err).Msg("Periodic flush failed")
				}
			}
			r.mu.Unlock()
		case <-r.stopChan:
			return
		}
	}
}
