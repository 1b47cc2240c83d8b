package events

import (
	"time"
)

// Event is implemented by everything published on the bus.
type Event interface {
	// Type identifies the event kind for filtering and logging.
	Type() string
	// Timestamp is when the event occurred.
	Timestamp() time.Time
	// GameID identifies the game the event belongs to.
	GameID() string
}

// EventHandler processes a single event.
type EventHandler func(Event)

// Subscriber receives events it declares interest in.
type Subscriber interface {
	// ID uniquely identifies this subscriber on the bus.
	ID() string
	// HandleEvent processes one event.
	HandleEvent(Event)
	// InterestedIn reports whether this subscriber wants the event type.
	InterestedIn(eventType string) bool
}

// Publisher is the sending side of the bus.
type Publisher interface {
	Publish(Event)
}

// BaseEvent carries the fields common to every event. Concrete events embed
// it and add their own payload.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }
