package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus is a synchronous in-process event bus. Handlers run on the
// publishing goroutine in registration order; a panicking handler is isolated
// so it cannot take down the publisher or the remaining handlers.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  map[string]Subscriber
	funcHandlers map[string][]EventHandler
	logger       zerolog.Logger
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]EventHandler),
		logger:       log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a subscriber under its ID. Registering the same ID
// again replaces the previous subscriber.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	eb.subscribers[subscriber.ID()] = subscriber
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber registered")
}

// Unsubscribe removes the subscriber with the given ID, if present.
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	delete(eb.subscribers, subscriberID)
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed")
}

// SubscribeFunc registers a handler for one event type and returns an ID for
// logging purposes. Func handlers cannot be removed individually.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)
	handlerID := fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler registered")
	return handlerID
}

// Publish delivers an event to every interested subscriber and every func
// handler registered for its type, synchronously.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for id, subscriber := range eb.subscribers {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.dispatch(event, id, subscriber.HandleEvent)
	}
	for i, handler := range eb.funcHandlers[eventType] {
		eb.dispatch(event, fmt.Sprintf("%s_func_%d", eventType, i+1), handler)
	}
}

// dispatch runs one handler with panic isolation.
func (eb *EventBus) dispatch(event Event, handlerID string, handler EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", handlerID).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Handler panicked while handling event")
		}
	}()
	handler(event)
}

// SubscriberCount returns the number of registered object subscribers.
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// FuncHandlerCount returns the number of func handlers for an event type.
func (eb *EventBus) FuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
