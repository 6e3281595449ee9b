package modelbuild

import (
	"sync"
	"time"
)

// EventType represents the type of a build event.
type EventType string

const (
	EventStateAdded       EventType = "state_added"
	EventSuperstateOpened EventType = "superstate_opened"
	EventSuperstateClosed EventType = "superstate_closed"
	EventTransitionAdded  EventType = "transition_added"
	EventTokenDropped     EventType = "token_dropped"
)

// Event is an observable build event with typed data.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events.
type EventEmitter struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{listeners: make([]func(Event), 0)}
}

// On registers a listener function to receive events.
// Listeners are called synchronously in registration order.
func (e *EventEmitter) On(listener func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners.
func (e *EventEmitter) Emit(eventType EventType, data map[string]any) {
	e.mu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	event := Event{Type: eventType, Timestamp: time.Now(), Data: data}
	for _, listener := range listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
