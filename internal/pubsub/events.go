// Package pubsub provides a type-safe pub/sub broker implementation.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event.
type EventType string

// Standard event types.
const (
	EventCreated  EventType = "created"
	EventUpdated  EventType = "updated"
	EventDeleted  EventType = "deleted"
	EventProgress EventType = "progress"
	EventFailed   EventType = "failed"
)

// Event represents a typed event with metadata. ID is unique per
// publish, so subscribers can correlate the same event across logs.
type Event[T any] struct {
	ID        string
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Publisher is the interface for publishing events.
type Publisher[T any] interface {
	Publish(EventType, T)
}

// Subscriber is the interface for subscribing to events.
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}
