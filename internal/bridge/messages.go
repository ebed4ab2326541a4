// Package bridge forwards domain events from the pub/sub hub into the
// Bubble Tea program as messages.
package bridge

import (
	"github.com/velachat/vela/internal/events"
	"github.com/velachat/vela/internal/pubsub"
)

// ChatEventMsg wraps a chat state event for the TUI.
type ChatEventMsg struct {
	Event pubsub.Event[events.ChatEvent]
}

// ConnEventMsg wraps a connection lifecycle event for the TUI.
type ConnEventMsg struct {
	Event pubsub.Event[events.ConnEvent]
}

// AuthEventMsg wraps an auth event for the TUI.
type AuthEventMsg struct {
	Event pubsub.Event[events.AuthEvent]
}
