package events

import "time"

// ConnEventType represents connection lifecycle event types.
type ConnEventType string

// Connection event type constants.
const (
	ConnEventConnecting   ConnEventType = "connecting"
	ConnEventConnected    ConnEventType = "connected"
	ConnEventDisconnected ConnEventType = "disconnected"
	ConnEventFailed       ConnEventType = "failed"
	ConnEventFrameDropped ConnEventType = "frame_dropped"
)

// ConnEvent signals a transition of the live connection.
type ConnEvent struct {
	Type      ConnEventType
	ChatID    string
	Timestamp time.Time

	// Optional fields
	Err error // For Failed, FrameDropped
}

// NewConnConnectingEvent creates a connecting event.
func NewConnConnectingEvent(chatID string) ConnEvent {
	return ConnEvent{Type: ConnEventConnecting, ChatID: chatID, Timestamp: time.Now()}
}

// NewConnConnectedEvent creates a connected event.
func NewConnConnectedEvent(chatID string) ConnEvent {
	return ConnEvent{Type: ConnEventConnected, ChatID: chatID, Timestamp: time.Now()}
}

// NewConnDisconnectedEvent creates a disconnected event.
func NewConnDisconnectedEvent(chatID string) ConnEvent {
	return ConnEvent{Type: ConnEventDisconnected, ChatID: chatID, Timestamp: time.Now()}
}

// NewConnFailedEvent creates a failed event (handshake or read error).
func NewConnFailedEvent(chatID string, err error) ConnEvent {
	return ConnEvent{Type: ConnEventFailed, ChatID: chatID, Err: err, Timestamp: time.Now()}
}

// NewFrameDroppedEvent creates a frame dropped event (malformed inbound frame).
func NewFrameDroppedEvent(chatID string, err error) ConnEvent {
	return ConnEvent{Type: ConnEventFrameDropped, ChatID: chatID, Err: err, Timestamp: time.Now()}
}
