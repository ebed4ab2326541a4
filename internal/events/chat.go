// Package events defines the typed domain events published on the hub.
package events

import "time"

// ChatEventType represents chat-state event types.
type ChatEventType string

// Chat event type constants.
const (
	ChatEventListLoaded     ChatEventType = "list_loaded"
	ChatEventCreated        ChatEventType = "created"
	ChatEventSwitched       ChatEventType = "switched"
	ChatEventMessagesLoaded ChatEventType = "messages_loaded"
	ChatEventMessageAdded   ChatEventType = "message_added"
	ChatEventFetchFailed    ChatEventType = "fetch_failed"
	ChatEventCleared        ChatEventType = "cleared"
)

// ChatEvent signals a change in client chat state.
type ChatEvent struct {
	Type      ChatEventType
	ChatID    string
	Timestamp time.Time

	// Optional fields
	MessageID   string // For MessageAdded
	MessageRole string // For MessageAdded
	Err         error  // For FetchFailed
}

// NewChatListLoadedEvent creates a list loaded event.
func NewChatListLoadedEvent() ChatEvent {
	return ChatEvent{Type: ChatEventListLoaded, Timestamp: time.Now()}
}

// NewChatCreatedEvent creates a chat created event.
func NewChatCreatedEvent(chatID string) ChatEvent {
	return ChatEvent{Type: ChatEventCreated, ChatID: chatID, Timestamp: time.Now()}
}

// NewChatSwitchedEvent creates a chat switched event.
func NewChatSwitchedEvent(chatID string) ChatEvent {
	return ChatEvent{Type: ChatEventSwitched, ChatID: chatID, Timestamp: time.Now()}
}

// NewMessagesLoadedEvent creates a messages loaded event.
func NewMessagesLoadedEvent(chatID string) ChatEvent {
	return ChatEvent{Type: ChatEventMessagesLoaded, ChatID: chatID, Timestamp: time.Now()}
}

// NewMessageAddedEvent creates a message added event.
func NewMessageAddedEvent(chatID, messageID, role string) ChatEvent {
	return ChatEvent{
		Type:        ChatEventMessageAdded,
		ChatID:      chatID,
		MessageID:   messageID,
		MessageRole: role,
		Timestamp:   time.Now(),
	}
}

// NewFetchFailedEvent creates a fetch failed event.
func NewFetchFailedEvent(chatID string, err error) ChatEvent {
	return ChatEvent{Type: ChatEventFetchFailed, ChatID: chatID, Err: err, Timestamp: time.Now()}
}

// NewChatStateClearedEvent creates a cleared event (sign-out reset).
func NewChatStateClearedEvent() ChatEvent {
	return ChatEvent{Type: ChatEventCleared, Timestamp: time.Now()}
}
