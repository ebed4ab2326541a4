// Package models provides the domain types shared across the client:
// chats, messages, and the authenticated user.
//
// Field names and JSON tags mirror the backend's wire format exactly;
// these types are decoded straight off the REST and WebSocket payloads.
package models

import (
	"encoding/json"
	"errors"
	"time"
)

// Role identifies the author of a message.
type Role string

// Role constants. The backend only ever produces these two.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validation errors for Message.
var (
	ErrMissingMessageID = errors.New("message has no id")
	ErrMissingChatID    = errors.New("message has no chat id")
	ErrUnknownRole      = errors.New("message has an unknown role")
)

// MessageMetadata carries optional generation details for assistant messages.
type MessageMetadata struct {
	Model        string  `json:"model,omitempty"`
	ResponseTime float64 `json:"responseTime,omitempty"` // seconds
}

// Message is a single turn in a chat.
type Message struct {
	ID        string           `json:"id"`
	ChatID    string           `json:"chatId"`
	UserID    string           `json:"userId,omitempty"`
	Role      Role             `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// Validate checks that the message carries the fields the store keys on.
func (m *Message) Validate() error {
	if m.ID == "" {
		return ErrMissingMessageID
	}
	if m.ChatID == "" {
		return ErrMissingChatID
	}
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return ErrUnknownRole
	}
	return nil
}

// ParseMessage decodes a JSON frame into a Message and validates it.
// Frames that do not decode to a well-formed message are rejected so the
// connection read loop can drop them without touching client state.
func ParseMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	if err := msg.Validate(); err != nil {
		return Message{}, err
	}
	return msg, nil
}
