package models

import (
	"errors"
	"strings"
	"time"
)

// MaxChatTitleLength matches the backend's title constraint.
const MaxChatTitleLength = 100

// Chat title validation errors.
var (
	ErrEmptyChatTitle   = errors.New("chat title cannot be empty")
	ErrChatTitleTooLong = errors.New("chat title cannot exceed 100 characters")
)

// Chat is a named conversation owned by a user. Chats are created and
// mutated server-side only; the client treats them as read-only records.
type Chat struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount,omitempty"`
	IsActive     bool      `json:"isActive,omitempty"`
}

// ValidateChatTitle checks a title before it is sent to the backend.
func ValidateChatTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyChatTitle
	}
	if len(title) > MaxChatTitleLength {
		return ErrChatTitleTooLong
	}
	return nil
}

// DefaultChatTitle builds the title used when the user creates a chat
// without naming it.
func DefaultChatTitle(now time.Time) string {
	return "New Chat " + now.Format("Jan 2, 2006 3:04 PM")
}
