package events

import "time"

// AuthEventType represents auth-specific event types.
type AuthEventType string

// Auth event type constants.
//
//nolint:gosec // G101 false positive - these are event type names, not credentials
const (
	AuthEventSignedIn      AuthEventType = "signed_in"
	AuthEventSignedOut     AuthEventType = "signed_out"
	AuthEventRefreshFailed AuthEventType = "refresh_failed"
)

// AuthEvent represents an authentication event.
type AuthEvent struct {
	Type      AuthEventType
	Email     string
	Timestamp time.Time

	// Optional fields
	Err error // For RefreshFailed
}

// NewSignedInEvent creates a signed in event.
func NewSignedInEvent(email string) AuthEvent {
	return AuthEvent{Type: AuthEventSignedIn, Email: email, Timestamp: time.Now()}
}

// NewSignedOutEvent creates a signed out event.
func NewSignedOutEvent() AuthEvent {
	return AuthEvent{Type: AuthEventSignedOut, Timestamp: time.Now()}
}

// NewRefreshFailedEvent creates a refresh failed event.
func NewRefreshFailedEvent(err error) AuthEvent {
	return AuthEvent{Type: AuthEventRefreshFailed, Err: err, Timestamp: time.Now()}
}
