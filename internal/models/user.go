package models

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// User validation errors.
var (
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidEmail  = errors.New("email format is invalid")
	ErrPasswordShort = errors.New("password must be at least 8 characters")
)

// MinPasswordLength matches the backend's registration constraint.
const MinPasswordLength = 8

// User is the authenticated principal as reported by the identity service.
type User struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// ValidateEmail checks an email address before it is submitted.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword checks a password before it is submitted.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordShort
	}
	return nil
}
