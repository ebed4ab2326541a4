package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseMessage(t *testing.T) {
	t.Run("valid frame", func(t *testing.T) {
		data := []byte(`{
			"id": "m1",
			"chatId": "c1",
			"userId": "u1",
			"role": "assistant",
			"content": "hello",
			"timestamp": "2025-01-02T15:04:05Z",
			"metadata": {"model": "sonnet", "responseTime": 1.25}
		}`)

		msg, err := ParseMessage(data)
		if err != nil {
			t.Fatalf("ParseMessage() error = %v", err)
		}

		if msg.ID != "m1" || msg.ChatID != "c1" || msg.Role != RoleAssistant {
			t.Errorf("msg = %+v", msg)
		}
		if msg.Metadata == nil || msg.Metadata.Model != "sonnet" {
			t.Errorf("metadata = %+v", msg.Metadata)
		}
		want := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
		if !msg.Timestamp.Equal(want) {
			t.Errorf("timestamp = %v, want %v", msg.Timestamp, want)
		}
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			data    string
			wantErr error
		}{
			{
				name: "missing id",
				data: `{"chatId":"c1","role":"user","content":"hi","timestamp":"2025-01-02T15:04:05Z"}`,

				wantErr: ErrMissingMessageID,
			},
			{
				name:    "missing chat id",
				data:    `{"id":"m1","role":"user","content":"hi","timestamp":"2025-01-02T15:04:05Z"}`,
				wantErr: ErrMissingChatID,
			},
			{
				name:    "unknown role",
				data:    `{"id":"m1","chatId":"c1","role":"system","content":"hi","timestamp":"2025-01-02T15:04:05Z"}`,
				wantErr: ErrUnknownRole,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseMessage([]byte(tt.data))
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseMessage() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := ParseMessage([]byte("hello there")); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestValidateChatTitle(t *testing.T) {
	long := make([]byte, MaxChatTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"valid", "Project ideas", nil},
		{"empty", "", ErrEmptyChatTitle},
		{"whitespace only", "   ", ErrEmptyChatTitle},
		{"too long", string(long), ErrChatTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateChatTitle(tt.title); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChatTitle(%q) = %v, want %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultChatTitle(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	got := DefaultChatTitle(now)
	want := "New Chat Jun 1, 2025 3:30 PM"
	if got != want {
		t.Errorf("DefaultChatTitle() = %q, want %q", got, want)
	}
	if err := ValidateChatTitle(got); err != nil {
		t.Errorf("default title fails validation: %v", err)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid", "a@b.com", nil},
		{"empty", "", ErrEmptyEmail},
		{"no at sign", "not-an-email", ErrInvalidEmail},
		{"spaces trimmed", "  a@b.com  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEmail(tt.email); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret12"); err != nil {
		t.Errorf("ValidatePassword(8 chars) = %v", err)
	}
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordShort) {
		t.Errorf("ValidatePassword(short) = %v, want ErrPasswordShort", err)
	}
}
