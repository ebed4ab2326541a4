package chat

import (
	"testing"
	"time"

	"github.com/velachat/vela/internal/models"
)

func logOf(n int) []models.Message {
	msgs := make([]models.Message, 0, n)
	for i := 0; i < n; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		msgs = append(msgs, models.Message{
			ID:        string(rune('a' + i)),
			ChatID:    "c1",
			Role:      role,
			Content:   "message",
			Timestamp: time.Now(),
		})
	}
	return msgs
}

func TestMessageListLastAssistant(t *testing.T) {
	t.Run("finds most recent assistant reply", func(t *testing.T) {
		m := NewMessageList()
		m.SetMessages([]models.Message{
			{ID: "m1", Role: models.RoleUser, Content: "q1"},
			{ID: "m2", Role: models.RoleAssistant, Content: "a1"},
			{ID: "m3", Role: models.RoleUser, Content: "q2"},
			{ID: "m4", Role: models.RoleAssistant, Content: "a2"},
			{ID: "m5", Role: models.RoleUser, Content: "q3"},
		})

		msg, ok := m.LastAssistant()
		if !ok || msg.Content != "a2" {
			t.Errorf("LastAssistant() = %q %v, want a2", msg.Content, ok)
		}
	})

	t.Run("none when log has only user turns", func(t *testing.T) {
		m := NewMessageList()
		m.SetMessages([]models.Message{{ID: "m1", Role: models.RoleUser, Content: "q"}})

		if _, ok := m.LastAssistant(); ok {
			t.Error("LastAssistant() = true, want false")
		}
	})
}

func TestMessageListScrolling(t *testing.T) {
	m := NewMessageList()
	m.SetSize(80, 5)
	m.SetMessages(logOf(20))

	// Rendering clamps the offset, so scrolling far past the top must
	// not panic and must settle at a valid window.
	for i := 0; i < 100; i++ {
		m.ScrollUp()
	}
	if view := m.View(); view == "" {
		t.Fatal("empty view after scrolling")
	}

	m.ScrollToBottom()
	if m.offset != 0 {
		t.Errorf("offset = %d after ScrollToBottom, want 0", m.offset)
	}

	m.ScrollDown() // already at bottom
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
}
