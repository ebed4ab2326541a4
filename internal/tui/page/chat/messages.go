package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/tui/styles"
)

// MessageList displays the active chat's message log.
type MessageList struct {
	messages []models.Message
	width    int
	height   int
	offset   int // lines scrolled up from the bottom
}

// NewMessageList creates an empty message list.
func NewMessageList() *MessageList {
	return &MessageList{}
}

// SetMessages replaces the displayed log. Keeps the view pinned to the
// bottom unless the user scrolled away.
func (m *MessageList) SetMessages(messages []models.Message) {
	m.messages = messages
}

// LastAssistant returns the most recent assistant message, if any.
func (m *MessageList) LastAssistant() (models.Message, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == models.RoleAssistant {
			return m.messages[i], true
		}
	}
	return models.Message{}, false
}

// SetSize sets the component size.
func (m *MessageList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ScrollUp moves the window one line toward older messages.
func (m *MessageList) ScrollUp() {
	m.offset++
}

// ScrollDown moves the window one line toward newer messages.
func (m *MessageList) ScrollDown() {
	if m.offset > 0 {
		m.offset--
	}
}

// ScrollToBottom pins the view to the latest message.
func (m *MessageList) ScrollToBottom() {
	m.offset = 0
}

// View renders the visible window of the log.
func (m *MessageList) View() string {
	t := styles.CurrentTheme()

	if len(m.messages) == 0 {
		empty := t.S().Muted.Render("No messages yet. Say something.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, empty)
	}

	rendered := make([]string, 0, len(m.messages))
	for i := range m.messages {
		rendered = append(rendered, m.renderMessage(m.messages[i]))
	}
	content := strings.Join(rendered, "\n\n")

	lines := strings.Split(content, "\n")
	if len(lines) > m.height {
		maxOffset := len(lines) - m.height
		if m.offset > maxOffset {
			m.offset = maxOffset
		}
		start := maxOffset - m.offset
		lines = lines[start : start+m.height]
	} else {
		m.offset = 0
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m *MessageList) renderMessage(msg models.Message) string {
	t := styles.CurrentTheme()

	contentWidth := m.width - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	var header string
	switch msg.Role {
	case models.RoleUser:
		header = t.S().Text.Bold(true).Render("You")
	case models.RoleAssistant:
		header = t.S().Primary.Bold(true).Render("Assistant")
		if msg.Metadata != nil && msg.Metadata.Model != "" {
			header += " " + t.S().Subtle.Render(msg.Metadata.Model)
		}
	default:
		return t.S().Muted.Width(contentWidth).Render(msg.Content)
	}

	if !msg.Timestamp.IsZero() {
		header += " " + t.S().Subtle.Render(msg.Timestamp.Local().Format("15:04"))
	}

	content := t.S().Text.Width(contentWidth).Render(msg.Content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}
