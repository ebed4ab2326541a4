package chat

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/tui/styles"
)

// sidebarWidth is fixed; the message area takes the rest.
const sidebarWidth = 30

// Sidebar lists the user's chats and tracks the cursor.
type Sidebar struct {
	chats    []models.Chat
	cursor   int
	activeID string
	focused  bool
	loading  bool
	errMsg   string
	height   int
}

// NewSidebar creates an empty sidebar.
func NewSidebar() *Sidebar {
	return &Sidebar{focused: true}
}

// SetChats replaces the listed chats, keeping the cursor in range.
func (s *Sidebar) SetChats(chats []models.Chat) {
	s.chats = chats
	s.loading = false
	s.errMsg = ""
	if s.cursor >= len(chats) {
		s.cursor = len(chats) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// SetActive marks which chat is live.
func (s *Sidebar) SetActive(chatID string) {
	s.activeID = chatID
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			s.cursor = i
			return
		}
	}
}

// SetLoading marks the list as fetching.
func (s *Sidebar) SetLoading() {
	s.loading = true
	s.errMsg = ""
}

// SetError shows a list fetch failure. Existing entries stay visible.
func (s *Sidebar) SetError(msg string) {
	s.loading = false
	s.errMsg = msg
}

// SetFocused toggles keyboard focus highlighting.
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// SetHeight sets the sidebar height.
func (s *Sidebar) SetHeight(height int) {
	s.height = height
}

// MoveUp moves the cursor toward the top of the list.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves the cursor toward the bottom of the list.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.chats)-1 {
		s.cursor++
	}
}

// Selected returns the chat under the cursor.
func (s *Sidebar) Selected() (models.Chat, bool) {
	if s.cursor < 0 || s.cursor >= len(s.chats) {
		return models.Chat{}, false
	}
	return s.chats[s.cursor], true
}

// View renders the sidebar.
func (s *Sidebar) View() string {
	t := styles.CurrentTheme()

	borderColor := t.Border
	if s.focused {
		borderColor = t.BorderFocus
	}

	var sb strings.Builder
	sb.WriteString(t.S().Subtitle.Render("Chats"))
	sb.WriteString("\n\n")

	switch {
	case s.loading && len(s.chats) == 0:
		sb.WriteString(t.S().Muted.Render("Loading..."))
	case len(s.chats) == 0:
		sb.WriteString(t.S().Muted.Render("No chats yet.\nPress n to start one."))
	default:
		start, end := 0, len(s.chats)
		maxRows := s.height - 6
		if maxRows > 0 && len(s.chats) > maxRows {
			start = s.cursor - maxRows/2
			if start < 0 {
				start = 0
			}
			if start+maxRows > len(s.chats) {
				start = len(s.chats) - maxRows
			}
			end = start + maxRows
		}

		for i := start; i < end; i++ {
			chat := s.chats[i]
			title := chat.Title
			if len(title) > sidebarWidth-6 {
				title = title[:sidebarWidth-7] + "…"
			}

			switch {
			case i == s.cursor && s.focused:
				sb.WriteString(t.S().Primary.Bold(true).Render("> " + title))
			case chat.ID == s.activeID:
				sb.WriteString(t.S().Success.Render("• " + title))
			default:
				sb.WriteString(t.S().Text.Render("  " + title))
			}
			if chat.MessageCount > 0 {
				sb.WriteString(t.S().Subtle.Render(fmt.Sprintf(" (%d)", chat.MessageCount)))
			}
			sb.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(t.S().Error.Render(s.errMsg))
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(s.height).
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(sb.String())
}
