package chat

import (
	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/tui/styles"
	"github.com/velachat/vela/internal/ws"
)

// StatusBar shows the connection state, the live chat, and transient
// errors.
type StatusBar struct {
	connState ws.State
	chatTitle string
	errorMsg  string
	infoMsg   string
	width     int
}

// NewStatusBar creates a status bar in the disconnected state.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetConnState updates the connection indicator.
func (s *StatusBar) SetConnState(state ws.State) {
	s.connState = state
	if state == ws.StateOpen {
		s.errorMsg = ""
	}
}

// SetChatTitle sets the live chat's title.
func (s *StatusBar) SetChatTitle(title string) {
	s.chatTitle = title
}

// SetError shows an error until the next state change.
func (s *StatusBar) SetError(msg string) {
	s.errorMsg = msg
	s.infoMsg = ""
}

// SetInfo shows a transient informational message.
func (s *StatusBar) SetInfo(msg string) {
	s.infoMsg = msg
	s.errorMsg = ""
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := styles.CurrentTheme()

	var left string
	switch {
	case s.errorMsg != "":
		left = t.S().Error.Render(s.errorMsg)
	case s.infoMsg != "":
		left = t.S().Info.Render(s.infoMsg)
	case s.connState == ws.StateOpen:
		left = t.S().Success.Render("● " + s.chatTitle)
	case s.connState == ws.StateConnecting:
		left = t.S().Warning.Render("◌ connecting...")
	default:
		left = t.S().Muted.Render("○ disconnected")
	}

	right := t.S().Muted.Render("[tab] focus  [n] new chat  [ctrl+y] copy  [ctrl+o] sign out  [ctrl+c] quit")

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(s.width).
		Padding(0, 1).
		Background(t.BgSubtle).
		Render(left + lipgloss.NewStyle().Width(gap).Render("") + right)
}
