package chat

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/tui/styles"
)

// Input is the message composer. It is disabled whenever no live
// connection is open, so a send can never race a dead transport.
type Input struct {
	textInput textinput.Model
	width     int
	enabled   bool
}

// NewInput creates the composer, disabled until a chat connects.
func NewInput() *Input {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096

	return &Input{
		textInput: ti,
		enabled:   false,
	}
}

// Init initializes the input.
func (i *Input) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (i *Input) Update(msg tea.Msg) (*Input, tea.Cmd) {
	if !i.enabled {
		return i, nil
	}

	var cmd tea.Cmd
	i.textInput, cmd = i.textInput.Update(msg)
	return i, cmd
}

// View renders the composer.
func (i *Input) View() string {
	t := styles.CurrentTheme()

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(i.width - 4)

	if !i.enabled {
		inputStyle = inputStyle.BorderForeground(t.Border)
		return inputStyle.Render(t.S().Subtle.Render("Select a chat to start messaging"))
	}

	return inputStyle.Render(i.textInput.View())
}

// SetWidth sets the composer width.
func (i *Input) SetWidth(width int) {
	i.width = width
	i.textInput.SetWidth(width - 8) // border and padding
}

// Height returns the rendered height.
func (i *Input) Height() int {
	return 3 // single line plus rounded border
}

// Value returns the current text.
func (i *Input) Value() string {
	return i.textInput.Value()
}

// Clear empties the composer.
func (i *Input) Clear() {
	i.textInput.SetValue("")
}

// Enable turns the composer on (connection open).
func (i *Input) Enable() tea.Cmd {
	i.enabled = true
	return i.textInput.Focus()
}

// Disable turns the composer off (disconnected).
func (i *Input) Disable() {
	i.enabled = false
	i.textInput.Blur()
}

// IsEnabled reports whether the composer accepts input.
func (i *Input) IsEnabled() bool {
	return i.enabled
}

// Focus focuses the composer.
func (i *Input) Focus() tea.Cmd {
	if !i.enabled {
		return nil
	}
	return i.textInput.Focus()
}

// Blur removes focus.
func (i *Input) Blur() {
	i.textInput.Blur()
}

// Cursor returns the composer cursor.
func (i *Input) Cursor() *tea.Cursor {
	if !i.enabled {
		return nil
	}
	return i.textInput.Cursor()
}
