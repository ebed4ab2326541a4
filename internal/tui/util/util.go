// Package util holds small helpers shared across TUI pages.
package util

import tea "charm.land/bubbletea/v2"

// InfoMsg carries a transient status line for the current page.
type InfoMsg struct {
	Msg string
}

// ErrorMsg carries a user-visible error for the current page.
type ErrorMsg struct {
	Err error
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReportInfo returns a command that surfaces an informational message.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Msg: msg})
}

// ReportError returns a command that surfaces an error.
func ReportError(err error) tea.Cmd {
	return CmdHandler(ErrorMsg{Err: err})
}
