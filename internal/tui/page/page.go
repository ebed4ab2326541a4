// Package page names the top-level TUI pages and the message that
// switches between them.
package page

// ID identifies a page.
type ID string

// Page identifiers.
const (
	Login  ID = "login"
	Signup ID = "signup"
	Chat   ID = "chat"
)

// ChangeMsg requests a page switch.
type ChangeMsg struct {
	Page ID
}
