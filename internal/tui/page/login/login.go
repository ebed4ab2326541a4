// Package login provides the sign-in page.
package login

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/tui/styles"
	"github.com/velachat/vela/internal/tui/util"
)

// Field indicates which input is focused.
type Field int

// Form fields.
const (
	FieldEmail Field = iota
	FieldPassword
)

// SubmitMsg carries validated credentials to the app.
type SubmitMsg struct {
	Email    string
	Password string
}

// GotoSignupMsg requests a switch to the signup page.
type GotoSignupMsg struct{}

// Login is the sign-in page model.
type Login struct {
	emailInput    textinput.Model
	passwordInput textinput.Model
	focused       Field
	status        string
	isError       bool
	busy          bool
	width         int
	height        int
}

// New creates the login page.
func New() *Login {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.Prompt = ""

	return &Login{
		emailInput:    email,
		passwordInput: password,
		focused:       FieldEmail,
	}
}

// Init focuses the email field.
func (l *Login) Init() tea.Cmd {
	return l.emailInput.Focus()
}

// Reset clears the form and any status line.
func (l *Login) Reset() {
	l.emailInput.Reset()
	l.passwordInput.Reset()
	l.passwordInput.Blur()
	l.focused = FieldEmail
	l.status = ""
	l.isError = false
	l.busy = false
}

// SetError shows a failure from the app (wrong password, network).
func (l *Login) SetError(msg string) {
	l.status = msg
	l.isError = true
	l.busy = false
}

// SetSize sets the page size.
func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Update handles messages.
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return l.nextField()
		case "shift+tab", "up":
			return l.prevField()
		case "enter":
			if l.focused == FieldEmail {
				return l.nextField()
			}
			return l.submit()
		case "ctrl+n":
			return l, util.CmdHandler(GotoSignupMsg{})
		}
	}

	if l.busy {
		return l, nil
	}

	var cmd tea.Cmd
	switch l.focused {
	case FieldEmail:
		l.emailInput, cmd = l.emailInput.Update(msg)
	case FieldPassword:
		l.passwordInput, cmd = l.passwordInput.Update(msg)
	}
	return l, cmd
}

func (l *Login) submit() (*Login, tea.Cmd) {
	email := strings.TrimSpace(l.emailInput.Value())
	password := l.passwordInput.Value()

	if err := models.ValidateEmail(email); err != nil {
		l.SetError(err.Error())
		return l, nil
	}
	if err := models.ValidatePassword(password); err != nil {
		l.SetError(err.Error())
		return l, nil
	}

	l.busy = true
	l.isError = false
	l.status = "Signing in..."
	return l, util.CmdHandler(SubmitMsg{Email: email, Password: password})
}

func (l *Login) nextField() (*Login, tea.Cmd) {
	if l.focused == FieldEmail {
		l.emailInput.Blur()
		l.focused = FieldPassword
		return l, l.passwordInput.Focus()
	}
	return l, nil
}

func (l *Login) prevField() (*Login, tea.Cmd) {
	if l.focused == FieldPassword {
		l.passwordInput.Blur()
		l.focused = FieldEmail
		return l, l.emailInput.Focus()
	}
	return l, nil
}

// View renders the login form centered on the page.
func (l *Login) View() string {
	t := styles.CurrentTheme()

	var sb strings.Builder
	sb.WriteString(t.S().Title.Render("vela"))
	sb.WriteString("\n")
	sb.WriteString(t.S().Muted.Render("Sign in to continue"))
	sb.WriteString("\n\n")

	if l.focused == FieldEmail {
		sb.WriteString(t.S().Primary.Bold(true).Render("Email"))
	} else {
		sb.WriteString(t.S().Text.Render("Email"))
	}
	sb.WriteString("\n  ")
	sb.WriteString(l.emailInput.View())
	sb.WriteString("\n\n")

	if l.focused == FieldPassword {
		sb.WriteString(t.S().Primary.Bold(true).Render("Password"))
	} else {
		sb.WriteString(t.S().Text.Render("Password"))
	}
	sb.WriteString("\n  ")
	sb.WriteString(l.passwordInput.View())
	sb.WriteString("\n\n")

	if l.status != "" {
		if l.isError {
			sb.WriteString(t.S().Error.Render(l.status))
		} else {
			sb.WriteString(t.S().Info.Render(l.status))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(t.S().Muted.Render("[enter] sign in  [ctrl+n] create account  [ctrl+c] quit"))

	return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// Cursor returns the cursor for the focused input.
func (l *Login) Cursor() *tea.Cursor {
	switch l.focused {
	case FieldEmail:
		return l.emailInput.Cursor()
	case FieldPassword:
		return l.passwordInput.Cursor()
	}
	return nil
}
