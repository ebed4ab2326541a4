// Package signup provides the account registration page.
package signup

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
	FieldDisplayName Field = iota
	FieldEmail
	FieldPassword
)

// SubmitMsg carries validated registration details to the app.
type SubmitMsg struct {
	DisplayName string
	Email       string
	Password    string
}

// GotoLoginMsg requests a switch back to the login page.
type GotoLoginMsg struct{}

// Signup is the registration page model.
type Signup struct {
	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	focused       Field
	status        string
	isError       bool
	busy          bool
	width         int
	height        int
}

// New creates the signup page.
func New() *Signup {
	name := textinput.New()
	name.Placeholder = "Display name (optional)"
	name.CharLimit = 100
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "at least 8 characters"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.Prompt = ""

	return &Signup{
		nameInput:     name,
		emailInput:    email,
		passwordInput: password,
		focused:       FieldDisplayName,
	}
}

// Init focuses the first field.
func (s *Signup) Init() tea.Cmd {
	return s.nameInput.Focus()
}

// Reset clears the form and any status line.
func (s *Signup) Reset() {
	s.nameInput.Reset()
	s.emailInput.Reset()
	s.emailInput.Blur()
	s.passwordInput.Reset()
	s.passwordInput.Blur()
	s.focused = FieldDisplayName
	s.status = ""
	s.isError = false
	s.busy = false
}

// SetError shows a failure from the app (email taken, network).
func (s *Signup) SetError(msg string) {
	s.status = msg
	s.isError = true
	s.busy = false
}

// SetSize sets the page size.
func (s *Signup) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update handles messages.
func (s *Signup) Update(msg tea.Msg) (*Signup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			return s.nextField()
		case "shift+tab", "up":
			return s.prevField()
		case "enter":
			if s.focused == FieldPassword {
				return s.submit()
			}
			return s.nextField()
		case "esc":
			return s, util.CmdHandler(GotoLoginMsg{})
		}
	}

	if s.busy {
		return s, nil
	}

	var cmd tea.Cmd
	switch s.focused {
	case FieldDisplayName:
		s.nameInput, cmd = s.nameInput.Update(msg)
	case FieldEmail:
		s.emailInput, cmd = s.emailInput.Update(msg)
	case FieldPassword:
		s.passwordInput, cmd = s.passwordInput.Update(msg)
	}
	return s, cmd
}

func (s *Signup) submit() (*Signup, tea.Cmd) {
	email := strings.TrimSpace(s.emailInput.Value())
	password := s.passwordInput.Value()

	if err := models.ValidateEmail(email); err != nil {
		s.SetError(err.Error())
		return s, nil
	}
	if err := models.ValidatePassword(password); err != nil {
		s.SetError(err.Error())
		return s, nil
	}

	s.busy = true
	s.isError = false
	s.status = "Creating account..."
	return s, util.CmdHandler(SubmitMsg{
		DisplayName: strings.TrimSpace(s.nameInput.Value()),
		Email:       email,
		Password:    password,
	})
}

func (s *Signup) nextField() (*Signup, tea.Cmd) {
	switch s.focused {
	case FieldDisplayName:
		s.nameInput.Blur()
		s.focused = FieldEmail
		return s, s.emailInput.Focus()
	case FieldEmail:
		s.emailInput.Blur()
		s.focused = FieldPassword
		return s, s.passwordInput.Focus()
	case FieldPassword:
		return s, nil
	}
	return s, nil
}

func (s *Signup) prevField() (*Signup, tea.Cmd) {
	switch s.focused {
	case FieldPassword:
		s.passwordInput.Blur()
		s.focused = FieldEmail
		return s, s.emailInput.Focus()
	case FieldEmail:
		s.emailInput.Blur()
		s.focused = FieldDisplayName
		return s, s.nameInput.Focus()
	case FieldDisplayName:
		return s, nil
	}
	return s, nil
}

// View renders the signup form centered on the page.
func (s *Signup) View() string {
	t := styles.CurrentTheme()

	var sb strings.Builder
	sb.WriteString(t.S().Title.Render("vela"))
	sb.WriteString("\n")
	sb.WriteString(t.S().Muted.Render("Create an account"))
	sb.WriteString("\n\n")

	fields := []struct {
		label string
		field Field
		view  string
	}{
		{"Display name", FieldDisplayName, s.nameInput.View()},
		{"Email", FieldEmail, s.emailInput.View()},
		{"Password", FieldPassword, s.passwordInput.View()},
	}
	for _, f := range fields {
		if s.focused == f.field {
			sb.WriteString(t.S().Primary.Bold(true).Render(f.label))
		} else {
			sb.WriteString(t.S().Text.Render(f.label))
		}
		sb.WriteString("\n  ")
		sb.WriteString(f.view)
		sb.WriteString("\n\n")
	}

	if s.status != "" {
		if s.isError {
			sb.WriteString(t.S().Error.Render(s.status))
		} else {
			sb.WriteString(t.S().Info.Render(s.status))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(t.S().Muted.Render("[enter] create account  [esc] back to sign in"))

	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, sb.String())
}

// Cursor returns the cursor for the focused input.
func (s *Signup) Cursor() *tea.Cursor {
	switch s.focused {
	case FieldDisplayName:
		return s.nameInput.Cursor()
	case FieldEmail:
		return s.emailInput.Cursor()
	case FieldPassword:
		return s.passwordInput.Cursor()
	}
	return nil
}
