// Package tui provides the terminal user interface for vela.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/velachat/vela/internal/api"
	"github.com/velachat/vela/internal/auth"
	"github.com/velachat/vela/internal/binder"
	"github.com/velachat/vela/internal/bridge"
	"github.com/velachat/vela/internal/chatstore"
	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/pubsub"
	"github.com/velachat/vela/internal/tui/page"
	"github.com/velachat/vela/internal/tui/page/chat"
	"github.com/velachat/vela/internal/tui/page/login"
	"github.com/velachat/vela/internal/tui/page/signup"
	"github.com/velachat/vela/internal/tui/styles"
	"github.com/velachat/vela/internal/tui/util"
	"github.com/velachat/vela/internal/ws"
)

// Deps are the app-level collaborators the TUI drives.
type Deps struct {
	Hub    *pubsub.Hub
	Store  *chatstore.Store
	API    *api.Client
	Auth   *auth.Client
	Binder *binder.Binder
	Conn   *ws.Manager
}

// AuthResultMsg reports a sign-in or sign-up outcome.
type AuthResultMsg struct {
	User models.User
	Err  error
}

// Model is the top-level TUI model: it owns the pages and routes
// messages to whichever is current.
type Model struct {
	deps Deps

	loginPage  *login.Login
	signupPage *signup.Signup
	chatPage   *chat.Model

	currentPage page.ID
	width       int
	height      int
	ready       bool
}

// New creates the app model. signedIn skips the login page when a
// cached session was restored.
func New(deps Deps, signedIn bool) *Model {
	m := &Model{
		deps:        deps,
		loginPage:   login.New(),
		signupPage:  signup.New(),
		currentPage: page.Login,
	}

	if signedIn {
		m.chatPage = chat.New(deps.Store, deps.API, deps.Binder, deps.Conn)
		m.currentPage = page.Chat
	}

	return m
}

// Init initializes the current page.
func (m *Model) Init() tea.Cmd {
	if m.currentPage == page.Chat && m.chatPage != nil {
		return m.chatPage.Init()
	}
	return m.loginPage.Init()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updatePageSizes()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case login.SubmitMsg:
		return m, m.signIn(msg.Email, msg.Password)

	case signup.SubmitMsg:
		return m, m.signUp(msg)

	case login.GotoSignupMsg:
		m.signupPage.Reset()
		m.currentPage = page.Signup
		return m, m.signupPage.Init()

	case signup.GotoLoginMsg:
		m.loginPage.Reset()
		m.currentPage = page.Login
		return m, m.loginPage.Init()

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case chat.SignOutRequestedMsg:
		return m.handleSignOut()

	case page.ChangeMsg:
		m.currentPage = msg.Page
		return m, nil

	case util.ErrorMsg:
		debug.Error("tui", msg.Err, "page error")
	}

	return m, m.routeToPage(msg)
}

func (m *Model) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.deps.Auth.SignIn(context.Background(), email, password)
		return AuthResultMsg{User: user, Err: err}
	}
}

func (m *Model) signUp(msg signup.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		_, err := m.deps.API.Register(context.Background(), api.RegisterRequest{
			Email:       msg.Email,
			Password:    msg.Password,
			DisplayName: msg.DisplayName,
		})
		if err != nil {
			return AuthResultMsg{Err: err}
		}

		user, err := m.deps.Auth.SignIn(context.Background(), msg.Email, msg.Password)
		return AuthResultMsg{User: user, Err: err}
	}
}

func (m *Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		switch m.currentPage {
		case page.Login:
			m.loginPage.SetError(msg.Err.Error())
		case page.Signup:
			m.signupPage.SetError(msg.Err.Error())
		}
		return m, nil
	}

	debug.Event("tui", "signed_in", "user="+msg.User.Email)
	m.chatPage = chat.New(m.deps.Store, m.deps.API, m.deps.Binder, m.deps.Conn)
	m.chatPage.SetSize(m.width, m.height)
	m.currentPage = page.Chat
	return m, m.chatPage.Init()
}

func (m *Model) handleSignOut() (tea.Model, tea.Cmd) {
	m.deps.Binder.Reset()
	m.deps.Auth.SignOut()
	m.chatPage = nil

	m.loginPage.Reset()
	m.currentPage = page.Login
	return m, m.loginPage.Init()
}

func (m *Model) routeToPage(msg tea.Msg) tea.Cmd {
	switch m.currentPage {
	case page.Login:
		var cmd tea.Cmd
		m.loginPage, cmd = m.loginPage.Update(msg)
		return cmd
	case page.Signup:
		var cmd tea.Cmd
		m.signupPage, cmd = m.signupPage.Update(msg)
		return cmd
	case page.Chat:
		if m.chatPage == nil {
			return nil
		}
		var cmd tea.Cmd
		m.chatPage, cmd = m.chatPage.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updatePageSizes() {
	m.loginPage.SetSize(m.width, m.height)
	m.signupPage.SetSize(m.width, m.height)
	if m.chatPage != nil {
		m.chatPage.SetSize(m.width, m.height)
	}
}

// View renders the current page.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	switch m.currentPage {
	case page.Login:
		view.Content = m.loginPage.View()
		view.Cursor = m.loginPage.Cursor()
	case page.Signup:
		view.Content = m.signupPage.View()
		view.Cursor = m.signupPage.Cursor()
	case page.Chat:
		if m.chatPage != nil {
			view.Content = m.chatPage.View()
			view.Cursor = m.chatPage.Cursor()
		}
	}

	return view
}

// Run starts the TUI program and blocks until it exits.
func Run(deps Deps, signedIn bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("vela requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	styles.NewManager()

	model := New(deps, signedIn)
	p := tea.NewProgram(model)

	// Forward pub/sub events into the program as messages.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tuiBridge := bridge.NewTUIBridge(deps.Hub, p)
	tuiBridge.Start(ctx)
	defer tuiBridge.Stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
