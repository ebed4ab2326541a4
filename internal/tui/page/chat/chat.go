// Package chat provides the main page: chat list, message log, and
// composer, kept in sync with the store through bridge events.
package chat

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/velachat/vela/internal/bridge"
	"github.com/velachat/vela/internal/chatstore"
	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/events"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/tui/util"
	"github.com/velachat/vela/internal/ws"
)

// Gateway is the REST surface the chat page needs.
type Gateway interface {
	ListChats(ctx context.Context) ([]models.Chat, error)
	CreateChat(ctx context.Context, title string) (models.Chat, error)
}

// ChatBinder reconciles the selection with fetch and connection.
type ChatBinder interface {
	Bind(ctx context.Context, chatID string) error
	Unbind()
}

// Transport sends over the live connection.
type Transport interface {
	Send(ctx context.Context, payload string) error
	State() ws.State
}

// Focus indicates which pane has the keyboard.
type Focus int

// Focus targets.
const (
	FocusSidebar Focus = iota
	FocusInput
)

// Model is the chat page model.
type Model struct {
	store  *chatstore.Store
	api    Gateway
	binder ChatBinder
	conn   Transport

	sidebar  *Sidebar
	messages *MessageList
	input    *Input
	status   *StatusBar

	focus  Focus
	width  int
	height int
}

// New creates the chat page.
func New(store *chatstore.Store, api Gateway, b ChatBinder, conn Transport) *Model {
	return &Model{
		store:    store,
		api:      api,
		binder:   b,
		conn:     conn,
		sidebar:  NewSidebar(),
		messages: NewMessageList(),
		input:    NewInput(),
		status:   NewStatusBar(),
	}
}

// Init kicks off the chat list fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.fetchChats())
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case bridge.ChatEventMsg:
		return m.handleChatEvent(msg.Event.Payload)

	case bridge.ConnEventMsg:
		return m.handleConnEvent(msg.Event.Payload)

	case ChatsLoadedMsg:
		if msg.Err != nil {
			m.sidebar.SetError("couldn't load chats")
			return m, nil
		}
		m.refresh()
		return m, nil

	case ChatCreatedMsg:
		if msg.Err != nil {
			m.status.SetError(msg.Err.Error())
			return m, nil
		}
		m.refresh()
		return m, m.bind(msg.Chat.ID)

	case BoundMsg:
		if msg.Err != nil {
			debug.Error("chat", msg.Err, "binding "+msg.ChatID)
			m.status.SetError("couldn't connect; select the chat to retry")
		}
		return m, nil

	case SendResultMsg:
		if msg.Err != nil {
			m.status.SetError("message not sent: " + msg.Err.Error())
		}
		return m, nil

	case CopiedMsg:
		if msg.Err == nil {
			m.status.SetInfo("copied last reply")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focus == FocusSidebar {
			m.focus = FocusInput
			m.sidebar.SetFocused(false)
			return m, m.input.Focus()
		}
		m.focus = FocusSidebar
		m.sidebar.SetFocused(true)
		m.input.Blur()
		return m, nil

	case "ctrl+o":
		return m, util.CmdHandler(SignOutRequestedMsg{})

	case "ctrl+y":
		return m, m.copyLastAssistant()

	case "pgup":
		m.messages.ScrollUp()
		return m, nil

	case "pgdown":
		m.messages.ScrollDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.sidebar.MoveUp()
		return m, nil

	case "down", "j":
		m.sidebar.MoveDown()
		return m, nil

	case "enter":
		chat, ok := m.sidebar.Selected()
		if !ok {
			return m, nil
		}
		m.store.SetActiveChat(chat.ID)
		m.refresh()
		return m, m.bind(chat.ID)

	case "n":
		return m, m.createChat()

	case "r":
		return m, m.fetchChats()
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text == "" || !m.input.IsEnabled() {
			return m, nil
		}
		m.input.Clear()
		// The server echoes the stored message back over the socket;
		// the log updates from that push, not from a local append.
		return m, m.send(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleChatEvent(ev events.ChatEvent) (*Model, tea.Cmd) {
	m.refresh()
	if ev.Type == events.ChatEventMessageAdded && ev.ChatID == m.store.ActiveChat() {
		m.messages.ScrollToBottom()
	}
	if ev.Type == events.ChatEventFetchFailed && ev.Err != nil {
		m.status.SetError("fetch failed: " + ev.Err.Error())
	}
	return m, nil
}

func (m *Model) handleConnEvent(ev events.ConnEvent) (*Model, tea.Cmd) {
	m.status.SetConnState(m.conn.State())

	switch ev.Type {
	case events.ConnEventConnected:
		debug.Event("chat", "connected", "chat="+ev.ChatID)
		return m, m.input.Enable()

	case events.ConnEventDisconnected, events.ConnEventFailed:
		m.input.Disable()
		if ev.Type == events.ConnEventFailed && ev.Err != nil {
			m.status.SetError(fmt.Sprintf("connection failed: %v", ev.Err))
		}
	}
	return m, nil
}

// refresh re-reads the store into the view components.
func (m *Model) refresh() {
	active := m.store.ActiveChat()

	m.sidebar.SetChats(m.store.Chats())
	m.sidebar.SetActive(active)
	m.messages.SetMessages(m.store.Messages(active))

	if chat, ok := m.store.Chat(active); ok {
		m.status.SetChatTitle(chat.Title)
	}
	if status, err := m.store.ChatsStatus(); status == chatstore.StatusFailed && err != nil {
		m.sidebar.SetError("couldn't load chats")
	}
}

// View renders the chat page.
func (m *Model) View() string {
	statusHeight := 1
	contentHeight := m.height - statusHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	mainWidth := m.width - sidebarWidth - 1
	if mainWidth < 10 {
		mainWidth = 10
	}

	m.sidebar.SetHeight(contentHeight)
	m.messages.SetSize(mainWidth, contentHeight-m.input.Height())
	m.input.SetWidth(mainWidth)
	m.status.SetWidth(m.width)

	main := lipgloss.JoinVertical(lipgloss.Left, m.messages.View(), m.input.View())
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.status.View())
}

// SetSize sets the page size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the composer cursor when it has focus.
func (m *Model) Cursor() *tea.Cursor {
	if m.focus == FocusInput {
		return m.input.Cursor()
	}
	return nil
}
