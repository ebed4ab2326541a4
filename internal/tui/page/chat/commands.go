package chat

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/models"
)

// Result message types.
type (
	// ChatsLoadedMsg reports the chat list fetch outcome.
	ChatsLoadedMsg struct {
		Err error
	}

	// ChatCreatedMsg reports a chat creation outcome.
	ChatCreatedMsg struct {
		Chat models.Chat
		Err  error
	}

	// BoundMsg reports a bind attempt outcome.
	BoundMsg struct {
		ChatID string
		Err    error
	}

	// SendResultMsg reports a message send outcome.
	SendResultMsg struct {
		Err error
	}

	// CopiedMsg reports a clipboard copy.
	CopiedMsg struct {
		Err error
	}

	// SignOutRequestedMsg asks the app to tear the session down. The
	// chat page cannot do this itself; sign-out crosses page boundaries.
	SignOutRequestedMsg struct{}
)

// fetchChats loads the chat list into the store.
func (m *Model) fetchChats() tea.Cmd {
	m.store.SetChatsLoading()
	m.sidebar.SetLoading()

	return func() tea.Msg {
		chats, err := m.api.ListChats(context.Background())
		if err != nil {
			m.store.SetChatsError(err)
			return ChatsLoadedMsg{Err: err}
		}
		m.store.SetChats(chats)
		return ChatsLoadedMsg{}
	}
}

// createChat creates a chat with a timestamped default title.
func (m *Model) createChat() tea.Cmd {
	title := models.DefaultChatTitle(time.Now())

	return func() tea.Msg {
		chat, err := m.api.CreateChat(context.Background(), title)
		if err != nil {
			return ChatCreatedMsg{Err: err}
		}
		m.store.RecordCreatedChat(chat)
		return ChatCreatedMsg{Chat: chat}
	}
}

// bind points the binder at a chat: history fetch plus live connection.
func (m *Model) bind(chatID string) tea.Cmd {
	return func() tea.Msg {
		return BoundMsg{ChatID: chatID, Err: m.binder.Bind(context.Background(), chatID)}
	}
}

// send forwards the composed text over the live connection.
func (m *Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		return SendResultMsg{Err: m.conn.Send(context.Background(), text)}
	}
}

// copyLastAssistant puts the latest assistant reply on the clipboard.
func (m *Model) copyLastAssistant() tea.Cmd {
	msg, ok := m.messages.LastAssistant()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(msg.Content); err != nil {
			debug.Error("chat", err, "copying to clipboard")
			return CopiedMsg{Err: err}
		}
		return CopiedMsg{}
	}
}
