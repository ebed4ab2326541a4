// Package chatstore holds the client-side chat state: the chat list, the
// active chat selection, and the per-chat message logs.
//
// The store is the single owner of this state. All mutations go through
// named transition methods so the state machine stays auditable; nothing
// else writes to the logs directly. Methods never perform I/O - fetching
// is the binder's job.
package chatstore

import (
	"sync"

	"github.com/velachat/vela/internal/events"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/pubsub"
)

// Status tracks the fetch state of a collection.
type Status string

// Collection fetch states.
const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Store is the client-side chat state container.
type Store struct {
	mu sync.RWMutex

	chats        []models.Chat
	activeChatID string
	messages     map[string][]models.Message
	seen         map[string]map[string]struct{}

	chatsStatus    Status
	chatsErr       error
	messagesStatus Status
	messagesErr    error

	broker *pubsub.Broker[events.ChatEvent]
}

// New creates an empty store. The broker may be nil in tests.
func New(broker *pubsub.Broker[events.ChatEvent]) *Store {
	return &Store{
		messages:       make(map[string][]models.Message),
		seen:           make(map[string]map[string]struct{}),
		chatsStatus:    StatusIdle,
		messagesStatus: StatusIdle,
		broker:         broker,
	}
}

// SetActiveChat selects the current chat. Pure state update; connecting
// and fetching are driven by the binder observing this selection.
func (s *Store) SetActiveChat(id string) {
	s.mu.Lock()
	s.activeChatID = id
	s.mu.Unlock()

	s.publish(pubsub.EventUpdated, events.NewChatSwitchedEvent(id))
}

// ActiveChat returns the currently selected chat ID, or "" for none.
func (s *Store) ActiveChat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChatID
}

// Chats returns a copy of the chat list.
func (s *Store) Chats() []models.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Chat, len(s.chats))
	copy(out, s.chats)
	return out
}

// Chat returns the chat with the given ID, if present.
func (s *Store) Chat(id string) (models.Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.chats {
		if s.chats[i].ID == id {
			return s.chats[i], true
		}
	}
	return models.Chat{}, false
}

// SetChats replaces the chat list wholesale (after a list fetch).
func (s *Store) SetChats(chats []models.Chat) {
	s.mu.Lock()
	s.chats = make([]models.Chat, len(chats))
	copy(s.chats, chats)
	s.chatsStatus = StatusSucceeded
	s.chatsErr = nil
	s.mu.Unlock()

	s.publish(pubsub.EventUpdated, events.NewChatListLoadedEvent())
}

// RecordCreatedChat inserts a newly created chat at the head of the list
// and makes it the active chat.
func (s *Store) RecordCreatedChat(chat models.Chat) {
	s.mu.Lock()
	s.chats = append([]models.Chat{chat}, s.chats...)
	s.activeChatID = chat.ID
	s.mu.Unlock()

	s.publish(pubsub.EventCreated, events.NewChatCreatedEvent(chat.ID))
}

// Messages returns a copy of the message log for a chat.
func (s *Store) Messages(chatID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.messages[chatID]
	out := make([]models.Message, len(log))
	copy(out, log)
	return out
}

// RecordFetchedMessages replaces the stored log for a chat wholesale,
// in the order received. Used after a full REST fetch; a push delivered
// before the fetch completes is replaced along with everything else and
// will be ignored on redelivery thanks to the rebuilt id set.
func (s *Store) RecordFetchedMessages(chatID string, msgs []models.Message) {
	s.mu.Lock()
	log := make([]models.Message, len(msgs))
	copy(log, msgs)
	s.messages[chatID] = log

	ids := make(map[string]struct{}, len(msgs))
	for i := range msgs {
		ids[msgs[i].ID] = struct{}{}
	}
	s.seen[chatID] = ids

	s.messagesStatus = StatusSucceeded
	s.messagesErr = nil
	s.mu.Unlock()

	s.publish(pubsub.EventUpdated, events.NewMessagesLoadedEvent(chatID))
}

// AppendMessage inserts a message into the log for its chat, creating
// the log if needed. Inserting a message whose ID is already present in
// that log is a no-op: the REST fetch and the live push race to deliver
// the same message, and the first one in wins. Returns whether the
// message was actually appended.
func (s *Store) AppendMessage(msg models.Message) bool {
	s.mu.Lock()

	ids, ok := s.seen[msg.ChatID]
	if !ok {
		ids = make(map[string]struct{})
		s.seen[msg.ChatID] = ids
	}
	if _, dup := ids[msg.ID]; dup {
		s.mu.Unlock()
		return false
	}

	ids[msg.ID] = struct{}{}
	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], msg)
	s.mu.Unlock()

	s.publish(pubsub.EventProgress, events.NewMessageAddedEvent(msg.ChatID, msg.ID, string(msg.Role)))
	return true
}

// SetChatsLoading marks the chat list fetch as in flight.
func (s *Store) SetChatsLoading() {
	s.mu.Lock()
	s.chatsStatus = StatusLoading
	s.chatsErr = nil
	s.mu.Unlock()
}

// SetChatsError marks the chat list fetch as failed. Prior data is kept.
func (s *Store) SetChatsError(err error) {
	s.mu.Lock()
	s.chatsStatus = StatusFailed
	s.chatsErr = err
	s.mu.Unlock()

	s.publish(pubsub.EventFailed, events.NewFetchFailedEvent("", err))
}

// ChatsStatus returns the chat list fetch status and last error.
func (s *Store) ChatsStatus() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatsStatus, s.chatsErr
}

// SetMessagesLoading marks the message log fetch as in flight.
func (s *Store) SetMessagesLoading() {
	s.mu.Lock()
	s.messagesStatus = StatusLoading
	s.messagesErr = nil
	s.mu.Unlock()
}

// SetMessagesError marks the message log fetch as failed. Prior data is kept.
func (s *Store) SetMessagesError(chatID string, err error) {
	s.mu.Lock()
	s.messagesStatus = StatusFailed
	s.messagesErr = err
	s.mu.Unlock()

	s.publish(pubsub.EventFailed, events.NewFetchFailedEvent(chatID, err))
}

// MessagesStatus returns the message log fetch status and last error.
func (s *Store) MessagesStatus() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messagesStatus, s.messagesErr
}

// Reset clears all chats, messages, the active selection, and statuses.
// Invoked on sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.chats = nil
	s.activeChatID = ""
	s.messages = make(map[string][]models.Message)
	s.seen = make(map[string]map[string]struct{})
	s.chatsStatus = StatusIdle
	s.chatsErr = nil
	s.messagesStatus = StatusIdle
	s.messagesErr = nil
	s.mu.Unlock()

	s.publish(pubsub.EventDeleted, events.NewChatStateClearedEvent())
}

func (s *Store) publish(eventType pubsub.EventType, ev events.ChatEvent) {
	if s.broker != nil {
		s.broker.Publish(eventType, ev)
	}
}
