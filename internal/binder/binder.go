// Package binder reconciles the chat selection with the resources that
// must track it: the message log fetch and the live connection. It is
// the only caller of the credential source's force-refresh path.
package binder

import (
	"context"
	"sync"

	"github.com/velachat/vela/internal/auth"
	"github.com/velachat/vela/internal/chatstore"
	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/ws"
)

// Fetcher loads a chat's message history. Implemented by api.Client.
type Fetcher interface {
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
}

// Connector owns the live transport. Implemented by ws.Manager.
type Connector interface {
	Connect(ctx context.Context, chatID, token string, onMessage ws.MessageHandler)
	Disconnect()
}

// Binder keeps one chat bound: history fetched, connection open. It
// memoizes the bound target so repeated Bind calls for the same chat
// are no-ops, no matter how often the UI re-evaluates its selection.
type Binder struct {
	mu    sync.Mutex
	bound string
	gen   uint64

	store *chatstore.Store
	api   Fetcher
	creds auth.Source
	conn  Connector
}

// New wires a binder to its collaborators.
func New(store *chatstore.Store, api Fetcher, creds auth.Source, conn Connector) *Binder {
	return &Binder{
		store: store,
		api:   api,
		creds: creds,
		conn:  conn,
	}
}

// Bind makes chatID the live chat: kicks off the history fetch, obtains
// a forced-fresh credential, and connects. Binding the already-bound
// chat does nothing. A newer Bind or an Unbind supersedes a Bind still
// waiting on its credential; the superseded attempt never reaches the
// transport. A credential failure aborts the attempt before any
// transport work and is not memoized, so the next Bind retries; the
// user sees no connection rather than an error dialog.
func (b *Binder) Bind(ctx context.Context, chatID string) error {
	if chatID == "" {
		b.Unbind()
		return nil
	}

	b.mu.Lock()
	if b.bound == chatID {
		b.mu.Unlock()
		return nil
	}
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	// History load runs concurrently with the handshake. The store keys
	// results by chat ID, so a response arriving after another switch
	// still lands in the right log.
	b.store.SetMessagesLoading()
	go b.fetchMessages(ctx, chatID)

	// The realtime handshake rejects stale tokens, so this never settles
	// for a cached credential.
	token, err := b.creds.Token(ctx, true)
	if err != nil {
		debug.Error("binder", err, "credential for chat "+chatID)
		return err
	}

	// The credential fetch is a suspension point: the selection may have
	// moved on while it was in flight. A stale attempt must not touch
	// the transport, or it would tear down the newer chat's connection.
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		debug.Event("binder", "superseded", "chat="+chatID)
		return nil
	}

	b.conn.Connect(ctx, chatID, token, func(msg models.Message) {
		b.store.AppendMessage(msg)
	})
	b.bound = chatID
	b.mu.Unlock()

	debug.Event("binder", "bound", "chat="+chatID)
	return nil
}

func (b *Binder) fetchMessages(ctx context.Context, chatID string) {
	msgs, err := b.api.ListMessages(ctx, chatID)
	if err != nil {
		debug.Error("binder", err, "fetching messages for "+chatID)
		b.store.SetMessagesError(chatID, err)
		return
	}
	b.store.RecordFetchedMessages(chatID, msgs)
}

// Unbind drops the live connection and clears the memo. It also
// supersedes any Bind still waiting on a credential. Safe to call when
// nothing is bound.
func (b *Binder) Unbind() {
	b.mu.Lock()
	b.gen++
	b.bound = ""
	b.mu.Unlock()

	b.conn.Disconnect()
}

// Bound returns the currently bound chat ID, or "".
func (b *Binder) Bound() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bound
}

// Reset unbinds and clears all chat state. Invoked on sign-out.
func (b *Binder) Reset() {
	b.Unbind()
	b.store.Reset()
}
