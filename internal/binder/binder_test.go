package binder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/velachat/vela/internal/chatstore"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/ws"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	msgs  map[string][]models.Message
	err   error
}

func (f *fakeFetcher) ListMessages(_ context.Context, chatID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatID)
	if f.err != nil {
		return nil, f.err
	}
	return f.msgs[chatID], nil
}

type fakeCreds struct {
	mu    sync.Mutex
	calls int
	err   error
	gate  chan struct{} // when set, the first Token call blocks on it
}

func (f *fakeCreds) Token(_ context.Context, forceRefresh bool) (string, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	gate := f.gate
	err := f.err
	f.mu.Unlock()

	if gate != nil && n == 1 {
		<-gate
	}

	if !forceRefresh {
		return "", errors.New("binder must force refresh")
	}
	if err != nil {
		return "", err
	}
	return "fresh-token", nil
}

func (f *fakeCreds) tokenCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type connectCall struct {
	chatID string
	token  string
}

type fakeConnector struct {
	mu          sync.Mutex
	connects    []connectCall
	disconnects int
	onMessage   ws.MessageHandler
}

func (f *fakeConnector) Connect(_ context.Context, chatID, token string, onMessage ws.MessageHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects = append(f.connects, connectCall{chatID, token})
	f.onMessage = onMessage
}

func (f *fakeConnector) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnects++
}

func (f *fakeConnector) connectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.connects)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func newBinder(fetcher *fakeFetcher, creds *fakeCreds, conn *fakeConnector) (*Binder, *chatstore.Store) {
	store := chatstore.New(nil)
	return New(store, fetcher, creds, conn), store
}

func TestBind(t *testing.T) {
	t.Run("fetches history and connects with fresh token", func(t *testing.T) {
		fetcher := &fakeFetcher{msgs: map[string][]models.Message{
			"c1": {{ID: "m1", ChatID: "c1", Role: models.RoleUser, Content: "hi"}},
		}}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, store := newBinder(fetcher, creds, conn)

		if err := b.Bind(context.Background(), "c1"); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}

		if conn.connectCount() != 1 {
			t.Fatalf("connects = %d, want 1", conn.connectCount())
		}
		if got := conn.connects[0]; got.chatID != "c1" || got.token != "fresh-token" {
			t.Errorf("Connect(%q, %q), want c1 with fresh-token", got.chatID, got.token)
		}
		if b.Bound() != "c1" {
			t.Errorf("Bound() = %q, want c1", b.Bound())
		}

		waitFor(t, func() bool { return len(store.Messages("c1")) == 1 }, "history fetch")
	})

	t.Run("same target is a no-op", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		b.Bind(context.Background(), "c1")
		b.Bind(context.Background(), "c1")
		b.Bind(context.Background(), "c1")

		if conn.connectCount() != 1 {
			t.Errorf("connects = %d, want 1", conn.connectCount())
		}
		creds.mu.Lock()
		defer creds.mu.Unlock()
		if creds.calls != 1 {
			t.Errorf("credential calls = %d, want 1", creds.calls)
		}
	})

	t.Run("new target connects again", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		b.Bind(context.Background(), "c1")
		b.Bind(context.Background(), "c2")

		if conn.connectCount() != 2 {
			t.Fatalf("connects = %d, want 2", conn.connectCount())
		}
		if conn.connects[1].chatID != "c2" {
			t.Errorf("second connect = %q, want c2", conn.connects[1].chatID)
		}
		if b.Bound() != "c2" {
			t.Errorf("Bound() = %q, want c2", b.Bound())
		}
	})

	t.Run("newer bind supersedes one stalled at the credential fetch", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{gate: make(chan struct{})}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		// c1's bind blocks inside the credential fetch.
		done := make(chan error, 1)
		go func() { done <- b.Bind(context.Background(), "c1") }()
		waitFor(t, func() bool { return creds.tokenCalls() == 1 }, "stalled credential fetch")

		// The user switches to c2 while c1 is still waiting.
		if err := b.Bind(context.Background(), "c2"); err != nil {
			t.Fatalf("Bind(c2) error = %v", err)
		}

		// c1's credential finally resolves. It must not reach the
		// transport: connecting now would tear down c2's connection.
		close(creds.gate)
		if err := <-done; err != nil {
			t.Fatalf("superseded Bind(c1) error = %v", err)
		}

		if conn.connectCount() != 1 {
			t.Fatalf("connects = %d, want 1 (only c2)", conn.connectCount())
		}
		conn.mu.Lock()
		last := conn.connects[len(conn.connects)-1]
		conn.mu.Unlock()
		if last.chatID != "c2" {
			t.Errorf("final connect target = %q, want c2", last.chatID)
		}
		if b.Bound() != "c2" {
			t.Errorf("Bound() = %q, want c2", b.Bound())
		}
	})

	t.Run("unbind supersedes a bind stalled at the credential fetch", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{gate: make(chan struct{})}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		done := make(chan error, 1)
		go func() { done <- b.Bind(context.Background(), "c1") }()
		waitFor(t, func() bool { return creds.tokenCalls() == 1 }, "stalled credential fetch")

		b.Unbind()
		close(creds.gate)
		if err := <-done; err != nil {
			t.Fatalf("superseded Bind(c1) error = %v", err)
		}

		if conn.connectCount() != 0 {
			t.Errorf("connects = %d, want 0 after unbind", conn.connectCount())
		}
		if b.Bound() != "" {
			t.Errorf("Bound() = %q, want empty", b.Bound())
		}
	})

	t.Run("credential failure aborts and is retried next bind", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{err: errors.New("refresh token revoked")}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		if err := b.Bind(context.Background(), "c1"); err == nil {
			t.Fatal("expected credential error")
		}

		if conn.connectCount() != 0 {
			t.Errorf("connects = %d, want 0 after credential failure", conn.connectCount())
		}
		if b.Bound() != "" {
			t.Errorf("Bound() = %q, want empty: failed bind must not be memoized", b.Bound())
		}

		// The failure is not sticky: once credentials recover, the same
		// target binds normally.
		creds.mu.Lock()
		creds.err = nil
		creds.mu.Unlock()

		if err := b.Bind(context.Background(), "c1"); err != nil {
			t.Fatalf("Bind() after recovery error = %v", err)
		}
		if conn.connectCount() != 1 {
			t.Errorf("connects = %d, want 1 after recovery", conn.connectCount())
		}
	})

	t.Run("empty target unbinds", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, _ := newBinder(fetcher, creds, conn)

		b.Bind(context.Background(), "c1")
		b.Bind(context.Background(), "")

		if b.Bound() != "" {
			t.Errorf("Bound() = %q, want empty", b.Bound())
		}
		if conn.disconnects != 1 {
			t.Errorf("disconnects = %d, want 1", conn.disconnects)
		}
	})

	t.Run("fetch failure marks status, connection proceeds", func(t *testing.T) {
		fetcher := &fakeFetcher{err: errors.New("503 unavailable")}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, store := newBinder(fetcher, creds, conn)

		if err := b.Bind(context.Background(), "c1"); err != nil {
			t.Fatalf("Bind() error = %v", err)
		}

		waitFor(t, func() bool {
			status, _ := store.MessagesStatus()
			return status == chatstore.StatusFailed
		}, "fetch failure status")

		if conn.connectCount() != 1 {
			t.Errorf("connects = %d, want 1 despite fetch failure", conn.connectCount())
		}
	})

	t.Run("pushed messages land in the store", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		creds := &fakeCreds{}
		conn := &fakeConnector{}
		b, store := newBinder(fetcher, creds, conn)

		b.Bind(context.Background(), "c1")

		conn.onMessage(models.Message{ID: "m1", ChatID: "c1", Role: models.RoleAssistant, Content: "hello"})
		conn.onMessage(models.Message{ID: "m1", ChatID: "c1", Role: models.RoleAssistant, Content: "hello"})

		if got := len(store.Messages("c1")); got != 1 {
			t.Errorf("log length = %d, want 1 (duplicate push collapsed)", got)
		}
	})
}

func TestUnbind(t *testing.T) {
	fetcher := &fakeFetcher{}
	creds := &fakeCreds{}
	conn := &fakeConnector{}
	b, _ := newBinder(fetcher, creds, conn)

	b.Bind(context.Background(), "c1")
	b.Unbind()
	b.Unbind() // idempotent

	if b.Bound() != "" {
		t.Errorf("Bound() = %q, want empty", b.Bound())
	}
	if conn.disconnects != 2 {
		// Disconnect itself is idempotent at the manager; the binder
		// just forwards.
		t.Errorf("disconnects = %d, want 2", conn.disconnects)
	}
}

func TestReset(t *testing.T) {
	fetcher := &fakeFetcher{msgs: map[string][]models.Message{
		"c1": {{ID: "m1", ChatID: "c1", Role: models.RoleUser, Content: "hi"}},
	}}
	creds := &fakeCreds{}
	conn := &fakeConnector{}
	b, store := newBinder(fetcher, creds, conn)

	store.SetChats([]models.Chat{{ID: "c1", Title: "one"}})
	b.Bind(context.Background(), "c1")
	waitFor(t, func() bool { return len(store.Messages("c1")) == 1 }, "history fetch")

	b.Reset()

	if b.Bound() != "" {
		t.Error("still bound after reset")
	}
	if conn.disconnects != 1 {
		t.Errorf("disconnects = %d, want 1", conn.disconnects)
	}
	if len(store.Chats()) != 0 || len(store.Messages("c1")) != 0 {
		t.Error("store not cleared")
	}
	if store.ActiveChat() != "" {
		t.Error("active chat not cleared")
	}
}
