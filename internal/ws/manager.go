// Package ws owns the live WebSocket session to the chat backend.
//
// A Manager holds at most one transport at a time. Connecting to a new
// chat always closes the previous transport first, and a connect that is
// still in flight when a newer one starts is abandoned: its socket is
// closed on arrival and nothing it received is delivered. The transport
// handle never leaves this package.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/events"
	"github.com/velachat/vela/internal/models"
	"github.com/velachat/vela/internal/pubsub"
)

// ErrNotConnected is returned by Send when no transport is open.
var ErrNotConnected = errors.New("ws: not connected")

// State describes the connection lifecycle.
type State int

// Connection states. Connecting and Open both count as "active" for
// callers deciding whether a chat is bound; the distinction only matters
// to the status display.
const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "disconnected"
	}
}

// Conn is the transport handle as the manager sees it. Read returns the
// next text frame. Close performs a graceful close with the normal
// closure code.
type Conn interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Dialer opens a transport to the given URL. The production dialer wraps
// coder/websocket; tests inject fakes.
type Dialer interface {
	Dial(ctx context.Context, target string) (Conn, error)
}

// MessageHandler receives inbound messages from the open transport.
type MessageHandler func(models.Message)

// Manager binds a chat ID to a single live transport.
type Manager struct {
	mu      sync.Mutex
	baseURL string
	dialer  Dialer
	broker  *pubsub.Broker[events.ConnEvent]

	conn   Conn
	chatID string
	state  State
	gen    uint64
	cancel context.CancelFunc
}

// NewManager creates a manager that derives its WebSocket endpoint from
// the REST base URL. The broker may be nil in tests.
func NewManager(baseURL string, dialer Dialer, broker *pubsub.Broker[events.ConnEvent]) *Manager {
	return &Manager{
		baseURL: baseURL,
		dialer:  dialer,
		broker:  broker,
	}
}

// DeriveURL converts the REST base URL into the WebSocket endpoint for a
// chat: http becomes ws, https becomes wss, and the chat ID and bearer
// token are appended per the backend's /ws/{chatId}?token= contract.
func DeriveURL(base, chatID, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already a websocket URL.
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/" + chatID
	q := url.Values{}
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Connect binds the manager to a chat. Any open transport is closed
// (normal closure) before the new dial begins, so two transports are
// never open at once. The dial itself runs asynchronously; handshake
// failures surface on the Conn broker rather than as a return value.
// onMessage becomes the exclusive inbound handler for this connection.
func (m *Manager) Connect(ctx context.Context, chatID, token string, onMessage MessageHandler) {
	target, err := DeriveURL(m.baseURL, chatID, token)
	if err != nil {
		debug.Error("ws", err, "building connection URL")
		m.publish(pubsub.EventFailed, events.NewConnFailedEvent(chatID, err))
		return
	}

	m.mu.Lock()
	m.closeLocked()
	m.gen++
	gen := m.gen
	m.chatID = chatID
	m.state = StateConnecting

	connCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	debug.Event("ws", "connecting", "chat="+chatID)
	m.publish(pubsub.EventProgress, events.NewConnConnectingEvent(chatID))

	go m.dial(ctx, connCtx, gen, chatID, target, onMessage)
}

func (m *Manager) dial(ctx, connCtx context.Context, gen uint64, chatID, target string, onMessage MessageHandler) {
	conn, err := m.dialer.Dial(ctx, target)

	m.mu.Lock()
	if gen != m.gen {
		// Superseded by a newer Connect or a Disconnect while dialing.
		m.mu.Unlock()
		if err == nil {
			conn.Close()
		}
		return
	}

	if err != nil {
		m.chatID = ""
		m.state = StateDisconnected
		m.mu.Unlock()
		debug.Error("ws", err, "handshake for chat "+chatID)
		m.publish(pubsub.EventFailed, events.NewConnFailedEvent(chatID, err))
		return
	}

	m.conn = conn
	m.state = StateOpen
	m.mu.Unlock()

	debug.Event("ws", "connected", "chat="+chatID)
	m.publish(pubsub.EventCreated, events.NewConnConnectedEvent(chatID))

	m.readLoop(connCtx, conn, gen, chatID, onMessage)
}

// readLoop delivers inbound frames until the connection dies or is
// superseded. Malformed frames are dropped and logged; they never reach
// the handler and never close the connection.
func (m *Manager) readLoop(ctx context.Context, conn Conn, gen uint64, chatID string, onMessage MessageHandler) {
	for {
		data, err := conn.Read(ctx)
		if err != nil {
			m.mu.Lock()
			current := gen == m.gen
			if current {
				m.conn = nil
				m.chatID = ""
				m.state = StateDisconnected
			}
			m.mu.Unlock()

			if current {
				debug.Event("ws", "closed", fmt.Sprintf("chat=%s err=%v", chatID, err))
				m.publish(pubsub.EventDeleted, events.NewConnDisconnectedEvent(chatID))
			}
			return
		}

		msg, err := models.ParseMessage(data)
		if err != nil {
			debug.Error("ws", err, "dropping malformed frame")
			m.publish(pubsub.EventFailed, events.NewFrameDroppedEvent(chatID, err))
			continue
		}

		m.mu.Lock()
		current := gen == m.gen
		m.mu.Unlock()
		if !current {
			// Frame from a superseded connection; never deliver it.
			return
		}

		onMessage(msg)
	}
}

// Send forwards a raw text payload over the open transport. When no
// transport is open this logs and returns ErrNotConnected; the UI
// disables the send control while disconnected, so callers may ignore
// the error.
func (m *Manager) Send(ctx context.Context, payload string) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		debug.Log("[ws] send while disconnected, dropping %d bytes", len(payload))
		return ErrNotConnected
	}

	if err := conn.Write(ctx, []byte(payload)); err != nil {
		debug.Error("ws", err, "writing frame")
		return err
	}
	return nil
}

// Disconnect closes the open transport with a normal closure code and
// clears the handle. Calling it when already disconnected is a no-op.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	wasActive := m.state != StateDisconnected
	chatID := m.chatID
	m.closeLocked()
	m.gen++ // Abandon any in-flight dial.
	m.chatID = ""
	m.state = StateDisconnected
	m.mu.Unlock()

	if wasActive {
		debug.Event("ws", "disconnected", "chat="+chatID)
		m.publish(pubsub.EventDeleted, events.NewConnDisconnectedEvent(chatID))
	}
}

// closeLocked closes the current transport if open. Caller must hold mu.
func (m *Manager) closeLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			debug.Error("ws", err, "closing transport")
		}
		m.conn = nil
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ChatID returns the chat the manager is bound to, or "" when
// disconnected.
func (m *Manager) ChatID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatID
}

func (m *Manager) publish(eventType pubsub.EventType, ev events.ConnEvent) {
	if m.broker != nil {
		m.broker.Publish(eventType, ev)
	}
}
