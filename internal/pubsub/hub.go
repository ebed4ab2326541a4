package pubsub

import (
	"sync"

	"github.com/velachat/vela/internal/events"
)

// Hub is the central container for all domain brokers.
type Hub struct {
	Chat *Broker[events.ChatEvent]
	Conn *Broker[events.ConnEvent]
	Auth *Broker[events.AuthEvent]

	done chan struct{}
}

// NewHub creates a new Hub with all domain brokers initialized.
func NewHub() *Hub {
	return &Hub{
		Chat: NewBroker[events.ChatEvent]("chat"),
		Conn: NewBroker[events.ConnEvent]("conn"),
		Auth: NewBroker[events.AuthEvent]("auth"),
		done: make(chan struct{}),
	}
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	select {
	case <-h.done:
		return
	default:
		close(h.done)
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() { defer wg.Done(); h.Chat.Shutdown() }()
	go func() { defer wg.Done(); h.Conn.Shutdown() }()
	go func() { defer wg.Done(); h.Auth.Shutdown() }()

	wg.Wait()
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
