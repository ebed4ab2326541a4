package bridge

import (
	"context"
	"fmt"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/velachat/vela/internal/debug"
	"github.com/velachat/vela/internal/pubsub"
)

// Sender is the part of tea.Program the bridge needs. Tests inject a
// recorder.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIBridge subscribes to all Hub brokers and forwards events to the
// program.
type TUIBridge struct {
	hub     *pubsub.Hub
	program Sender

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTUIBridge creates a bridge between the hub and the program.
func NewTUIBridge(hub *pubsub.Hub, program Sender) *TUIBridge {
	return &TUIBridge{
		hub:     hub,
		program: program,
	}
}

// Start begins forwarding events to the TUI. Call Stop to shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(3)
	go b.subscribeChat()
	go b.subscribeConn()
	go b.subscribeAuth()

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop shuts down the bridge and waits for the forwarders to exit.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeChat() {
	defer b.wg.Done()

	events := b.hub.Chat.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			debug.Event("bridge", "chat", fmt.Sprintf("id=%s type=%s", event.ID, event.Type))
			b.program.Send(ChatEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeConn() {
	defer b.wg.Done()

	events := b.hub.Conn.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			debug.Event("bridge", "conn", fmt.Sprintf("id=%s type=%s", event.ID, event.Type))
			b.program.Send(ConnEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeAuth() {
	defer b.wg.Done()

	events := b.hub.Auth.Subscribe(b.ctx)
	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			debug.Event("bridge", "auth", fmt.Sprintf("id=%s type=%s", event.ID, event.Type))
			b.program.Send(AuthEventMsg{Event: event})
		}
	}
}
