package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerSubscribePublish(t *testing.T) {
	t.Run("single subscriber receives events", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, "hello")

		select {
		case event := <-events:
			if event.Type != EventCreated || event.Payload != "hello" {
				t.Errorf("unexpected event: %+v", event)
			}
			if event.ID == "" {
				t.Error("event has no ID")
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("timeout waiting for event")
		}
	})

	t.Run("each publish carries a distinct id", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, "first")
		broker.Publish(EventCreated, "second")

		first := <-events
		second := <-events
		if first.ID == "" || first.ID == second.ID {
			t.Errorf("ids = %q, %q, want distinct non-empty ids", first.ID, second.ID)
		}
	})

	t.Run("multiple subscribers receive same event", func(t *testing.T) {
		broker := NewBroker[int]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Publish(EventUpdated, 42)

		for i, sub := range []<-chan Event[int]{sub1, sub2} {
			select {
			case event := <-sub:
				if event.Payload != 42 {
					t.Errorf("subscriber %d: expected 42, got %d", i, event.Payload)
				}
			case <-time.After(100 * time.Millisecond):
				t.Errorf("subscriber %d: timeout", i)
			}
		}
	})

	t.Run("cancelled context unsubscribes", func(t *testing.T) {
		broker := NewBroker[string]("test")
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())

		events := broker.Subscribe(ctx)

		if broker.SubscriberCount() != 1 {
			t.Errorf("expected 1 subscriber, got %d", broker.SubscriberCount())
		}

		cancel()
		time.Sleep(50 * time.Millisecond) // Allow cleanup goroutine to run

		if broker.SubscriberCount() != 0 {
			t.Errorf("expected 0 subscribers after cancel, got %d", broker.SubscriberCount())
		}

		// Channel should be closed
		if _, ok := <-events; ok {
			t.Error("expected channel to be closed")
		}
	})

	t.Run("shutdown closes all subscribers", func(t *testing.T) {
		broker := NewBroker[string]("test")

		ctx := context.Background()
		sub1 := broker.Subscribe(ctx)
		sub2 := broker.Subscribe(ctx)

		broker.Shutdown()

		if _, ok := <-sub1; ok {
			t.Error("sub1 should be closed")
		}
		if _, ok := <-sub2; ok {
			t.Error("sub2 should be closed")
		}
	})

	t.Run("publish after shutdown is no-op", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		// Must not panic
		broker.Publish(EventCreated, "after shutdown")

		if !broker.IsShutdown() {
			t.Error("expected broker to report shutdown")
		}
	})

	t.Run("subscribe after shutdown returns closed channel", func(t *testing.T) {
		broker := NewBroker[string]("test")
		broker.Shutdown()

		events := broker.Subscribe(context.Background())
		if _, ok := <-events; ok {
			t.Error("expected closed channel")
		}
	})

	t.Run("full buffer drops events", func(t *testing.T) {
		broker := NewBroker[int]("test", WithBufferSize[int](1))
		defer broker.Shutdown()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := broker.Subscribe(ctx)

		broker.Publish(EventCreated, 1)
		broker.Publish(EventCreated, 2) // Dropped: buffer full, nobody reading

		got := <-events
		if got.Payload != 1 {
			t.Errorf("expected first event, got %d", got.Payload)
		}

		select {
		case e := <-events:
			t.Errorf("expected second event to be dropped, got %+v", e)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestHub(t *testing.T) {
	t.Run("shutdown closes all brokers", func(t *testing.T) {
		hub := NewHub()

		chatSub := hub.Chat.Subscribe(context.Background())
		connSub := hub.Conn.Subscribe(context.Background())
		authSub := hub.Auth.Subscribe(context.Background())

		hub.Shutdown()

		if _, ok := <-chatSub; ok {
			t.Error("chat subscription should be closed")
		}
		if _, ok := <-connSub; ok {
			t.Error("conn subscription should be closed")
		}
		if _, ok := <-authSub; ok {
			t.Error("auth subscription should be closed")
		}

		select {
		case <-hub.Done():
		default:
			t.Error("hub Done channel should be closed")
		}
	})

	t.Run("double shutdown is safe", func(t *testing.T) {
		hub := NewHub()
		hub.Shutdown()
		hub.Shutdown()
	})
}
