package pubsub

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

var ErrClosed = errors.New("pubsub: transport closed")

var (
	_ PubSubClient = (*Bus)(nil)
	_ Subscriber   = (*Bus)(nil)
)

// Bus is an in-process transport. SendMessage returns once the payload is
// encoded; handlers run on their own goroutines.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	closed   bool
	wg       sync.WaitGroup
}

// NewBus creates an empty in-process bus.
func NewBus() *Bus {
	return &Bus{handlers: map[EventType][]Handler{}}
}

func (b *Bus) Subscribe(topic EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

func (b *Bus) SendMessage(ctx context.Context, topic EventType, data any) error {
	payload, err := Encode(data)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	handlers := b.handlers[topic]
	if len(handlers) == 0 {
		log.Debug("No subscribers for event", "topic", topic)
		return nil
	}
	// Handlers outlive the publishing request.
	hctx := context.WithoutCancel(ctx)
	for _, h := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			if err := h(hctx, payload); err != nil {
				log.Error("Event handler failed", "topic", topic, "error", err)
			}
		}(h)
	}
	return nil
}

func (b *Bus) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Wait blocks until every dispatched handler has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}

// Close rejects further messages and waits for in-flight handlers.
func (b *Bus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
	return nil
}
