package pubsub

import "context"

// PubSubClient publishes lifecycle events and decodes received payloads.
type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}

// Subscriber is implemented by transports that deliver messages in-process
// rather than through an HTTP push endpoint.
type Subscriber interface {
	Subscribe(topic EventType, h Handler)
}
