package pubsub

import (
	"context"
	"sync"

	"cloud.google.com/go/pubsub"
)

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name (GCP) and routing key (AMQP).
type EventType string

const (
	EventMatchCreated   EventType = "match-created"
	EventMatchCancelled EventType = "match-cancelled"
)

// Handler consumes one raw message payload.
type Handler func(ctx context.Context, data []byte) error

type client struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[EventType]*pubsub.Topic
}
