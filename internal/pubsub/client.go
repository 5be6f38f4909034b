package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
)

var _ PubSubClient = (*client)(nil)

// New connects to Google Cloud Pub/Sub. Subscriptions are push
// subscriptions delivered to the HTTP server, so this client only publishes.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topics: map[EventType]*pubsub.Topic{},
	}, nil
}

// topic returns the cached publisher handle for an event type.
func (c *client) topic(t EventType) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tp, ok := c.topics[t]; ok {
		return tp
	}
	tp := c.client.Topic(string(t))
	c.topics[t] = tp
	return tp
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	payload, err := Encode(data)
	if err != nil {
		log.Error("Failed to encode event", "topic", topic, "error", err)
		return err
	}
	result := c.topic(topic).Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"event": string(topic)},
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	log.Debug("Published event", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Close flushes pending publishes and closes the connection.
func (c *client) Close() error {
	c.mu.Lock()
	for _, tp := range c.topics {
		tp.Stop()
	}
	c.topics = map[EventType]*pubsub.Topic{}
	c.mu.Unlock()
	return c.client.Close()
}
