package pubsub

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	_ PubSubClient = (*AMQPClient)(nil)
	_ Subscriber   = (*AMQPClient)(nil)
)

// AMQPClient publishes events to a RabbitMQ topic exchange, using the event
// type as routing key, and consumes them from a durable queue.
type AMQPClient struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	mu       sync.RWMutex
	handlers map[EventType]Handler
}

// NewAMQP dials url and declares exchange.
func NewAMQP(url, exchange string) (*AMQPClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPClient{conn: conn, ch: ch, exchange: exchange, handlers: map[EventType]Handler{}}, nil
}

func (c *AMQPClient) SendMessage(ctx context.Context, topic EventType, data any) error {
	body, err := Encode(data)
	if err != nil {
		return err
	}
	err = c.ch.PublishWithContext(ctx, c.exchange, string(topic), false, false, amqp.Publishing{
		ContentType:  "application/msgpack",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (c *AMQPClient) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Subscribe registers the handler for a routing key. Call before Consume.
func (c *AMQPClient) Subscribe(topic EventType, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = h
}

// Consume binds queue to every subscribed routing key and dispatches
// deliveries until ctx is done or the channel closes.
func (c *AMQPClient) Consume(ctx context.Context, queue string) error {
	q, err := c.ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	c.mu.RLock()
	for topic := range c.handlers {
		if err := c.ch.QueueBind(q.Name, string(topic), c.exchange, false, nil); err != nil {
			c.mu.RUnlock()
			return fmt.Errorf("bind %s: %w", topic, err)
		}
	}
	c.mu.RUnlock()

	deliveries, err := c.ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", q.Name, err)
	}
	log.Info("Consuming events", "queue", q.Name, "exchange", c.exchange)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *AMQPClient) dispatch(ctx context.Context, d amqp.Delivery) {
	c.mu.RLock()
	h, ok := c.handlers[EventType(d.RoutingKey)]
	c.mu.RUnlock()
	if !ok {
		log.Warn("Dropping event without handler", "routingKey", d.RoutingKey)
		_ = d.Nack(false, false)
		return
	}
	if err := h(ctx, d.Body); err != nil {
		log.Error("Event handler failed", "routingKey", d.RoutingKey, "error", err)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

func (c *AMQPClient) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
