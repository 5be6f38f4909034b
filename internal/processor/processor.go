package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// New creates a new Processor.
func New(nearby Nearby, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		nearby:   nearby,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// WithDryRun marks ctx so handlers log instead of writing or posting.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey, dryRun)
}

func isDryRun(ctx context.Context) bool {
	dryRun, ok := ctx.Value(dryRunKey).(bool)
	return ok && dryRun
}

// Register subscribes the processor's handlers on an in-process transport.
func (p *Processor) Register(sub pubsub.Subscriber) {
	sub.Subscribe(pubsub.EventMatchCreated, p.HandleMatchCreated)
	sub.Subscribe(pubsub.EventMatchCancelled, p.HandleMatchCancelled)
}

func (p *Processor) decode(data []byte) (*match.Match, error) {
	var event match.Event
	if err := p.pubsub.ProcessMessage(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode match event: %w", err)
	}
	if event.Match.ID == "" {
		return nil, errors.New("match event without match id")
	}
	return &event.Match, nil
}

// HandleMatchCreated fans the new match out to nearby users and announces it.
// Delivery failures are logged and do not fail the event.
func (p *Processor) HandleMatchCreated(ctx context.Context, data []byte) error {
	m, err := p.decode(data)
	if err != nil {
		return err
	}
	dryRun := isDryRun(ctx)
	log.Info("Processing match-created event", "matchID", m.ID, "dryRun", dryRun)

	if dryRun {
		log.Info("[Dry Run] Would run proximity notifications", "matchID", m.ID)
	} else if _, err := p.nearby.Notify(ctx, *m); err != nil {
		log.Error("Proximity notification failed", "matchID", m.ID, "error", err)
	}

	if err := p.notifier.SendMatchCreated(m, dryRun); err != nil {
		log.Error("Failed to announce match", "matchID", m.ID, "error", err)
	}
	return nil
}

// HandleMatchCancelled announces a cancellation.
func (p *Processor) HandleMatchCancelled(ctx context.Context, data []byte) error {
	m, err := p.decode(data)
	if err != nil {
		return err
	}
	log.Info("Processing match-cancelled event", "matchID", m.ID)
	if err := p.notifier.SendMatchCancelled(m, isDryRun(ctx)); err != nil {
		log.Error("Failed to announce cancellation", "matchID", m.ID, "error", err)
	}
	return nil
}
