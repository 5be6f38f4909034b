package processor

import (
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
)

// Processor consumes match lifecycle events after they are committed.
type Processor struct {
	nearby   Nearby
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}

type contextKey string

const dryRunKey contextKey = "dryRun"
