package notifier

import "github.com/mauv0809/courtside/internal/match"

// Notifier announces match lifecycle events on a shared channel.
// This decouples the rest of the application from the specific provider (e.g., Slack).
type Notifier interface {
	SendMatchCreated(m *match.Match, dryRun bool) error
	SendMatchCancelled(m *match.Match, dryRun bool) error
}
