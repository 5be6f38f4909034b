package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/match"
)

type logNotifier struct{}

// NewLogNotifier returns a Notifier that only logs, used when no channel is configured.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) SendMatchCreated(m *match.Match, dryRun bool) error {
	log.Info("Match created", "matchID", m.ID, "court", m.CourtName, "date", m.Date, "time", m.Time, "spotsLeft", m.SpotsLeft())
	return nil
}

func (logNotifier) SendMatchCancelled(m *match.Match, dryRun bool) error {
	log.Info("Match cancelled", "matchID", m.ID, "court", m.CourtName, "date", m.Date, "time", m.Time)
	return nil
}
