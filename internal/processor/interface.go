package processor

import (
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/proximity"
)

// Nearby is the proximity fan-out the processor runs for new matches.
type Nearby interface {
	proximity.Notifier
}

// Notifier defines the channel announcements required by the processor.
type Notifier interface {
	notifier.Notifier
}
