package proximity

import (
	"context"

	"github.com/mauv0809/courtside/internal/match"
)

// Notifier broadcasts a newly created match to nearby users.
type Notifier interface {
	// Notify returns the number of notification records written.
	Notify(ctx context.Context, m match.Match) (int, error)
}
