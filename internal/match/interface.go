package match

import (
	"context"
	"time"
)

// Store persists matches. Every mutating method applies its guard and its
// write in a single transaction so concurrent callers cannot overshoot
// capacity or resurrect a cancelled match.
type Store interface {
	Insert(ctx context.Context, m *Match) error
	Get(ctx context.Context, matchID string) (*Match, error)
	AddPlayer(ctx context.Context, matchID, userID string, at time.Time) (*Match, error)
	RemovePlayer(ctx context.Context, matchID, userID string, at time.Time) (*Match, error)
	// Cancel reports changed=false when the match was already cancelled.
	Cancel(ctx context.Context, matchID, userID string, at time.Time) (m *Match, changed bool, err error)
	SetPaymentStatus(ctx context.Context, matchID, status string, at time.Time) error
	ListOpenFrom(ctx context.Context, from time.Time) ([]Match, error)
	ListForUser(ctx context.Context, userID string) ([]Match, error)
	Search(ctx context.Context, term, sport string, from time.Time) ([]Match, error)
	OccupiedTimes(ctx context.Context, courtID, date string) ([]string, error)
}
