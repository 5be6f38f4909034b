package court

import "context"

// Store defines read and maintenance operations on the court catalog.
type Store interface {
	GetCourt(ctx context.Context, courtID string) (*Court, error)
	ListCourts(ctx context.Context) ([]Court, error)
	UpsertCourt(ctx context.Context, c *Court) error
}
