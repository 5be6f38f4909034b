package profile

import "context"

// Store exposes the user profiles the notifier reads.
type Store interface {
	// ListNotificationCandidates returns every profile with a positive
	// notification radius. Disabled or coordinate-less profiles are included.
	ListNotificationCandidates(ctx context.Context) ([]Candidate, error)
	UpsertProfile(ctx context.Context, c Candidate) error
}
