package inbox

import "context"

// Store persists user notifications.
type Store interface {
	// InsertBatch writes all records in one transaction.
	InsertBatch(ctx context.Context, notifications []Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
