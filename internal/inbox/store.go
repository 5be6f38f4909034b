package inbox

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// rowsPerStatement keeps each INSERT under SQLite's bound-parameter limit.
const rowsPerStatement = 100

// New creates a new notification Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) InsertBatch(ctx context.Context, notifications []Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(notifications); start += rowsPerStatement {
		end := min(start+rowsPerStatement, len(notifications))
		chunk := notifications[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*9)
		for i, n := range chunk {
			placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args, n.ID, n.UserID, string(n.Type), n.MatchID, n.DistanceKm, n.Title, n.Message, n.Read, n.CreatedAt.Unix())
		}
		query := `INSERT INTO notifications (id, user_id, type, match_id, distance_km, title, message, read, created_at) VALUES ` +
			strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert notifications: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notifications: %w", err)
	}
	log.Debug("Inserted notifications", "count", len(notifications))
	return nil
}

func (s *store) ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, match_id, distance_km, title, message, read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var (
			n         Notification
			typ       string
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.MatchID, &n.DistanceKm, &n.Title, &n.Message, &n.Read, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		n.Type = Type(typ)
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *store) MarkRead(ctx context.Context, userID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, notificationID)
	}
	return nil
}
