package profile

import (
	"context"
	"database/sql"
	"fmt"
)

// New creates a new profile Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) ListNotificationCandidates(ctx context.Context) ([]Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, display_name, lat, lng, notification_radius_km, notifications_enabled
		FROM profiles
		WHERE notification_radius_km > 0
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var (
			c             Candidate
			lat, lng, rad sql.NullFloat64
		)
		if err := rows.Scan(&c.UserID, &c.DisplayName, &lat, &lng, &rad, &c.NotificationsEnabled); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		if lat.Valid {
			c.Location.Lat = &lat.Float64
		}
		if lng.Valid {
			c.Location.Lng = &lng.Float64
		}
		if rad.Valid {
			c.NotificationRadiusKm = &rad.Float64
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *store) UpsertProfile(ctx context.Context, c Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, lat, lng, notification_radius_km, notifications_enabled)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			lat = excluded.lat,
			lng = excluded.lng,
			notification_radius_km = excluded.notification_radius_km,
			notifications_enabled = excluded.notifications_enabled;
	`, c.UserID, c.DisplayName, c.Location.Lat, c.Location.Lng, c.NotificationRadiusKm, c.NotificationsEnabled)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", c.UserID, err)
	}
	return nil
}
