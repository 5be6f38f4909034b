package court

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/schedule"
)

// New creates a new court Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const courtColumns = `id, name, sport, owner_id, price_per_hour, capacity, is_active, lat, lng, address, availability_json`

func (s *store) GetCourt(ctx context.Context, courtID string) (*Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+courtColumns+` FROM courts WHERE id = ?`, courtID)
	c, err := scanCourt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, courtID)
		}
		return nil, fmt.Errorf("failed to get court: %w", err)
	}
	return c, nil
}

func (s *store) ListCourts(ctx context.Context) ([]Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+courtColumns+` FROM courts ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courts: %w", err)
	}
	defer rows.Close()

	courts := []Court{}
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan court row: %w", err)
		}
		courts = append(courts, *c)
	}
	return courts, rows.Err()
}

func (s *store) UpsertCourt(ctx context.Context, c *Court) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	availability, err := json.Marshal(c.Availability)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO courts (`+courtColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			owner_id = excluded.owner_id,
			price_per_hour = excluded.price_per_hour,
			capacity = excluded.capacity,
			is_active = excluded.is_active,
			lat = excluded.lat,
			lng = excluded.lng,
			address = excluded.address,
			availability_json = excluded.availability_json;
	`, c.ID, c.Name, c.Sport, c.OwnerID, c.PricePerHour, c.Capacity, c.IsActive,
		c.Location.Lat, c.Location.Lng, c.Location.Address, string(availability))
	if err != nil {
		return fmt.Errorf("failed to upsert court %s: %w", c.ID, err)
	}
	log.Debug("Upserted court", "courtID", c.ID)
	return nil
}

func scanCourt(scanner interface{ Scan(...any) error }) (*Court, error) {
	var (
		c            Court
		lat, lng     sql.NullFloat64
		availability string
	)
	if err := scanner.Scan(&c.ID, &c.Name, &c.Sport, &c.OwnerID, &c.PricePerHour, &c.Capacity, &c.IsActive,
		&lat, &lng, &c.Location.Address, &availability); err != nil {
		return nil, err
	}
	if lat.Valid {
		c.Location.Lat = &lat.Float64
	}
	if lng.Valid {
		c.Location.Lng = &lng.Float64
	}
	av, err := schedule.ParseAvailability([]byte(availability))
	if err != nil {
		// A broken calendar must not make the court bookable.
		log.Warn("Court has unreadable availability, treating every day as closed", "courtID", c.ID, "error", err)
		av = schedule.Availability{}
	}
	c.Availability = av
	return &c, nil
}
