package profile

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/mauv0809/courtside/internal/geo"
)

// Candidate is the notification-relevant projection of a user profile.
type Candidate struct {
	UserID               string       `json:"user_id"`
	DisplayName          string       `json:"display_name"`
	Location             geo.Location `json:"location"`
	NotificationRadiusKm *float64     `json:"notification_radius_km,omitempty"`
	NotificationsEnabled bool         `json:"notifications_enabled"`
}

var (
	ErrUserRequired    = errors.New("user is required")
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidRadius   = errors.New("invalid notification radius")
)

// Validate checks a profile before it is stored. Coordinates are optional but
// must come as a pair.
func (c Candidate) Validate() error {
	if c.UserID == "" {
		return ErrUserRequired
	}
	lat, lng := c.Location.Lat, c.Location.Lng
	if (lat == nil) != (lng == nil) {
		return fmt.Errorf("%w: lat and lng must be set together", ErrInvalidLocation)
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lng < -180 || *lng > 180) {
		return fmt.Errorf("%w: %f,%f out of range", ErrInvalidLocation, *lat, *lng)
	}
	if c.NotificationRadiusKm != nil && *c.NotificationRadiusKm < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidRadius, *c.NotificationRadiusKm)
	}
	return nil
}

// store handles database operations for profiles.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
