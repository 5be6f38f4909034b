package inbox

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// Type classifies a notification.
type Type string

const (
	TypeProximity Type = "proximity"
)

var ErrNotFound = errors.New("notification not found")

// Notification is one inbox entry for a user.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       Type      `json:"type"`
	MatchID    string    `json:"match_id"`
	DistanceKm float64   `json:"distance_km"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// store handles database operations for notifications.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
