package court

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/schedule"
)

var ErrNotFound = errors.New("court not found")

// Court is the read-only view of a bookable court.
type Court struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Sport        string                `json:"sport"`
	OwnerID      string                `json:"owner_id"`
	PricePerHour int64                 `json:"price_per_hour"`
	Capacity     int                   `json:"capacity"`
	IsActive     bool                  `json:"is_active"`
	Location     geo.Location          `json:"location"`
	Availability schedule.Availability `json:"availability"`
}

// store handles database operations for courts.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
