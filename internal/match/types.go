package match

import (
	"slices"
	"time"

	"github.com/mauv0809/courtside/internal/geo"
)

// Status is the stored lifecycle state of a match. "Past" is derived, see IsPast.
type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusCancelled Status = "cancelled"
)

// Match is a scheduled game on a court that players can join.
type Match struct {
	ID             string       `json:"id"`
	Sport          string       `json:"sport"`
	CourtID        string       `json:"court_id"`
	CourtName      string       `json:"court_name"`
	Location       geo.Location `json:"location"`
	Date           string       `json:"date"`
	Time           string       `json:"time"`
	DurationHours  float64      `json:"duration_hours"`
	MaxPlayers     int          `json:"max_players"`
	Players        []string     `json:"players"`
	CurrentPlayers int          `json:"current_players"`
	CaptainID      string       `json:"captain_id"`
	CaptainName    string       `json:"captain_name"`
	Description    string       `json:"description"`
	PricePerPlayer int64        `json:"price_per_player"`
	TotalCost      float64      `json:"total_cost"`
	Status         Status       `json:"status"`
	PaymentStatus  string       `json:"payment_status"`
	Version        int          `json:"version"`
	StartsAt       time.Time    `json:"starts_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// HasPlayer reports whether userID is a member.
func (m *Match) HasPlayer(userID string) bool {
	return slices.Contains(m.Players, userID)
}

// IsPast reports whether the match has already started at now.
func (m *Match) IsPast(now time.Time) bool {
	return m.StartsAt.Before(now)
}

// SpotsLeft is the number of free places.
func (m *Match) SpotsLeft() int {
	return max(m.MaxPlayers-m.CurrentPlayers, 0)
}

// CreateInput is what a captain submits to create a match.
type CreateInput struct {
	CourtID       string  `json:"court_id"`
	Sport         string  `json:"sport"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	DurationHours float64 `json:"duration_hours"`
	MaxPlayers    int     `json:"max_players"`
	CaptainID     string  `json:"-"`
	CaptainName   string  `json:"captain_name"`
	Description   string  `json:"description"`
}

// Event is the payload published for lifecycle events.
type Event struct {
	Match Match `json:"match" msgpack:"match"`
}
