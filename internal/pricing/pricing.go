package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidDuration   = errors.New("duration must be a positive multiple of 0.5 hours")
	ErrInvalidMaxPlayers = errors.New("max players must be positive")
	ErrNegativePrice     = errors.New("price per hour must not be negative")
)

// Quote is the price breakdown shown before a match is created.
type Quote struct {
	PricePerHour   int64   `json:"price_per_hour"`
	DurationHours  float64 `json:"duration_hours"`
	MaxPlayers     int     `json:"max_players"`
	PricePerPlayer int64   `json:"price_per_player"`
	TotalCost      float64 `json:"total_cost"`
}

// HalfHours converts a duration to whole half-hour units.
func HalfHours(durationHours float64) (int64, error) {
	halves := durationHours * 2
	if math.IsNaN(halves) || math.IsInf(halves, 0) || halves <= 0 || halves != math.Trunc(halves) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, durationHours)
	}
	return int64(halves), nil
}

// DerivePrice returns ceil(pricePerHour * durationHours / maxPlayers) so the
// amount collected from a full match never falls short of the court cost.
func DerivePrice(pricePerHour int64, durationHours float64, maxPlayers int) (int64, error) {
	if pricePerHour < 0 {
		return 0, ErrNegativePrice
	}
	if maxPlayers <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMaxPlayers, maxPlayers)
	}
	halves, err := HalfHours(durationHours)
	if err != nil {
		return 0, err
	}
	num := pricePerHour * halves
	den := int64(maxPlayers) * 2
	return (num + den - 1) / den, nil
}

// TotalCost is the court cost for the whole match.
func TotalCost(pricePerHour int64, durationHours float64) float64 {
	return float64(pricePerHour) * durationHours
}

// NewQuote derives a full price breakdown.
func NewQuote(pricePerHour int64, durationHours float64, maxPlayers int) (Quote, error) {
	per, err := DerivePrice(pricePerHour, durationHours, maxPlayers)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		PricePerHour:   pricePerHour,
		DurationHours:  durationHours,
		MaxPlayers:     maxPlayers,
		PricePerPlayer: per,
		TotalCost:      TotalCost(pricePerHour, durationHours),
	}, nil
}
