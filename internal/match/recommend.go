package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultRecommendationLimit caps Recommend and Similar when no limit is given.
const DefaultRecommendationLimit = 10

var ErrInvalidCriteria = errors.New("invalid recommendation criteria")

// TimeOfDay buckets a start hour for preference matching.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// Contains reports whether hour falls in the bucket.
func (t TimeOfDay) Contains(hour int) bool {
	switch t {
	case Morning:
		return hour >= 6 && hour < 12
	case Afternoon:
		return hour >= 12 && hour < 18
	case Evening:
		return hour >= 18 && hour < 24
	}
	return false
}

// PriceRange bounds the per-player price, inclusive on both ends.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Criteria narrows and weights recommendations. The zero value recommends
// every open match by availability and start time alone.
type Criteria struct {
	Sport          string      `json:"sport,omitempty"`
	PriceRange     *PriceRange `json:"price_range,omitempty"`
	PreferredTimes []TimeOfDay `json:"preferred_times,omitempty"`
}

// Validate rejects inverted price ranges and unknown time buckets.
func (c Criteria) Validate() error {
	if c.PriceRange != nil && c.PriceRange.Min > c.PriceRange.Max {
		return fmt.Errorf("%w: min price %d above max %d", ErrInvalidCriteria, c.PriceRange.Min, c.PriceRange.Max)
	}
	for _, t := range c.PreferredTimes {
		if t != Morning && t != Afternoon && t != Evening {
			return fmt.Errorf("%w: unknown time of day %q", ErrInvalidCriteria, t)
		}
	}
	return nil
}

// Recommendation is a scored match with the reasons shown to the user.
type Recommendation struct {
	MatchID string   `json:"match_id"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Match   Match    `json:"match"`
}

// Score rates how well m fits c at now, from 0 to 100. A match without free
// spots scores 0.
func Score(m *Match, c Criteria, now time.Time) int {
	spots := m.MaxPlayers - m.CurrentPlayers
	if spots <= 0 {
		return 0
	}
	score := 70
	if spots > 3 {
		score += 10
	}
	if c.Sport != "" && strings.EqualFold(m.Sport, c.Sport) {
		score += 15
	}
	if r := c.PriceRange; r != nil {
		switch {
		case m.PricePerPlayer < r.Min:
			score += 5
		case m.PricePerPlayer <= r.Max:
			score += 10
		default:
			score -= 10
		}
	}

	hours := m.StartsAt.Sub(now).Hours()
	switch {
	case hours <= 24:
		score += 15
	case hours <= 72:
		score += 10
	case hours <= 168:
		score += 5
	}

	if hour, ok := startHour(m.Time); ok && slices.ContainsFunc(c.PreferredTimes, func(t TimeOfDay) bool { return t.Contains(hour) }) {
		score += 8
	}
	if fill := fillRatio(m); fill >= 0.3 && fill <= 0.8 {
		score += 5
	}
	if m.DurationHours >= 1 && m.DurationHours <= 2 {
		score += 3
	}
	return min(max(score, 0), 100)
}

// Reasons explains a recommendation, most important first, at most three.
func Reasons(m *Match, c Criteria, now time.Time) []string {
	var reasons []string
	switch spots := m.MaxPlayers - m.CurrentPlayers; {
	case spots == 1:
		reasons = append(reasons, "Only 1 spot left!")
	case spots <= 3:
		reasons = append(reasons, fmt.Sprintf("%d spots left", spots))
	default:
		reasons = append(reasons, "Plenty of spots available")
	}
	if c.Sport != "" && strings.EqualFold(m.Sport, c.Sport) {
		reasons = append(reasons, "Matches your sport: "+m.Sport)
	}
	if r := c.PriceRange; r != nil {
		if m.PricePerPlayer < r.Min {
			reasons = append(reasons, "Very affordable")
		} else if m.PricePerPlayer <= r.Max {
			reasons = append(reasons, "Within your price range")
		}
	}
	switch hours := m.StartsAt.Sub(now).Hours(); {
	case hours <= 24:
		reasons = append(reasons, "Starting very soon")
	case hours <= 72:
		reasons = append(reasons, "Coming up in the next few days")
	}
	if fillRatio(m) >= 0.5 {
		reasons = append(reasons, "Popular match with good turnout")
	}
	if m.Location.Address != "" {
		reasons = append(reasons, "Location: "+m.Location.Address)
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

func startHour(hhmm string) (int, bool) {
	hh, _, _ := strings.Cut(hhmm, ":")
	h, err := strconv.Atoi(hh)
	return h, err == nil
}

func fillRatio(m *Match) float64 {
	if m.MaxPlayers <= 0 {
		return 0
	}
	return float64(m.CurrentPlayers) / float64(m.MaxPlayers)
}

// Recommend ranks open upcoming matches userID has not joined.
func (s *Service) Recommend(ctx context.Context, userID string, c Criteria, limit int) ([]Recommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	return s.recommend(ctx, c, limit, func(m *Match) bool { return m.HasPlayer(userID) })
}

// Similar recommends matches of the same sport priced within 20% of matchID.
func (s *Service) Similar(ctx context.Context, matchID string, limit int) ([]Recommendation, error) {
	ref, err := s.store.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	c := Criteria{
		Sport: ref.Sport,
		PriceRange: &PriceRange{
			Min: int64(math.Floor(float64(ref.PricePerPlayer) * 0.8)),
			Max: int64(math.Ceil(float64(ref.PricePerPlayer) * 1.2)),
		},
	}
	return s.recommend(ctx, c, limit, func(m *Match) bool { return m.ID == ref.ID })
}

func (s *Service) recommend(ctx context.Context, c Criteria, limit int, exclude func(*Match) bool) ([]Recommendation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	now := s.now()

	var (
		candidates []Match
		err        error
	)
	if sport := strings.TrimSpace(c.Sport); sport != "" {
		candidates, err = s.store.Search(ctx, "", strings.ToLower(sport), now)
	} else {
		candidates, err = s.store.ListOpenFrom(ctx, now)
	}
	if err != nil {
		return nil, err
	}

	out := []Recommendation{}
	for i := range candidates {
		m := &candidates[i]
		if exclude(m) {
			continue
		}
		score := Score(m, c, now)
		if score <= 0 {
			continue
		}
		out = append(out, Recommendation{MatchID: m.ID, Score: score, Reasons: Reasons(m, c, now), Match: *m})
	}
	// Candidates arrive soonest first, so a stable sort keeps that order among equal scores.
	slices.SortStableFunc(out, func(a, b Recommendation) int { return b.Score - a.Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
