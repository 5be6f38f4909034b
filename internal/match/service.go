package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/clock"
	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pricing"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/schedule"
)

// Service applies the match lifecycle rules on top of a Store.
type Service struct {
	store   Store
	courts  court.Store
	events  pubsub.PubSubClient
	metrics metrics.Metrics
	clock   clock.Clock
	loc     *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the timezone civil dates and times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService creates a new match Service.
func NewService(store Store, courts court.Store, events pubsub.PubSubClient, m metrics.Metrics, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		store:   store,
		courts:  courts,
		events:  events,
		metrics: m,
		clock:   clk,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Create validates the input against the court and persists a new open match
// with the captain as its only player.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Match, error) {
	if strings.TrimSpace(in.CaptainID) == "" {
		return nil, ErrCaptainRequired
	}
	c, err := s.lookupCourt(ctx, in.CourtID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrCourtInactive, c.ID)
	}
	if in.MaxPlayers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxPlayers, in.MaxPlayers)
	}
	if in.MaxPlayers > c.Capacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, in.MaxPlayers, c.Capacity)
	}
	price, err := pricing.DerivePrice(c.PricePerHour, in.DurationHours, in.MaxPlayers)
	if err != nil {
		return nil, err
	}

	date, err := schedule.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := schedule.Validate(c.Availability, date, in.Time, now); err != nil {
		return nil, err
	}
	startsAt, err := schedule.StartsAt(date, in.Time, s.loc)
	if err != nil {
		return nil, err
	}

	sport := in.Sport
	if sport == "" {
		sport = c.Sport
	}
	m := &Match{
		ID:             uuid.NewString(),
		Sport:          sport,
		CourtID:        c.ID,
		CourtName:      c.Name,
		Location:       c.Location,
		Date:           schedule.FormatDate(date),
		Time:           in.Time,
		DurationHours:  in.DurationHours,
		MaxPlayers:     in.MaxPlayers,
		Players:        []string{in.CaptainID},
		CurrentPlayers: 1,
		CaptainID:      in.CaptainID,
		CaptainName:    in.CaptainName,
		Description:    in.Description,
		PricePerPlayer: price,
		TotalCost:      pricing.TotalCost(c.PricePerHour, in.DurationHours),
		Status:         StatusOpen,
		Version:        1,
		StartsAt:       startsAt.UTC(),
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	if m.CurrentPlayers >= m.MaxPlayers {
		m.Status = StatusFull
	}

	if err := s.store.Insert(ctx, m); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.IncJoinConflicts()
		}
		return nil, err
	}
	s.metrics.IncMatchesCreated()
	s.publish(ctx, pubsub.EventMatchCreated, m)
	return m, nil
}

func (s *Service) lookupCourt(ctx context.Context, courtID string) (*court.Court, error) {
	c, err := s.courts.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCourtNotFound, courtID)
		}
		return nil, fmt.Errorf("failed to load court %s: %w", courtID, err)
	}
	return c, nil
}

// Join adds userID to the match.
func (s *Service) Join(ctx context.Context, matchID, userID string) (*Match, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	m, err := s.store.AddPlayer(ctx, matchID, userID, s.now())
	if err != nil {
		if IsConflict(err) {
			s.metrics.IncJoinConflicts()
		}
		log.Debug("Join rejected", "matchID", matchID, "userID", userID, "error", err)
		return nil, err
	}
	s.metrics.IncMatchJoins()
	log.Info("Player joined match", "matchID", matchID, "userID", userID, "players", m.CurrentPlayers, "status", m.Status)
	return m, nil
}

// Leave removes userID from the match. The captain cannot leave.
func (s *Service) Leave(ctx context.Context, matchID, userID string) (*Match, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	m, err := s.store.RemovePlayer(ctx, matchID, userID, s.now())
	if err != nil {
		if IsConflict(err) {
			s.metrics.IncJoinConflicts()
		}
		log.Debug("Leave rejected", "matchID", matchID, "userID", userID, "error", err)
		return nil, err
	}
	s.metrics.IncMatchLeaves()
	log.Info("Player left match", "matchID", matchID, "userID", userID, "players", m.CurrentPlayers, "status", m.Status)
	return m, nil
}

// Cancel marks the match cancelled. Cancelling twice succeeds without a second event.
func (s *Service) Cancel(ctx context.Context, matchID, userID string) (*Match, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	m, changed, err := s.store.Cancel(ctx, matchID, userID, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		log.Debug("Match already cancelled", "matchID", matchID)
		return m, nil
	}
	s.metrics.IncMatchCancels()
	log.Info("Cancelled match", "matchID", matchID, "captainID", userID)
	s.publish(ctx, pubsub.EventMatchCancelled, m)
	return m, nil
}

// publish emits a lifecycle event after commit. Failures are logged and counted only.
func (s *Service) publish(ctx context.Context, topic pubsub.EventType, m *Match) {
	if s.events == nil {
		return
	}
	if err := s.events.SendMessage(ctx, topic, Event{Match: *m}); err != nil {
		s.metrics.IncEventPublishFailures()
		log.Error("Failed to publish match event", "event", topic, "matchID", m.ID, "error", err)
		return
	}
	s.metrics.IncEventsPublished()
}

func (s *Service) Get(ctx context.Context, matchID string) (*Match, error) {
	return s.store.Get(ctx, matchID)
}

// ListAvailable returns open matches that have not started, soonest first.
func (s *Service) ListAvailable(ctx context.Context) ([]Match, error) {
	return s.store.ListOpenFrom(ctx, s.now())
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]Match, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserRequired
	}
	return s.store.ListForUser(ctx, userID)
}

// Search filters available matches by sport and a free-text term.
func (s *Service) Search(ctx context.Context, term, sport string) ([]Match, error) {
	term, sport = strings.TrimSpace(term), strings.TrimSpace(sport)
	if term == "" && sport == "" {
		return s.ListAvailable(ctx)
	}
	return s.store.Search(ctx, term, sport, s.now())
}

// ComputeSlots lists the free whole-hour start times on the court for date.
func (s *Service) ComputeSlots(ctx context.Context, courtID, date string) ([]string, error) {
	c, err := s.lookupCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	d, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return []string{}, nil
	}
	occupied, err := s.store.OccupiedTimes(ctx, c.ID, schedule.FormatDate(d))
	if err != nil {
		return nil, err
	}
	return schedule.EnumerateSlots(c.Availability, d, occupied, s.now()), nil
}

// Quote prices a match before it exists.
func (s *Service) Quote(ctx context.Context, courtID string, durationHours float64, maxPlayers int) (pricing.Quote, error) {
	c, err := s.lookupCourt(ctx, courtID)
	if err != nil {
		return pricing.Quote{}, err
	}
	if maxPlayers > c.Capacity {
		return pricing.Quote{}, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, maxPlayers, c.Capacity)
	}
	return pricing.NewQuote(c.PricePerHour, durationHours, maxPlayers)
}

func (s *Service) SetPaymentStatus(ctx context.Context, matchID, status string) error {
	return s.store.SetPaymentStatus(ctx, matchID, status, s.now())
}
