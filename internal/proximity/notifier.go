package proximity

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/clock"
	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/profile"
	"golang.org/x/sync/errgroup"
)

// DefaultShardSize is how many candidates one worker scans.
const DefaultShardSize = 500

type notifier struct {
	profiles  profile.Store
	inbox     inbox.Store
	metrics   metrics.Metrics
	clock     clock.Clock
	shardSize int
}

// New creates a Notifier. A non-positive shardSize uses DefaultShardSize.
func New(profiles profile.Store, box inbox.Store, m metrics.Metrics, clk clock.Clock, shardSize int) Notifier {
	if shardSize <= 0 {
		shardSize = DefaultShardSize
	}
	return &notifier{
		profiles:  profiles,
		inbox:     box,
		metrics:   m,
		clock:     clk,
		shardSize: shardSize,
	}
}

func (n *notifier) Notify(ctx context.Context, m match.Match) (int, error) {
	origin, ok := m.Location.Point()
	if !ok {
		log.Debug("Match has no coordinates, skipping proximity notifications", "matchID", m.ID)
		return 0, nil
	}
	start := time.Now()
	defer func() {
		n.metrics.ObserveFanOutDuration(time.Since(start).Seconds())
	}()

	candidates, err := n.profiles.ListNotificationCandidates(ctx)
	if err != nil {
		n.metrics.IncNotificationBatchFailures()
		return 0, fmt.Errorf("failed to list notification candidates: %w", err)
	}

	now := n.clock.Now()
	shards := make([][]inbox.Notification, (len(candidates)+n.shardSize-1)/n.shardSize)
	g, gctx := errgroup.WithContext(ctx)
	for i := range shards {
		lo := i * n.shardSize
		hi := min(lo+n.shardSize, len(candidates))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			shards[i] = n.scan(m, origin, candidates[lo:hi], now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var records []inbox.Notification
	for _, s := range shards {
		records = append(records, s...)
	}
	if len(records) == 0 {
		log.Debug("No nearby users for match", "matchID", m.ID, "candidates", len(candidates))
		return 0, nil
	}

	if err := n.inbox.InsertBatch(ctx, records); err != nil {
		n.metrics.IncNotificationBatchFailures()
		return 0, fmt.Errorf("failed to write %d proximity notifications: %w", len(records), err)
	}
	n.metrics.IncNotificationsEmitted(len(records))
	log.Info("Sent proximity notifications", "matchID", m.ID, "count", len(records), "candidates", len(candidates))
	return len(records), nil
}

// scan keeps enabled, located candidates other than the captain whose
// radius covers the match.
func (n *notifier) scan(m match.Match, origin geo.Point, candidates []profile.Candidate, now time.Time) []inbox.Notification {
	var out []inbox.Notification
	for _, c := range candidates {
		if !c.NotificationsEnabled || c.UserID == m.CaptainID || c.NotificationRadiusKm == nil {
			continue
		}
		p, ok := c.Location.Point()
		if !ok {
			continue
		}
		d := geo.HaversineKm(origin, p)
		if d > *c.NotificationRadiusKm {
			continue
		}
		out = append(out, inbox.Notification{
			ID:         uuid.NewString(),
			UserID:     c.UserID,
			Type:       inbox.TypeProximity,
			MatchID:    m.ID,
			DistanceKm: math.Round(d*10) / 10,
			Title:      fmt.Sprintf("Partido cerca: %s", m.Sport),
			Message:    fmt.Sprintf("%s • %s %s • %d cupos • %.1f km", m.CourtName, m.Date, m.Time, m.SpotsLeft(), d),
			CreatedAt:  now,
		})
	}
	return out
}
