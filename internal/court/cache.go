package court

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "courtside:court:"

// NewRedisClient connects to Redis at addr. It returns nil when addr is empty
// or the server does not answer, in which case callers run without a cache.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, court cache disabled", "addr", addr, "error", err)
		client.Close()
		return nil
	}
	log.Info("Connected to Redis", "addr", addr)
	return client
}

// cachedStore is a read-through cache in front of another Store.
type cachedStore struct {
	next    Store
	rdb     *redis.Client
	ttl     time.Duration
	metrics metrics.Metrics
}

// NewCachedStore wraps next with a Redis read-through cache for GetCourt.
// With a nil client it returns next unchanged.
func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, m metrics.Metrics) Store {
	if rdb == nil {
		return next
	}
	return &cachedStore{next: next, rdb: rdb, ttl: ttl, metrics: m}
}

func (c *cachedStore) GetCourt(ctx context.Context, courtID string) (*Court, error) {
	key := cacheKeyPrefix + courtID
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var court Court
		if jsonErr := json.Unmarshal(raw, &court); jsonErr == nil {
			c.metrics.IncCourtCacheHits()
			return &court, nil
		}
		log.Warn("Discarding unreadable cached court", "courtID", courtID)
	case !errors.Is(err, redis.Nil):
		log.Warn("Court cache read failed", "courtID", courtID, "error", err)
	}
	c.metrics.IncCourtCacheMisses()

	court, err := c.next.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(court); err == nil {
		if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			log.Warn("Court cache write failed", "courtID", courtID, "error", err)
		}
	}
	return court, nil
}

func (c *cachedStore) ListCourts(ctx context.Context) ([]Court, error) {
	return c.next.ListCourts(ctx)
}

func (c *cachedStore) UpsertCourt(ctx context.Context, court *Court) error {
	if err := c.next.UpsertCourt(ctx, court); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, cacheKeyPrefix+court.ID).Err(); err != nil {
		log.Warn("Court cache invalidation failed", "courtID", court.ID, "error", err)
	}
	return nil
}
