package court

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCachedStore_NilClientPassesThrough(t *testing.T) {
	next := NewMock()
	assert.Same(t, next, NewCachedStore(next, nil, time.Minute, metrics.NewMock()))
}

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient("", ""))
}

func TestCachedStore_FallsBackWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	next := NewMock(&Court{ID: "c1", Name: "Court", Capacity: 4})
	m := metrics.NewMock()
	store := NewCachedStore(next, rdb, time.Minute, m)
	ctx := context.Background()

	got, err := store.GetCourt(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Court", got.Name)
	assert.Equal(t, 1, m.CourtCacheMisses())
	assert.Equal(t, 0, m.CourtCacheHits())

	require.NoError(t, store.UpsertCourt(ctx, &Court{ID: "c1", Name: "Renamed"}))
	got, err = store.GetCourt(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	_, err = store.GetCourt(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
