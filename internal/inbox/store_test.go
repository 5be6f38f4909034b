package inbox_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/inbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (inbox.Store, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	return inbox.New(db), teardown
}

func TestStore_InsertBatchAndList(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	var batch []inbox.Notification
	for i := 0; i < 250; i++ {
		user := "u1"
		if i%2 == 1 {
			user = "u2"
		}
		batch = append(batch, inbox.Notification{
			ID:         fmt.Sprintf("n-%03d", i),
			UserID:     user,
			Type:       inbox.TypeProximity,
			MatchID:    "m1",
			DistanceKm: 1.5,
			Title:      "Partido cerca: padel",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
	}
	require.NoError(t, store.InsertBatch(ctx, batch))

	got, err := store.ListForUser(ctx, "u1", 500)
	require.NoError(t, err)
	require.Len(t, got, 125)
	assert.Equal(t, "n-248", got[0].ID, "newest first")
	assert.Equal(t, inbox.TypeProximity, got[0].Type)
	assert.Equal(t, base.Add(248*time.Second), got[0].CreatedAt)
	assert.False(t, got[0].Read)

	limited, err := store.ListForUser(ctx, "u2", 10)
	require.NoError(t, err)
	assert.Len(t, limited, 10)
}

func TestStore_InsertBatch_RollsBackOnConflict(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	now := time.Now()
	err := store.InsertBatch(ctx, []inbox.Notification{
		{ID: "dup", UserID: "u1", Type: inbox.TypeProximity, MatchID: "m1", CreatedAt: now},
		{ID: "dup", UserID: "u1", Type: inbox.TypeProximity, MatchID: "m1", CreatedAt: now},
	})
	require.Error(t, err)

	got, err := store.ListForUser(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.NoError(t, store.InsertBatch(ctx, nil))
}

func TestStore_MarkRead(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	require.NoError(t, store.InsertBatch(ctx, []inbox.Notification{
		{ID: "n1", UserID: "u1", Type: inbox.TypeProximity, MatchID: "m1", CreatedAt: time.Now()},
	}))

	assert.ErrorIs(t, store.MarkRead(ctx, "someone-else", "n1"), inbox.ErrNotFound)
	require.NoError(t, store.MarkRead(ctx, "u1", "n1"))

	got, err := store.ListForUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Read)
}

func TestStore_CreatedAtStoredAsUnixSeconds(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()
	store := inbox.New(db)
	ctx := context.Background()

	at := time.Date(2025, 3, 10, 12, 0, 5, 750_000_000, time.UTC)
	require.NoError(t, store.InsertBatch(ctx, []inbox.Notification{
		{ID: "n1", UserID: "u1", Type: inbox.TypeProximity, MatchID: "m1", CreatedAt: at},
	}))

	var raw int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT created_at FROM notifications WHERE id = ?`, "n1").Scan(&raw))
	assert.Equal(t, at.Unix(), raw)

	got, err := store.ListForUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, at.Truncate(time.Second), got[0].CreatedAt)
}
