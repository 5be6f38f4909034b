package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	return setupDB(t, ":memory:")
}

// setupFileDB opens an on-disk database so concurrent callers get their own
// pooled connections instead of sharing the single in-memory one.
func setupFileDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	return setupDB(t, filepath.Join(t.TempDir(), "courtside.db"))
}

func setupDB(t *testing.T, path string) (*sql.DB, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(path, "", "", "../../migrations")
	require.NoError(t, err)

	courts := court.New(db)
	require.NoError(t, courts.UpsertCourt(context.Background(), testCourt()))
	return db, teardown
}

func testCourt() *court.Court {
	return &court.Court{
		ID:           "court-1",
		Name:         "Cancha Central",
		Sport:        "padel",
		OwnerID:      "owner-1",
		PricePerHour: 10000,
		Capacity:     4,
		IsActive:     true,
		Location:     geo.At(-33.4489, -70.6693, "Av. Providencia 123"),
		Availability: schedule.DefaultAvailability(),
	}
}

func newTestMatch(id, date, at string, maxPlayers int) *Match {
	startsAt, _ := time.Parse("2006-01-02 15:04", date+" "+at)
	return &Match{
		ID:             id,
		Sport:          "padel",
		CourtID:        "court-1",
		CourtName:      "Cancha Central",
		Location:       geo.At(-33.4489, -70.6693, "Av. Providencia 123"),
		Date:           date,
		Time:           at,
		DurationHours:  1,
		MaxPlayers:     maxPlayers,
		Players:        []string{"captain"},
		CurrentPlayers: 1,
		CaptainID:      "captain",
		CaptainName:    "Cata",
		PricePerPlayer: 2500,
		TotalCost:      10000,
		Status:         StatusOpen,
		Version:        1,
		StartsAt:       startsAt,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	}
}

func TestStore_InsertAndGet(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	m := newTestMatch("m1", "2025-03-11", "18:00", 4)
	require.NoError(t, store.Insert(ctx, m))

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestStore_Get_NotFound(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	_, err := NewStore(db).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Insert_SlotTaken(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 4)))
	err := store.Insert(ctx, newTestMatch("m2", "2025-03-11", "18:00", 4))
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, _, err = store.Cancel(ctx, "m1", "captain", testNow)
	require.NoError(t, err)
	assert.NoError(t, store.Insert(ctx, newTestMatch("m2", "2025-03-11", "18:00", 4)), "a cancelled match frees its slot")
}

func TestStore_AddPlayer(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 3)))

	m, err := store.AddPlayer(ctx, "m1", "ana", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"captain", "ana"}, m.Players)
	assert.Equal(t, 2, m.CurrentPlayers)
	assert.Equal(t, StatusOpen, m.Status)
	assert.Equal(t, 2, m.Version)

	_, err = store.AddPlayer(ctx, "m1", "ana", testNow)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	m, err = store.AddPlayer(ctx, "m1", "beto", testNow)
	require.NoError(t, err)
	assert.Equal(t, 3, m.CurrentPlayers)
	assert.Equal(t, StatusFull, m.Status)

	_, err = store.AddPlayer(ctx, "m1", "caro", testNow)
	assert.ErrorIs(t, err, ErrAlreadyFull)

	_, err = store.AddPlayer(ctx, "missing", "caro", testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddPlayer_Cancelled(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 4)))
	_, _, err := store.Cancel(ctx, "m1", "captain", testNow)
	require.NoError(t, err)

	_, err = store.AddPlayer(ctx, "m1", "ana", testNow)
	assert.ErrorIs(t, err, ErrMatchCancelled)
}

func TestStore_RemovePlayer(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 2)))

	m, err := store.AddPlayer(ctx, "m1", "ana", testNow)
	require.NoError(t, err)
	require.Equal(t, StatusFull, m.Status)

	m, err = store.RemovePlayer(ctx, "m1", "ana", testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"captain"}, m.Players)
	assert.Equal(t, 1, m.CurrentPlayers)
	assert.Equal(t, StatusOpen, m.Status)

	_, err = store.RemovePlayer(ctx, "m1", "ana", testNow)
	assert.ErrorIs(t, err, ErrNotJoined)

	_, err = store.RemovePlayer(ctx, "m1", "captain", testNow)
	assert.ErrorIs(t, err, ErrCaptainCannotLeave)

	_, err = store.RemovePlayer(ctx, "missing", "ana", testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Cancel(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 4)))

	_, _, err := store.Cancel(ctx, "m1", "ana", testNow)
	assert.ErrorIs(t, err, ErrNotCaptain)

	m, changed, err := store.Cancel(ctx, "m1", "captain", testNow)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusCancelled, m.Status)

	m, changed, err = store.Cancel(ctx, "m1", "captain", testNow)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, StatusCancelled, m.Status)

	_, _, err = store.Cancel(ctx, "missing", "captain", testNow)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SetPaymentStatus(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 4)))

	require.NoError(t, store.SetPaymentStatus(ctx, "m1", "paid", testNow))
	m, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "paid", m.PaymentStatus)

	assert.ErrorIs(t, store.SetPaymentStatus(ctx, "missing", "paid", testNow), ErrNotFound)
}

func TestStore_Listings(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	past := newTestMatch("past", "2025-03-09", "18:00", 4)
	later := newTestMatch("later", "2025-03-12", "09:00", 4)
	later.Description = "Partido 100% amistoso"
	sooner := newTestMatch("sooner", "2025-03-11", "19:00", 4)
	sooner.Sport = "tenis"
	cancelled := newTestMatch("cancelled", "2025-03-11", "20:00", 4)
	for _, m := range []*Match{past, later, sooner, cancelled} {
		require.NoError(t, store.Insert(ctx, m))
	}
	_, _, err := store.Cancel(ctx, "cancelled", "captain", testNow)
	require.NoError(t, err)
	_, err = store.AddPlayer(ctx, "later", "ana", testNow)
	require.NoError(t, err)

	open, err := store.ListOpenFrom(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "sooner", open[0].ID)
	assert.Equal(t, "later", open[1].ID)
	assert.Equal(t, []string{"captain", "ana"}, open[1].Players)

	mine, err := store.ListForUser(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "later", mine[0].ID)

	found, err := store.Search(ctx, "CENTRAL", "tenis", testNow)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sooner", found[0].ID)

	found, err = store.Search(ctx, "100%", "", testNow)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "later", found[0].ID)

	found, err = store.Search(ctx, "%", "", testNow)
	require.NoError(t, err)
	assert.Len(t, found, 1, "wildcards in the term are matched literally")

	times, err := store.OccupiedTimes(ctx, "court-1", "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"19:00"}, times)
}

func TestStore_ConcurrentLastSeat(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Insert(ctx, newTestMatch("m1", "2025-03-11", "18:00", 2)))

	errs := make(chan error, 2)
	for i := range 2 {
		go func(user string) {
			_, err := store.AddPlayer(ctx, "m1", user, testNow)
			errs <- err
		}(fmt.Sprintf("user-%d", i))
	}

	var ok, full int
	for range 2 {
		switch err := <-errs; {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrAlreadyFull):
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)

	m, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, m.CurrentPlayers)
	assert.Len(t, m.Players, 2)
	assert.Equal(t, StatusFull, m.Status)
}

// joinAll runs every join at once and returns the outcome per user.
func joinAll(ctx context.Context, store Store, matchID string, users []string) map[string]error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		start = make(chan struct{})
		out   = make(map[string]error, len(users))
	)
	for _, u := range users {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			<-start
			_, err := store.AddPlayer(ctx, matchID, user, testNow)
			mu.Lock()
			out[user] = err
			mu.Unlock()
		}(u)
	}
	close(start)
	wg.Wait()
	return out
}

func TestStore_ConcurrentLastSeat_FileDB(t *testing.T) {
	db, teardown := setupFileDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	m := newTestMatch("m1", "2025-03-11", "18:00", 4)
	m.Players = []string{"captain", "ana", "beto"}
	m.CurrentPlayers = 3
	require.NoError(t, store.Insert(ctx, m))

	users := make([]string, 20)
	for i := range users {
		users[i] = fmt.Sprintf("user-%02d", i)
	}

	var ok, full int
	for user, err := range joinAll(ctx, store, "m1", users) {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyFull):
			full++
		default:
			t.Errorf("join by %s: unexpected error %v", user, err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one caller takes the last seat")
	assert.Equal(t, len(users)-1, full)

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentPlayers)
	assert.Len(t, got.Players, got.CurrentPlayers)
	assert.Equal(t, StatusFull, got.Status)
}

func TestStore_ConcurrentLeaveAndJoin_FileDB(t *testing.T) {
	db, teardown := setupFileDB(t)
	defer teardown()
	store := NewStore(db)
	ctx := context.Background()

	m := newTestMatch("m1", "2025-03-11", "18:00", 4)
	m.Players = []string{"captain", "ana", "beto", "caro"}
	m.CurrentPlayers = 4
	m.Status = StatusFull
	require.NoError(t, store.Insert(ctx, m))

	leavers := []string{"ana", "beto", "caro"}
	joiners := make([]string, 8)
	for i := range joiners {
		joiners[i] = fmt.Sprintf("new-%d", i)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		start    = make(chan struct{})
		leaveErr []error
		joinOK   int
	)
	for _, u := range leavers {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			<-start
			_, err := store.RemovePlayer(ctx, "m1", user, testNow)
			mu.Lock()
			leaveErr = append(leaveErr, err)
			mu.Unlock()
		}(u)
	}
	for _, u := range joiners {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			<-start
			_, err := store.AddPlayer(ctx, "m1", user, testNow)
			if err != nil && !errors.Is(err, ErrAlreadyFull) {
				t.Errorf("join by %s: unexpected error %v", user, err)
			}
			mu.Lock()
			if err == nil {
				joinOK++
			}
			mu.Unlock()
		}(u)
	}
	close(start)
	wg.Wait()

	for _, err := range leaveErr {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, joinOK, 3)

	got, err := store.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1+joinOK, got.CurrentPlayers)
	assert.Len(t, got.Players, got.CurrentPlayers)
	assert.LessOrEqual(t, got.CurrentPlayers, got.MaxPlayers)
	assert.Equal(t, got.CurrentPlayers == got.MaxPlayers, got.Status == StatusFull)
	for _, u := range leavers {
		assert.False(t, got.HasPlayer(u))
	}
}
