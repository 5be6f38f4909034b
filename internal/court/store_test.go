package court_test

import (
	"context"
	"testing"

	"github.com/mauv0809/courtside/internal/court"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/geo"
	"github.com/mauv0809/courtside/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (court.Store, func()) {
	t.Helper()
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	return court.New(db), dbTeardown
}

func sampleCourt() *court.Court {
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

func TestStore_UpsertAndGet(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	c := sampleCourt()
	require.NoError(t, store.UpsertCourt(ctx, c))

	got, err := store.GetCourt(ctx, "court-1")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	c.PricePerHour = 12000
	c.IsActive = false
	c.Availability[schedule.Sunday] = schedule.DayWindow{Enabled: false}
	require.NoError(t, store.UpsertCourt(ctx, c))

	got, err = store.GetCourt(ctx, "court-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), got.PricePerHour)
	assert.False(t, got.IsActive)
	assert.False(t, got.Availability[schedule.Sunday].Enabled)
}

func TestStore_GetCourt_NotFound(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetCourt(context.Background(), "missing")
	assert.ErrorIs(t, err, court.ErrNotFound)
}

func TestStore_CourtWithoutCoordinates(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	c := sampleCourt()
	c.Location = geo.Location{Address: "unknown"}
	require.NoError(t, store.UpsertCourt(ctx, c))

	got, err := store.GetCourt(ctx, c.ID)
	require.NoError(t, err)
	_, ok := got.Location.Point()
	assert.False(t, ok)
}

func TestStore_ListCourts(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	a := sampleCourt()
	b := sampleCourt()
	b.ID, b.Name = "court-2", "Arena Norte"
	require.NoError(t, store.UpsertCourt(ctx, a))
	require.NoError(t, store.UpsertCourt(ctx, b))

	courts, err := store.ListCourts(ctx)
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, "Arena Norte", courts[0].Name)
}
