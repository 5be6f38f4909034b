package match

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredMatch(mutate func(m *Match)) *Match {
	m := &Match{
		ID:             "m1",
		Sport:          "padel",
		Time:           "20:00",
		DurationHours:  1,
		MaxPlayers:     4,
		CurrentPlayers: 1,
		PricePerPlayer: 2500,
		StartsAt:       serviceNow.Add(48 * time.Hour),
		Location:       geo.At(-33.4489, -70.6693, "Av. Providencia 123"),
	}
	if mutate != nil {
		mutate(m)
	}
	return m
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(m *Match)
		criteria Criteria
		want     int
	}{
		{name: "no criteria", want: 83},
		{name: "full match", mutate: func(m *Match) { m.CurrentPlayers = 4 }, want: 0},
		{name: "many free spots", mutate: func(m *Match) { m.MaxPlayers = 10 }, want: 93},
		{name: "preferred sport", criteria: Criteria{Sport: "PADEL"}, want: 98},
		{name: "other sport", criteria: Criteria{Sport: "tenis"}, want: 83},
		{name: "price within range", criteria: Criteria{PriceRange: &PriceRange{Min: 2000, Max: 3000}}, want: 93},
		{name: "price below range", criteria: Criteria{PriceRange: &PriceRange{Min: 3000, Max: 5000}}, want: 88},
		{name: "price above range", criteria: Criteria{PriceRange: &PriceRange{Min: 0, Max: 2000}}, want: 73},
		{name: "starts within a day", mutate: func(m *Match) { m.StartsAt = serviceNow.Add(2 * time.Hour) }, want: 88},
		{name: "starts within a week", mutate: func(m *Match) { m.StartsAt = serviceNow.Add(100 * time.Hour) }, want: 78},
		{name: "starts later", mutate: func(m *Match) { m.StartsAt = serviceNow.Add(300 * time.Hour) }, want: 73},
		{name: "preferred evening", criteria: Criteria{PreferredTimes: []TimeOfDay{Evening}}, want: 91},
		{name: "preferred morning only", criteria: Criteria{PreferredTimes: []TimeOfDay{Morning}}, want: 83},
		{name: "half full", mutate: func(m *Match) { m.CurrentPlayers = 2 }, want: 88},
		{name: "long match", mutate: func(m *Match) { m.DurationHours = 3 }, want: 80},
		{
			name: "clamped to 100",
			mutate: func(m *Match) {
				m.MaxPlayers = 10
				m.CurrentPlayers = 4
				m.StartsAt = serviceNow.Add(3 * time.Hour)
			},
			criteria: Criteria{
				Sport:          "padel",
				PriceRange:     &PriceRange{Min: 2000, Max: 3000},
				PreferredTimes: []TimeOfDay{Evening},
			},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(scoredMatch(tt.mutate), tt.criteria, serviceNow))
		})
	}
}

func TestReasons(t *testing.T) {
	inRange := Criteria{Sport: "padel", PriceRange: &PriceRange{Min: 2000, Max: 3000}}
	assert.Equal(t,
		[]string{"3 spots left", "Matches your sport: padel", "Within your price range"},
		Reasons(scoredMatch(nil), inRange, serviceNow))

	lastSpot := scoredMatch(func(m *Match) { m.CurrentPlayers = 3 })
	assert.Equal(t,
		[]string{"Only 1 spot left!", "Coming up in the next few days", "Popular match with good turnout"},
		Reasons(lastSpot, Criteria{}, serviceNow))

	roomy := scoredMatch(func(m *Match) {
		m.MaxPlayers = 10
		m.StartsAt = serviceNow.Add(300 * time.Hour)
	})
	assert.Equal(t,
		[]string{"Plenty of spots available", "Very affordable", "Location: Av. Providencia 123"},
		Reasons(roomy, Criteria{PriceRange: &PriceRange{Min: 5000, Max: 9000}}, serviceNow))
}

func TestCriteria_Validate(t *testing.T) {
	assert.NoError(t, Criteria{}.Validate())
	assert.NoError(t, Criteria{PriceRange: &PriceRange{Min: 100, Max: 100}, PreferredTimes: []TimeOfDay{Morning, Evening}}.Validate())
	assert.ErrorIs(t, Criteria{PriceRange: &PriceRange{Min: 200, Max: 100}}.Validate(), ErrInvalidCriteria)
	assert.ErrorIs(t, Criteria{PreferredTimes: []TimeOfDay{"night"}}.Validate(), ErrInvalidCriteria)
}

func TestService_Recommend(t *testing.T) {
	f, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	tuesday, err := f.svc.Create(ctx, createInput("2025-03-11", "18:00"))
	require.NoError(t, err)
	wednesday, err := f.svc.Create(ctx, createInput("2025-03-12", "10:00"))
	require.NoError(t, err)
	joined, err := f.svc.Create(ctx, createInput("2025-03-11", "19:00"))
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, joined.ID, "ana")
	require.NoError(t, err)

	recs, err := f.svc.Recommend(ctx, "ana", Criteria{PreferredTimes: []TimeOfDay{Morning}}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2, "matches the user already joined are skipped")
	assert.Equal(t, wednesday.ID, recs[0].MatchID)
	assert.Equal(t, 91, recs[0].Score)
	assert.Equal(t, tuesday.ID, recs[1].MatchID)
	assert.Equal(t, 88, recs[1].Score)
	assert.NotEmpty(t, recs[0].Reasons)

	recs, err = f.svc.Recommend(ctx, "ana", Criteria{}, 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = f.svc.Recommend(ctx, "ana", Criteria{Sport: "tenis"}, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = f.svc.Recommend(ctx, "", Criteria{}, 0)
	assert.ErrorIs(t, err, ErrUserRequired)

	_, err = f.svc.Recommend(ctx, "ana", Criteria{PriceRange: &PriceRange{Min: 10, Max: 1}}, 0)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestService_Similar(t *testing.T) {
	f, teardown := setupService(t)
	defer teardown()
	ctx := context.Background()

	ref, err := f.svc.Create(ctx, createInput("2025-03-11", "18:00"))
	require.NoError(t, err)
	later, err := f.svc.Create(ctx, createInput("2025-03-12", "10:00"))
	require.NoError(t, err)
	popular, err := f.svc.Create(ctx, createInput("2025-03-11", "19:00"))
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, popular.ID, "ana")
	require.NoError(t, err)

	recs, err := f.svc.Similar(ctx, ref.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2, "the reference match is not similar to itself")
	assert.Equal(t, popular.ID, recs[0].MatchID, "equal scores keep the sooner match first")
	assert.Equal(t, 100, recs[0].Score)
	assert.Equal(t, later.ID, recs[1].MatchID)
	assert.Equal(t, 100, recs[1].Score)
	assert.Contains(t, recs[1].Reasons, "Matches your sport: padel")

	_, err = f.svc.Similar(ctx, "missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
