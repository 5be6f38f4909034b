package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePrice(t *testing.T) {
	tests := []struct {
		name     string
		perHour  int64
		duration float64
		players  int
		want     int64
	}{
		{"even split", 10000, 2, 4, 5000},
		{"rounds up", 10000, 1, 3, 3334},
		{"half hours", 10000, 1.5, 4, 3750},
		{"odd half hours", 9999, 2.5, 7, 3572},
		{"single player", 12000, 1, 1, 12000},
		{"free court", 0, 1, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DerivePrice(tt.perHour, tt.duration, tt.players)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, float64(got*int64(tt.players)), TotalCost(tt.perHour, tt.duration))
		})
	}
}

func TestDerivePrice_Invalid(t *testing.T) {
	_, err := DerivePrice(10000, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = DerivePrice(10000, 1.25, 4)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = DerivePrice(10000, -1, 4)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = DerivePrice(10000, math.NaN(), 4)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = DerivePrice(10000, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidMaxPlayers)
	_, err = DerivePrice(-1, 1, 4)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestNewQuote(t *testing.T) {
	q, err := NewQuote(10000, 1.5, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3750), q.PricePerPlayer)
	assert.InDelta(t, 15000, q.TotalCost, 0.0001)
	assert.Equal(t, 4, q.MaxPlayers)

	// A changed player count re-derives the share.
	q2, err := NewQuote(10000, 1.5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), q2.PricePerPlayer)
}
