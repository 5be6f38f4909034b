package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	c := NewFixed(at)
	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestSystemClock_UsesLocation(t *testing.T) {
	loc := time.FixedZone("CLT", -3*60*60)
	c := NewSystem(loc)
	assert.Equal(t, loc, c.Now().Location())

	assert.Equal(t, time.UTC, NewSystem(nil).Now().Location())
}
