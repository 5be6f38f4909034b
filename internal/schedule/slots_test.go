package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayOnly() Availability {
	return Availability{
		Monday: {Enabled: true, Start: "08:00", End: "22:00"},
		Sunday: {Enabled: false, Start: "08:00", End: "22:00"},
	}
}

// A Sunday well before the dates under test.
var earlier = time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

func TestEnumerateSlots(t *testing.T) {
	av := mondayOnly()
	monday := mustDate(t, "2025-03-10")

	t.Run("full day", func(t *testing.T) {
		slots := EnumerateSlots(av, monday, nil, earlier)
		require.Len(t, slots, 14)
		assert.Equal(t, "08:00", slots[0])
		assert.Equal(t, "21:00", slots[len(slots)-1])
		assert.NotContains(t, slots, "22:00")
	})

	t.Run("occupied hours dropped", func(t *testing.T) {
		slots := EnumerateSlots(av, monday, []string{"10:00", "9:00", "21:30"}, earlier)
		assert.NotContains(t, slots, "10:00")
		assert.NotContains(t, slots, "09:00")
		assert.Contains(t, slots, "21:00")
		assert.Len(t, slots, 12)
	})

	t.Run("today drops elapsed hours", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 15, 20, 0, 0, time.UTC)
		slots := EnumerateSlots(av, monday, nil, now)
		assert.Equal(t, []string{"16:00", "17:00", "18:00", "19:00", "20:00", "21:00"}, slots)
	})

	t.Run("past date has no slots", func(t *testing.T) {
		now := time.Date(2025, 3, 11, 7, 0, 0, 0, time.UTC)
		assert.Empty(t, EnumerateSlots(av, monday, nil, now))
	})

	t.Run("disabled day", func(t *testing.T) {
		slots := EnumerateSlots(av, mustDate(t, "2025-03-16"), nil, earlier)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("missing day", func(t *testing.T) {
		assert.Empty(t, EnumerateSlots(av, mustDate(t, "2025-03-11"), nil, earlier))
	})

	t.Run("restartable", func(t *testing.T) {
		occupied := []string{"12:00"}
		first := EnumerateSlots(av, monday, occupied, earlier)
		second := EnumerateSlots(av, monday, occupied, earlier)
		assert.Equal(t, first, second)
		assert.Equal(t, []string{"12:00"}, occupied)
	})
}

func TestEnumerateSlots_EmptyOnlyWhenDisabled(t *testing.T) {
	av := Availability{
		Monday:    {Enabled: true, Start: "08:00", End: "22:00"},
		Tuesday:   {Enabled: false, Start: "08:00", End: "22:00"},
		Wednesday: {Enabled: true, Start: "06:00", End: "07:00"},
		Thursday:  {Enabled: false},
		Friday:    {Enabled: true, Start: "00:00", End: "24:00"},
		Saturday:  {Enabled: true, Start: "10:00", End: "14:00"},
		Sunday:    {Enabled: false, Start: "10:00", End: "14:00"},
	}
	start := mustDate(t, "2025-03-10")
	for i := 0; i < 14; i++ {
		date := start.AddDate(0, 0, i)
		slots := EnumerateSlots(av, date, nil, earlier)
		assert.Equal(t, !av[WeekdayOf(date)].Enabled, len(slots) == 0, "date %s", FormatDate(date))
	}
}

func TestValidate(t *testing.T) {
	av := mondayOnly()
	monday := mustDate(t, "2025-03-10")

	tests := []struct {
		name string
		date time.Time
		at   string
		now  time.Time
		want error
	}{
		{"last hour accepted", monday, "21:00", earlier, nil},
		{"half hour accepted by hour", monday, "21:30", earlier, nil},
		{"opening hour accepted", monday, "08:00", earlier, nil},
		{"closing hour rejected", monday, "22:00", earlier, ErrOutOfRange},
		{"before opening", monday, "07:59", earlier, ErrOutOfRange},
		{"disabled day", mustDate(t, "2025-03-16"), "10:00", earlier, ErrDayUnavailable},
		{"missing day", mustDate(t, "2025-03-11"), "10:00", earlier, ErrDayUnavailable},
		{"garbage time", monday, "noon", earlier, ErrInvalidTime},
		{"past earlier today", monday, "10:00", time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), ErrPastTime},
		{"exactly now", monday, "15:00", time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), ErrPastTime},
		{"later today", monday, "15:30", time.Date(2025, 3, 10, 15, 10, 0, 0, time.UTC), nil},
		{"past date", monday, "10:00", time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), ErrPastTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(av, tt.date, tt.at, tt.now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var rej *RejectionError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.at, rej.Time)
		})
	}
}

func TestValidate_AcceptedHoursInWindow(t *testing.T) {
	av := mondayOnly()
	monday := mustDate(t, "2025-03-10")
	w := av.WindowFor(monday)
	for h := 0; h < 24; h++ {
		for _, m := range []string{"00", "30"} {
			at := formatHour(h)[:3] + m
			err := Validate(av, monday, at, earlier)
			if err == nil {
				assert.True(t, w.Contains(h), "accepted %s outside window", at)
			} else {
				assert.False(t, w.Contains(h), "rejected %s inside window: %v", at, err)
			}
		}
	}
}
