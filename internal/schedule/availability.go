package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// WeekdayOf returns the availability key for a calendar date.
// Only the year, month and day of date are considered.
func WeekdayOf(date time.Time) Weekday {
	civil := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return weekdays[civil.Weekday()]
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// ParseAvailability decodes the JSON stored with a court.
func ParseAvailability(raw []byte) (Availability, error) {
	av := Availability{}
	if len(raw) == 0 {
		return av, nil
	}
	if err := json.Unmarshal(raw, &av); err != nil {
		return nil, fmt.Errorf("failed to decode availability: %w", err)
	}
	return av, nil
}

// DefaultAvailability opens every day from 08:00 to 22:00.
func DefaultAvailability() Availability {
	av := Availability{}
	for _, d := range weekdays {
		av[d] = DayWindow{Enabled: true, Start: "08:00", End: "22:00"}
	}
	return av
}

// WindowFor resolves the opening window for date. Missing, disabled,
// malformed or inverted entries all resolve to a closed window.
func (a Availability) WindowFor(date time.Time) Window {
	entry, ok := a[WeekdayOf(date)]
	if !ok || !entry.Enabled {
		return Window{}
	}
	start, _, err := parseClock(entry.Start)
	if err != nil {
		return Window{}
	}
	end, _, err := parseClock(entry.End)
	if err != nil {
		return Window{}
	}
	if start >= end {
		return Window{}
	}
	return Window{Enabled: true, StartHour: start, EndHour: end}
}

// parseClock parses HH:MM. 24:00 is accepted as an end of day.
func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour, minute, nil
}

// ParseStartTime parses a match start time. Unlike window bounds it must lie within the day.
func ParseStartTime(s string) (hour, minute int, err error) {
	hour, minute, err = parseClock(s)
	if err != nil {
		return 0, 0, err
	}
	if hour == 24 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour, minute, nil
}

// StartsAt returns the instant a match on date at HH:MM begins in loc.
func StartsAt(date time.Time, at string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseStartTime(at)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
