package schedule

import (
	"fmt"
	"time"
)

// EnumerateSlots lists the whole-hour start times on date that are inside the
// opening window and not in occupied. When date is the same calendar day as
// now, hours up to and including the current hour are dropped. Dates before
// today have no slots.
func EnumerateSlots(av Availability, date time.Time, occupied []string, now time.Time) []string {
	slots := []string{}
	w := av.WindowFor(date)
	if !w.Enabled {
		return slots
	}

	cmp := compareDay(date, now)
	if cmp < 0 {
		return slots
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, t := range occupied {
		if h, m, err := ParseStartTime(t); err == nil {
			taken[fmt.Sprintf("%02d:%02d", h, m)] = struct{}{}
		}
	}

	for h := w.StartHour; h < w.EndHour; h++ {
		if cmp == 0 && h <= now.Hour() {
			continue
		}
		slot := formatHour(h)
		if _, ok := taken[slot]; ok {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// Validate checks a single requested start time against the opening window
// and now. Non-hour starts such as 21:30 are judged by their hour, so they
// can validate even though EnumerateSlots never offers them.
func Validate(av Availability, date time.Time, at string, now time.Time) error {
	reject := func(reason error) error {
		return &RejectionError{Reason: reason, Date: FormatDate(date), Time: at}
	}

	hour, minute, err := ParseStartTime(at)
	if err != nil {
		return reject(ErrInvalidTime)
	}
	w := av.WindowFor(date)
	if !w.Enabled {
		return reject(ErrDayUnavailable)
	}
	if !w.Contains(hour) {
		return reject(ErrOutOfRange)
	}
	switch cmp := compareDay(date, now); {
	case cmp < 0:
		return reject(ErrPastTime)
	case cmp == 0 && hour*60+minute <= now.Hour()*60+now.Minute():
		return reject(ErrPastTime)
	}
	return nil
}

// compareDay compares the calendar day of date with the calendar day of now
// as seen in now's location.
func compareDay(date, now time.Time) int {
	a := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return a.Compare(b)
}
