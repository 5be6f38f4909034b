package schedule

import (
	"errors"
	"fmt"
)

// Weekday is the key used in a court's availability map.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// weekdays is indexed by time.Weekday (Sunday=0).
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayWindow is one weekday entry as stored with the court.
type DayWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Availability maps each weekday to its opening window.
type Availability map[Weekday]DayWindow

// Window is a resolved opening window. The zero value is closed.
type Window struct {
	Enabled   bool
	StartHour int
	EndHour   int
}

// Contains reports whether hour falls in the half-open range [StartHour, EndHour).
func (w Window) Contains(hour int) bool {
	return w.Enabled && hour >= w.StartHour && hour < w.EndHour
}

var (
	ErrDayUnavailable = errors.New("court is closed on this day")
	ErrOutOfRange     = errors.New("start time is outside opening hours")
	ErrPastTime       = errors.New("start time is in the past")
	ErrInvalidTime    = errors.New("invalid start time")
	ErrInvalidDate    = errors.New("invalid date")
)

// RejectionError is returned by Validate. Reason is one of the Err* values above.
type RejectionError struct {
	Reason error
	Date   string
	Time   string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("slot %s %s rejected: %v", e.Date, e.Time, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}
