package match

import "errors"

var (
	ErrNotFound           = errors.New("match not found")
	ErrAlreadyFull        = errors.New("match is full")
	ErrAlreadyJoined      = errors.New("already joined this match")
	ErrNotJoined          = errors.New("not a player in this match")
	ErrCaptainCannotLeave = errors.New("the captain cannot leave; cancel the match instead")
	ErrNotCaptain         = errors.New("only the captain can cancel the match")
	ErrMatchCancelled     = errors.New("match is cancelled")
	ErrSlotTaken          = errors.New("another match already holds this court slot")

	ErrCaptainRequired   = errors.New("captain is required")
	ErrUserRequired      = errors.New("user is required")
	ErrInvalidMaxPlayers = errors.New("max players must be at least 1")
	ErrCapacityExceeded  = errors.New("max players exceeds court capacity")
	ErrCourtNotFound     = errors.New("court not found")
	ErrCourtInactive     = errors.New("court is not accepting bookings")
)

// IsConflict reports whether err is a membership conflict detected at write time.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyFull) ||
		errors.Is(err, ErrAlreadyJoined) ||
		errors.Is(err, ErrNotJoined) ||
		errors.Is(err, ErrCaptainCannotLeave) ||
		errors.Is(err, ErrNotCaptain) ||
		errors.Is(err, ErrMatchCancelled) ||
		errors.Is(err, ErrSlotTaken)
}
