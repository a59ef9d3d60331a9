package booking

import (
	"errors"
	"fmt"

	"workspot/models"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingOverlap    = errors.New("space already has a confirmed booking in this window")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrSpaceBusy         = errors.New("space is being booked by another request, retry shortly")
)

// TransitionError names the rejected status change.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move booking from %s to %s", e.From, e.To)
}

// Is lets callers match any TransitionError against ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
