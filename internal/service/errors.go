package service

import (
	"errors"
	"fmt"
	"time"
)

// Expected, recoverable-by-caller conditions. They propagate unchanged to
// the handler layer, which owns the translation into HTTP responses.
// Anything else coming out of a service is an internal failure.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSlotNotFound       = errors.New("time slot not found")
	ErrInvalidRange       = errors.New("end time must be after start time")
	ErrOverlap            = errors.New("time slot overlaps with existing slot")
	ErrNotAvailable       = errors.New("time slot is not available for booking")
	ErrSlotBooked         = errors.New("cannot delete a booked time slot")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func overlapErr(userEmail string, start, end time.Time) error {
	return fmt.Errorf("%w for user %s from %s to %s",
		ErrOverlap, userEmail, start.Format(time.RFC3339), end.Format(time.RFC3339))
}

func invalidRangeErr(start time.Time) error {
	return fmt.Errorf("%w for slot starting at %s", ErrInvalidRange, start.Format(time.RFC3339))
}
