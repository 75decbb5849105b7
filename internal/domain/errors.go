package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrSessionNotFound   = fmt.Errorf("session %w", ErrNotFound)
	ErrBookingNotFound   = fmt.Errorf("booking %w", ErrNotFound)
	ErrScheduleConflict  = errors.New("a session with the same date and times already exists")
	ErrCapacityExceeded  = errors.New("session is fully booked")
	ErrDuplicateBooking  = errors.New("session already booked by this user")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCapacity   = errors.New("capacity must not be negative")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrInvalidKind       = errors.New("invalid session kind")
	ErrInvalidID         = errors.New("invalid id")
	ErrBookingInProgress = errors.New("booking attempt already in progress")
)
