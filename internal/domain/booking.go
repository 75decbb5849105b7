package domain

import "time"

// Booking is one member's seat in a class session.
type Booking struct {
	ID        string
	UserID    string
	SessionID string
	CreatedAt time.Time
}
