package domain

import "time"

type EventType string

const (
	EventSessionCreated   EventType = "session_created"
	EventSessionUpdated   EventType = "session_updated"
	EventSessionDeleted   EventType = "session_deleted"
	EventBookingCreated   EventType = "booking_created"
	EventBookingCancelled EventType = "booking_cancelled"
)

// Event is an outbox record committed together with the change it describes.
type Event struct {
	ID          string
	Type        EventType
	SessionID   string
	BookingID   string
	UserID      string
	Available   int
	Filled      int
	OccurredAt  time.Time
	PublishedAt *time.Time
}
