package kafka

import (
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
)

// LedgerEvent is the wire form of an outbox event on the events and
// notifications topics.
type LedgerEvent struct {
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	BookingID  string    `json:"booking_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Available  int       `json:"available"`
	Filled     int       `json:"filled"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewLedgerEvent(e domain.Event) LedgerEvent {
	return LedgerEvent{
		Type:       string(e.Type),
		EventID:    e.ID,
		SessionID:  e.SessionID,
		BookingID:  e.BookingID,
		UserID:     e.UserID,
		Available:  e.Available,
		Filled:     e.Filled,
		OccurredAt: e.OccurredAt,
	}
}
