package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	event := NewLedgerEvent(domain.Event{
		ID:         "e1",
		Type:       domain.EventBookingCreated,
		SessionID:  "s1",
		BookingID:  "b1",
		UserID:     "u1",
		Available:  4,
		Filled:     6,
		OccurredAt: at,
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "booking_created", raw["type"])
	assert.Equal(t, "e1", raw["event_id"])
	assert.Equal(t, "s1", raw["session_id"])
	assert.Equal(t, "b1", raw["booking_id"])
	assert.Equal(t, "u1", raw["user_id"])
	assert.Equal(t, float64(4), raw["available"])
	assert.Equal(t, float64(6), raw["filled"])
	assert.Equal(t, "2026-03-01T09:00:00Z", raw["occurred_at"])
}

func TestNewLedgerEvent_SessionEventOmitsBooking(t *testing.T) {
	data, err := json.Marshal(NewLedgerEvent(domain.Event{ID: "e1", Type: domain.EventSessionDeleted, SessionID: "s1"}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "booking_id")
	assert.NotContains(t, string(data), "user_id")
}

func TestDecodeEvent(t *testing.T) {
	event, ok := DecodeEvent([]byte(`{"type":"booking_cancelled","session_id":"s1","available":3}`))
	require.True(t, ok)
	assert.Equal(t, "booking_cancelled", event.Type)
	assert.Equal(t, 3, event.Available)

	_, ok = DecodeEvent([]byte(`not json`))
	assert.False(t, ok)
}
