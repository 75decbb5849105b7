package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/gymbooking/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewSenderTo(&buf)

	err := s.Send(context.Background(), kafka.LedgerEvent{
		Type:      "booking_created",
		SessionID: "s1",
		BookingID: "b1",
		UserID:    "u1",
		Available: 3,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "user u1: booking confirmed")
	assert.Contains(t, buf.String(), "3 seats left")
}

func TestSender_SkipsNonMemberEvents(t *testing.T) {
	var buf bytes.Buffer
	s := NewSenderTo(&buf)

	require.NoError(t, s.Send(context.Background(), kafka.LedgerEvent{Type: "session_created", SessionID: "s1"}))
	require.NoError(t, s.Send(context.Background(), kafka.LedgerEvent{Type: "session_deleted", SessionID: "s1", UserID: "u1"}))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("smtp down")
}

func TestSender_NotifySkipsFailedDelivery(t *testing.T) {
	s := NewSenderTo(failingWriter{})
	event := kafka.LedgerEvent{Type: "booking_cancelled", EventID: "e1", SessionID: "s1", UserID: "u1"}

	require.Error(t, s.Send(context.Background(), event))
	assert.NoError(t, s.Notify(context.Background(), event))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Notify(ctx, event), context.Canceled)
}
