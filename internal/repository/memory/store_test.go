package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store, id string, capacity int) {
	t.Helper()
	err := s.InsertSession(context.Background(), &domain.ClassSession{
		ID:        id,
		Name:      id,
		Kind:      domain.SessionKindGroup,
		Date:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Capacity:  capacity,
		Available: capacity,
	})
	require.NoError(t, err)
}

func TestStore_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "s1", 3)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.TakeSlot(txCtx, "s1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Available)
	assert.Equal(t, 0, got.Filled)
}

func TestStore_DeleteBookingReturnsSeat(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "s1", 3)

	_, err := s.TakeSlot(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, s.InsertBooking(ctx, &domain.Booking{ID: "b1", UserID: "u1", SessionID: "s1"}))
	assert.ErrorIs(t, s.InsertBooking(ctx, &domain.Booking{ID: "b2", UserID: "u1", SessionID: "s1"}), domain.ErrDuplicateBooking)

	require.NoError(t, s.DeleteBooking(ctx, "b1"))
	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Available)
	assert.Equal(t, 0, got.Filled)

	assert.ErrorIs(t, s.DeleteBooking(ctx, "b1"), domain.ErrBookingNotFound)
}

func TestStore_DeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "s1", 3)
	require.NoError(t, s.InsertBooking(ctx, &domain.Booking{ID: "b1", UserID: "u1", SessionID: "s1"}))

	require.NoError(t, s.DeleteSession(ctx, "s1"))
	_, err := s.GetBooking(ctx, "b1")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.ErrorIs(t, s.InsertBooking(ctx, &domain.Booking{ID: "b2", UserID: "u1", SessionID: "s1"}), domain.ErrSessionNotFound)
}

func TestStore_Outbox(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, id := range []string{"e1", "e2", "e3"} {
		require.NoError(t, s.AppendEvent(ctx, domain.Event{ID: id, Type: domain.EventSessionCreated}))
	}

	pending, err := s.PendingEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "e1", pending[0].ID)

	require.NoError(t, s.MarkEventsPublished(ctx, []string{"e1", "e2"}, time.Now()))
	pending, err = s.PendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "e3", pending[0].ID)
}

func TestStore_PublishedEventsAreDropped(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seed(t, s, "s1", 1)

	for i := 0; i < 500; i++ {
		bookingID := fmt.Sprintf("b%d", i)
		err := s.WithTx(ctx, func(txCtx context.Context) error {
			if _, err := s.TakeSlot(txCtx, "s1"); err != nil {
				return err
			}
			if err := s.InsertBooking(txCtx, &domain.Booking{ID: bookingID, UserID: "u1", SessionID: "s1"}); err != nil {
				return err
			}
			return s.AppendEvent(txCtx, domain.Event{ID: "created-" + bookingID, Type: domain.EventBookingCreated})
		})
		require.NoError(t, err)
		require.NoError(t, s.WithTx(ctx, func(txCtx context.Context) error {
			if err := s.DeleteBooking(txCtx, bookingID); err != nil {
				return err
			}
			return s.AppendEvent(txCtx, domain.Event{ID: "cancelled-" + bookingID, Type: domain.EventBookingCancelled})
		}))

		pending, err := s.PendingEvents(ctx, 0)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		ids := []string{pending[0].ID, pending[1].ID}
		require.NoError(t, s.MarkEventsPublished(ctx, ids, time.Now()))
	}

	assert.Empty(t, s.state.events)

	require.NoError(t, s.AppendEvent(ctx, domain.Event{ID: "late"}))
	require.NoError(t, s.MarkEventsPublished(ctx, []string{"unknown"}, time.Now()))
	pending, err := s.PendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "late", pending[0].ID)
}

func TestStore_UsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	s := NewStore(WithClock(clock.NewFixed(now)))
	seed(t, s, "s1", 2)

	taken, err := s.TakeSlot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, now, taken.UpdatedAt)

	require.NoError(t, s.InsertBooking(ctx, &domain.Booking{ID: "b1", UserID: "u1", SessionID: "s1"}))
	require.NoError(t, s.DeleteBooking(ctx, "b1"))
	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, now, got.UpdatedAt)
}
