package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/Domenick1991/gymbooking/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerStore(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewLedgerStore(pool)
	assert.NotNil(t, repo)
}

func newSession(day int, capacity int) ledger.CreateSessionInput {
	return ledger.CreateSessionInput{
		Name:      "Conditioning",
		Kind:      domain.SessionKindGroup,
		Date:      time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC),
		StartTime: "07:30",
		EndTime:   "08:30",
		Capacity:  capacity,
	}
}

func TestPGLedgerStore(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	store := NewLedgerStore(pool)
	l := ledger.New(store, clock.NewSystem())

	t.Run("schedule triple is unique", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		s, err := l.CreateSession(ctx, newSession(1, 10))
		require.NoError(t, err)
		assert.Equal(t, "07:30", s.StartTime)

		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "07:30", got.StartTime)
		assert.Equal(t, "08:30", got.EndTime)
		assert.Equal(t, 10, got.Available)

		_, err = l.CreateSession(ctx, newSession(1, 3))
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	})

	t.Run("book, duplicate, cancel", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		s, err := l.CreateSession(ctx, newSession(2, 10))
		require.NoError(t, err)

		b, err := l.BookSession(ctx, "member-1", s.ID)
		require.NoError(t, err)
		_, err = l.BookSession(ctx, "member-1", s.ID)
		assert.ErrorIs(t, err, domain.ErrDuplicateBooking)

		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Available)
		assert.Equal(t, 1, got.Filled)

		_, err = l.CancelBooking(ctx, b.ID, domain.Actor{UserID: "member-1", Role: domain.RoleMember})
		require.NoError(t, err)
		got, err = store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Available)
		assert.Equal(t, 0, got.Filled)
	})

	t.Run("trigger returns the seat on any delete path", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		s, err := l.CreateSession(ctx, newSession(3, 5))
		require.NoError(t, err)
		_, err = l.BookSession(ctx, "member-1", s.ID)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `DELETE FROM bookings WHERE user_id = 'member-1'`)
		require.NoError(t, err)

		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Available)
		assert.Equal(t, 0, got.Filled)
	})

	t.Run("recorded booking drifts below zero", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		s, err := l.CreateSession(ctx, newSession(4, 2))
		require.NoError(t, err)

		b, err := l.RecordBooking(ctx, "member-1", s.ID)
		require.NoError(t, err)
		_, err = l.CancelBooking(ctx, b.ID, domain.Actor{Role: domain.RoleAdmin})
		require.NoError(t, err)

		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, -1, got.Filled)
		assert.Equal(t, 3, got.Available)
	})

	t.Run("delete session cascades", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		s, err := l.CreateSession(ctx, newSession(5, 2))
		require.NoError(t, err)
		b, err := l.BookSession(ctx, "member-1", s.ID)
		require.NoError(t, err)

		require.NoError(t, l.DeleteSession(ctx, s.ID))
		_, err = store.GetBooking(ctx, b.ID)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})

	t.Run("available sessions stream newest first", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		older, err := l.CreateSession(ctx, newSession(6, 2))
		require.NoError(t, err)
		full, err := l.CreateSession(ctx, newSession(7, 1))
		require.NoError(t, err)
		newer, err := l.CreateSession(ctx, newSession(8, 2))
		require.NoError(t, err)
		_, err = l.BookSession(ctx, "member-1", full.ID)
		require.NoError(t, err)

		var ids []string
		for s, err := range l.ListAvailableSessions(ctx) {
			require.NoError(t, err)
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []string{newer.ID, older.ID}, ids)
	})

	t.Run("outbox relays in order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		s, err := l.CreateSession(ctx, newSession(9, 2))
		require.NoError(t, err)
		_, err = l.BookSession(ctx, "member-1", s.ID)
		require.NoError(t, err)

		events, err := store.PendingEvents(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, domain.EventSessionCreated, events[0].Type)
		assert.Equal(t, domain.EventBookingCreated, events[1].Type)
		assert.Equal(t, 1, events[1].Filled)

		require.NoError(t, store.MarkEventsPublished(ctx, []string{events[0].ID}, time.Now()))
		events, err = store.PendingEvents(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("concurrent bookings never oversell", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		const capacity, attempts = 5, 20
		s, err := l.CreateSession(ctx, newSession(10, capacity))
		require.NoError(t, err)

		var (
			wg              sync.WaitGroup
			mu              sync.Mutex
			succeeded, full int
		)
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := l.BookSession(ctx, fmt.Sprintf("member-%d", i), s.ID)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, domain.ErrCapacityExceeded):
					full++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, capacity, succeeded)
		assert.Equal(t, attempts-capacity, full)
		got, err := store.GetSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, capacity, got.Filled)
		assert.Equal(t, 0, got.Available)
	})

	t.Run("invalid ids read as not found", func(t *testing.T) {
		ctx := context.Background()
		_, err := store.GetSession(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		_, err = store.GetBooking(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}
