// Package ledger keeps capacity accounting for class sessions.
//
// Every operation runs inside a single store transaction. Counter reversal on
// booking removal is the store's job (an after-delete trigger), so no caller
// here adjusts counters when a booking row goes away.
package ledger

import (
	"context"
	"iter"
	"time"

	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/google/uuid"
)

type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	InsertSession(ctx context.Context, s *domain.ClassSession) error
	GetSession(ctx context.Context, id string) (*domain.ClassSession, error)
	GetSessionForUpdate(ctx context.Context, id string) (*domain.ClassSession, error)
	UpdateSessionDetails(ctx context.Context, s *domain.ClassSession) error
	// TakeSlot moves one seat from available to filled.
	TakeSlot(ctx context.Context, sessionID string) (*domain.ClassSession, error)
	ListSessions(ctx context.Context) ([]domain.ClassSession, error)
	AvailableSessions(ctx context.Context) iter.Seq2[domain.ClassSession, error]
	DeleteSession(ctx context.Context, id string) error

	InsertBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	// DeleteBooking removes the row; the store gives the seat back.
	DeleteBooking(ctx context.Context, id string) error
	ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	ListBookingsBySession(ctx context.Context, sessionID string) ([]domain.Booking, error)

	AppendEvent(ctx context.Context, e domain.Event) error
}

type SlotLedger struct {
	store Store
	clock clock.Clock
	newID func() string
}

type Option func(*SlotLedger)

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(fn func() string) Option {
	return func(l *SlotLedger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func New(store Store, clk clock.Clock, opts ...Option) *SlotLedger {
	l := &SlotLedger{
		store: store,
		clock: clk,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type CreateSessionInput struct {
	Name        string
	Description string
	Kind        domain.SessionKind
	Date        time.Time
	StartTime   string
	EndTime     string
	Capacity    int
}

type UpdateSessionInput struct {
	Name        string
	Description string
	Kind        domain.SessionKind
	Date        time.Time
	StartTime   string
	EndTime     string
}

func (l *SlotLedger) CreateSession(ctx context.Context, in CreateSessionInput) (*domain.ClassSession, error) {
	if in.Capacity < 0 {
		return nil, domain.ErrInvalidCapacity
	}
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	date, start, end, err := domain.ParseSchedule(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	now := l.clock.Now()
	session := &domain.ClassSession{
		ID:          l.newID(),
		Name:        in.Name,
		Description: in.Description,
		Kind:        in.Kind,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Capacity:    in.Capacity,
		Filled:      0,
		Available:   in.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = l.store.WithTx(ctx, func(txCtx context.Context) error {
		if err := l.store.InsertSession(txCtx, session); err != nil {
			return err
		}
		return l.store.AppendEvent(txCtx, l.sessionEvent(domain.EventSessionCreated, session))
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (l *SlotLedger) UpdateSession(ctx context.Context, id string, in UpdateSessionInput) (*domain.ClassSession, error) {
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	date, start, end, err := domain.ParseSchedule(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	var result *domain.ClassSession
	err = l.store.WithTx(ctx, func(txCtx context.Context) error {
		current, err := l.store.GetSessionForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		current.Name = in.Name
		current.Description = in.Description
		current.Kind = in.Kind
		current.Date = date
		current.StartTime = start
		current.EndTime = end
		current.UpdatedAt = l.clock.Now()

		if err := l.store.UpdateSessionDetails(txCtx, current); err != nil {
			return err
		}
		result = current
		return l.store.AppendEvent(txCtx, l.sessionEvent(domain.EventSessionUpdated, current))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (l *SlotLedger) GetSession(ctx context.Context, id string) (*domain.ClassSession, error) {
	return l.store.GetSession(ctx, id)
}

func (l *SlotLedger) ListSessions(ctx context.Context) ([]domain.ClassSession, error) {
	return l.store.ListSessions(ctx)
}

// ListAvailableSessions yields sessions whose filled seats are below
// capacity, most recent date first. Each range over the result re-reads the
// store.
func (l *SlotLedger) ListAvailableSessions(ctx context.Context) iter.Seq2[domain.ClassSession, error] {
	return l.store.AvailableSessions(ctx)
}

func (l *SlotLedger) BookSession(ctx context.Context, userID, sessionID string) (*domain.Booking, error) {
	if userID == "" || sessionID == "" {
		return nil, domain.ErrInvalidID
	}

	var booking *domain.Booking
	err := l.store.WithTx(ctx, func(txCtx context.Context) error {
		session, err := l.store.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}
		if session.Available <= 0 {
			return domain.ErrCapacityExceeded
		}

		session, err = l.store.TakeSlot(txCtx, sessionID)
		if err != nil {
			return err
		}

		b := &domain.Booking{
			ID:        l.newID(),
			UserID:    userID,
			SessionID: sessionID,
			CreatedAt: l.clock.Now(),
		}
		// A duplicate (user, session) fails here and the slot taken above
		// is rolled back with the transaction.
		if err := l.store.InsertBooking(txCtx, b); err != nil {
			return err
		}
		booking = b
		return l.store.AppendEvent(txCtx, l.bookingEvent(domain.EventBookingCreated, b, session))
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// RecordBooking inserts a booking without taking a slot, the way the admin
// site creates them. Cancelling such a booking still returns a seat, so
// filled can drop below zero.
func (l *SlotLedger) RecordBooking(ctx context.Context, userID, sessionID string) (*domain.Booking, error) {
	if userID == "" || sessionID == "" {
		return nil, domain.ErrInvalidID
	}

	var booking *domain.Booking
	err := l.store.WithTx(ctx, func(txCtx context.Context) error {
		session, err := l.store.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}
		b := &domain.Booking{
			ID:        l.newID(),
			UserID:    userID,
			SessionID: sessionID,
			CreatedAt: l.clock.Now(),
		}
		if err := l.store.InsertBooking(txCtx, b); err != nil {
			return err
		}
		booking = b
		return l.store.AppendEvent(txCtx, l.bookingEvent(domain.EventBookingCreated, b, session))
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (l *SlotLedger) CancelBooking(ctx context.Context, bookingID string, actor domain.Actor) (*domain.Booking, error) {
	var cancelled *domain.Booking
	err := l.store.WithTx(ctx, func(txCtx context.Context) error {
		b, err := l.store.GetBooking(txCtx, bookingID)
		if err != nil {
			return err
		}
		if !actor.IsOwnerOrAdmin(b.UserID) {
			return domain.ErrForbidden
		}
		if err := l.removeBooking(txCtx, b); err != nil {
			return err
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// RemoveMemberBookings deletes every booking held by userID, mirroring the
// cascade the identity store applies when a member is deleted.
func (l *SlotLedger) RemoveMemberBookings(ctx context.Context, userID string) (int, error) {
	removed := 0
	err := l.store.WithTx(ctx, func(txCtx context.Context) error {
		bookings, err := l.store.ListBookingsByUser(txCtx, userID)
		if err != nil {
			return err
		}
		for i := range bookings {
			if err := l.removeBooking(txCtx, &bookings[i]); err != nil {
				return err
			}
		}
		removed = len(bookings)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (l *SlotLedger) DeleteSession(ctx context.Context, sessionID string) error {
	return l.store.WithTx(ctx, func(txCtx context.Context) error {
		session, err := l.store.GetSessionForUpdate(txCtx, sessionID)
		if err != nil {
			return err
		}
		if err := l.store.DeleteSession(txCtx, sessionID); err != nil {
			return err
		}
		return l.store.AppendEvent(txCtx, l.sessionEvent(domain.EventSessionDeleted, session))
	})
}

func (l *SlotLedger) ListMemberBookings(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error) {
	if !actor.IsOwnerOrAdmin(userID) {
		return nil, domain.ErrForbidden
	}
	return l.store.ListBookingsByUser(ctx, userID)
}

func (l *SlotLedger) SessionRoster(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	if _, err := l.store.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return l.store.ListBookingsBySession(ctx, sessionID)
}

func (l *SlotLedger) removeBooking(ctx context.Context, b *domain.Booking) error {
	if err := l.store.DeleteBooking(ctx, b.ID); err != nil {
		return err
	}
	session, err := l.store.GetSession(ctx, b.SessionID)
	if err != nil {
		return err
	}
	return l.store.AppendEvent(ctx, l.bookingEvent(domain.EventBookingCancelled, b, session))
}

func (l *SlotLedger) sessionEvent(t domain.EventType, s *domain.ClassSession) domain.Event {
	return domain.Event{
		ID:         l.newID(),
		Type:       t,
		SessionID:  s.ID,
		Available:  s.Available,
		Filled:     s.Filled,
		OccurredAt: l.clock.Now(),
	}
}

func (l *SlotLedger) bookingEvent(t domain.EventType, b *domain.Booking, s *domain.ClassSession) domain.Event {
	e := l.sessionEvent(t, s)
	e.BookingID = b.ID
	e.UserID = b.UserID
	return e
}
