package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/metrics"
)

type BookingUseCase interface {
	BookSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error)
	RecordBooking(ctx context.Context, actor domain.Actor, userID, sessionID string) (*domain.Booking, error)
	ListMemberBookings(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error)
	RemoveMemberBookings(ctx context.Context, actor domain.Actor, userID string) (int, error)
}

// Ledger is the part of ledger.SlotLedger the booking flow drives.
type Ledger interface {
	BookSession(ctx context.Context, userID, sessionID string) (*domain.Booking, error)
	RecordBooking(ctx context.Context, userID, sessionID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, actor domain.Actor) (*domain.Booking, error)
	ListMemberBookings(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error)
	RemoveMemberBookings(ctx context.Context, userID string) (int, error)
}

type Cache interface {
	AcquireBookingLock(ctx context.Context, userID, sessionID string, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, userID, sessionID string) error
	InvalidateSessions(ctx context.Context) error
}

type BookingService struct {
	ledger  Ledger
	cache   Cache
	lockTTL time.Duration
}

type BookingServiceOption func(*BookingService)

// WithCache enables booking attempt locks and available-sessions cache
// invalidation.
func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithLockTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func NewBookingService(ledger Ledger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		ledger:  ledger,
		lockTTL: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) BookSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.Booking, error) {
	if actor.UserID == "" || sessionID == "" {
		return nil, domain.ErrInvalidID
	}

	if s.cache != nil {
		ok, err := s.cache.AcquireBookingLock(ctx, actor.UserID, sessionID, s.lockTTL)
		switch {
		case err != nil:
			log.Printf("acquire booking lock user=%s session=%s: %v", actor.UserID, sessionID, err)
		case !ok:
			metrics.IncBookingAttempt(resultOf(domain.ErrBookingInProgress))
			return nil, domain.ErrBookingInProgress
		default:
			defer func() {
				if err := s.cache.ReleaseBookingLock(context.WithoutCancel(ctx), actor.UserID, sessionID); err != nil {
					log.Printf("release booking lock user=%s session=%s: %v", actor.UserID, sessionID, err)
				}
			}()
		}
	}

	b, err := s.ledger.BookSession(ctx, actor.UserID, sessionID)
	metrics.IncBookingAttempt(resultOf(err))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, domain.ErrInvalidID
	}
	b, err := s.ledger.CancelBooking(ctx, bookingID, actor)
	if err != nil {
		return nil, err
	}
	metrics.AddBookingCancelled(1)
	s.invalidate(ctx)
	return b, nil
}

func (s *BookingService) RecordBooking(ctx context.Context, actor domain.Actor, userID, sessionID string) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	b, err := s.ledger.RecordBooking(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return b, nil
}

func (s *BookingService) ListMemberBookings(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.ledger.ListMemberBookings(ctx, actor, userID)
}

func (s *BookingService) RemoveMemberBookings(ctx context.Context, actor domain.Actor, userID string) (int, error) {
	if !actor.IsAdmin() {
		return 0, domain.ErrForbidden
	}
	if userID == "" {
		return 0, domain.ErrInvalidID
	}
	n, err := s.ledger.RemoveMemberBookings(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.AddBookingCancelled(n)
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSessions(ctx); err != nil {
		log.Printf("invalidate sessions cache: %v", err)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, domain.ErrBookingInProgress):
		return "in_progress"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

var _ BookingUseCase = (*BookingService)(nil)
