package ledger_service_api

import (
	"context"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/service/booking"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
)

// Server implements LedgerServiceServer over the booking and session
// use cases.
type Server struct {
	sessions sessions.SessionUseCase
	bookings booking.BookingUseCase
}

func NewServer(sessionSvc sessions.SessionUseCase, bookingSvc booking.BookingUseCase) *Server {
	return &Server{sessions: sessionSvc, bookings: bookingSvc}
}

func (s *Server) ListAvailableSessions(ctx context.Context, _ *ListAvailableSessionsRequest) (*ListAvailableSessionsResponse, error) {
	list, err := s.sessions.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	resp := &ListAvailableSessionsResponse{Sessions: make([]Session, 0, len(list))}
	for _, session := range list {
		resp.Sessions = append(resp.Sessions, toPBSession(session))
	}
	return resp, nil
}

func (s *Server) BookSession(ctx context.Context, req *BookSessionRequest) (*Booking, error) {
	b, err := s.bookings.BookSession(ctx, actorFromContext(ctx), req.SessionID)
	if err != nil {
		return nil, err
	}
	return toPBBooking(b), nil
}

func (s *Server) CancelBooking(ctx context.Context, req *CancelBookingRequest) (*Booking, error) {
	b, err := s.bookings.CancelBooking(ctx, actorFromContext(ctx), req.BookingID)
	if err != nil {
		return nil, err
	}
	return toPBBooking(b), nil
}

func toPBSession(s domain.ClassSession) Session {
	return Session{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      string(s.Kind),
		Date:      s.Date.Format("2006-01-02"),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Capacity:  int32(s.Capacity),
		Filled:    int32(s.Filled),
		Available: int32(s.Available),
	}
}

func toPBBooking(b *domain.Booking) *Booking {
	if b == nil {
		return nil
	}
	return &Booking{
		ID:        b.ID,
		UserID:    b.UserID,
		SessionID: b.SessionID,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

var _ LedgerServiceServer = (*Server)(nil)
