package sessions

import (
	"context"
	"iter"
	"log"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/Domenick1991/gymbooking/internal/metrics"
)

type SessionUseCase interface {
	ListAvailable(ctx context.Context) ([]domain.ClassSession, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.ClassSession, error)
	Get(ctx context.Context, id string) (*domain.ClassSession, error)
	Create(ctx context.Context, actor domain.Actor, in ledger.CreateSessionInput) (*domain.ClassSession, error)
	Update(ctx context.Context, actor domain.Actor, id string, in ledger.UpdateSessionInput) (*domain.ClassSession, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	Dashboard(ctx context.Context, actor domain.Actor) (domain.DashboardStats, error)
	Roster(ctx context.Context, actor domain.Actor, id string) (*domain.ClassSession, []domain.Booking, error)
}

// Ledger is the session side of ledger.SlotLedger.
type Ledger interface {
	CreateSession(ctx context.Context, in ledger.CreateSessionInput) (*domain.ClassSession, error)
	UpdateSession(ctx context.Context, id string, in ledger.UpdateSessionInput) (*domain.ClassSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, id string) (*domain.ClassSession, error)
	ListSessions(ctx context.Context) ([]domain.ClassSession, error)
	ListAvailableSessions(ctx context.Context) iter.Seq2[domain.ClassSession, error]
	SessionRoster(ctx context.Context, sessionID string) ([]domain.Booking, error)
}

type Cache interface {
	// GetAvailableSessions also reports the cache generation; a list read
	// from the ledger is written back under that generation.
	GetAvailableSessions(ctx context.Context) ([]domain.ClassSession, int64, bool, error)
	SetAvailableSessions(ctx context.Context, gen int64, sessions []domain.ClassSession) error
	InvalidateSessions(ctx context.Context) error
}

type Reporter interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
}

type SessionService struct {
	ledger   Ledger
	cache    Cache
	reporter Reporter
}

type Option func(*SessionService)

func WithCache(cache Cache) Option {
	return func(s *SessionService) {
		s.cache = cache
	}
}

// WithReporter serves the dashboard from an aggregate query instead of
// walking every roster.
func WithReporter(r Reporter) Option {
	return func(s *SessionService) {
		s.reporter = r
	}
}

func NewSessionService(l Ledger, opts ...Option) *SessionService {
	s := &SessionService{ledger: l}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) ListAvailable(ctx context.Context) ([]domain.ClassSession, error) {
	var gen int64
	writeBack := false
	if s.cache != nil {
		cached, cachedGen, ok, err := s.cache.GetAvailableSessions(ctx)
		switch {
		case err != nil:
			log.Printf("read sessions cache: %v", err)
		case ok:
			return cached, nil
		default:
			gen, writeBack = cachedGen, true
		}
	}

	sessions := make([]domain.ClassSession, 0)
	for session, err := range s.ledger.ListAvailableSessions(ctx) {
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if writeBack {
		if err := s.cache.SetAvailableSessions(ctx, gen, sessions); err != nil {
			log.Printf("write sessions cache: %v", err)
		}
	}
	return sessions, nil
}

func (s *SessionService) List(ctx context.Context, actor domain.Actor) ([]domain.ClassSession, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.ledger.ListSessions(ctx)
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.ClassSession, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}
	return s.ledger.GetSession(ctx, id)
}

func (s *SessionService) Create(ctx context.Context, actor domain.Actor, in ledger.CreateSessionInput) (*domain.ClassSession, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	session, err := s.ledger.CreateSession(ctx, in)
	if err != nil {
		return nil, err
	}
	metrics.IncSessionChange("create")
	s.invalidate(ctx)
	return session, nil
}

func (s *SessionService) Update(ctx context.Context, actor domain.Actor, id string, in ledger.UpdateSessionInput) (*domain.ClassSession, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	session, err := s.ledger.UpdateSession(ctx, id, in)
	if err != nil {
		return nil, err
	}
	metrics.IncSessionChange("update")
	s.invalidate(ctx)
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.ledger.DeleteSession(ctx, id); err != nil {
		return err
	}
	metrics.IncSessionChange("delete")
	s.invalidate(ctx)
	return nil
}

func (s *SessionService) Dashboard(ctx context.Context, actor domain.Actor) (domain.DashboardStats, error) {
	if !actor.IsAdmin() {
		return domain.DashboardStats{}, domain.ErrForbidden
	}
	if s.reporter != nil {
		return s.reporter.Dashboard(ctx)
	}

	sessions, err := s.ledger.ListSessions(ctx)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	stats := domain.DashboardStats{SessionsTotal: len(sessions)}
	members := make(map[string]struct{})
	for _, session := range sessions {
		switch session.Kind {
		case domain.SessionKindGroup:
			stats.GroupSessions++
		case domain.SessionKindPrivate:
			stats.PrivateSessions++
		}
		if session.HasFreeSlot() {
			stats.AvailableSessions++
		}
		roster, err := s.ledger.SessionRoster(ctx, session.ID)
		if err != nil {
			return domain.DashboardStats{}, err
		}
		stats.BookingsTotal += len(roster)
		for _, b := range roster {
			members[b.UserID] = struct{}{}
		}
	}
	stats.MembersWithBookings = len(members)
	return stats, nil
}

func (s *SessionService) Roster(ctx context.Context, actor domain.Actor, id string) (*domain.ClassSession, []domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, nil, domain.ErrForbidden
	}
	session, err := s.ledger.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bookings, err := s.ledger.SessionRoster(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return session, bookings, nil
}

func (s *SessionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSessions(ctx); err != nil {
		log.Printf("invalidate sessions cache: %v", err)
	}
}

var _ SessionUseCase = (*SessionService)(nil)
