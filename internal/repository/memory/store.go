// Package memory is an in-process ledger store. Transactions are serialized
// by a single mutex and work on a copy of the state that replaces the
// committed state only when the transaction function succeeds.
package memory

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/gymbooking/internal/clock"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/ledger"
)

type state struct {
	sessions map[string]domain.ClassSession
	bookings map[string]domain.Booking
	events   []domain.Event
}

func newState() *state {
	return &state{
		sessions: make(map[string]domain.ClassSession),
		bookings: make(map[string]domain.Booking),
	}
}

func (s *state) clone() *state {
	c := &state{
		sessions: make(map[string]domain.ClassSession, len(s.sessions)),
		bookings: make(map[string]domain.Booking, len(s.bookings)),
		events:   make([]domain.Event, len(s.events)),
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	copy(c.events, s.events)
	return c
}

type Store struct {
	mu    sync.Mutex
	state *state
	clock clock.Clock
}

type Option func(*Store)

// WithClock sets the clock used for updated_at stamps.
func WithClock(clk clock.Clock) Option {
	return func(s *Store) {
		if clk != nil {
			s.clock = clk
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{state: newState(), clock: clock.NewSystem()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type txKey struct{}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(context.WithValue(ctx, txKey{}, work)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

// do runs fn on the transaction state in ctx, or on the committed state
// under the lock for single-statement calls.
func (s *Store) do(ctx context.Context, fn func(st *state) error) error {
	if st, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) InsertSession(ctx context.Context, session *domain.ClassSession) error {
	return s.do(ctx, func(st *state) error {
		for _, existing := range st.sessions {
			if sameSchedule(existing, *session) {
				return domain.ErrScheduleConflict
			}
		}
		st.sessions[session.ID] = *session
		return nil
	})
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.ClassSession, error) {
	var out domain.ClassSession
	err := s.do(ctx, func(st *state) error {
		session, ok := st.sessions[id]
		if !ok {
			return domain.ErrSessionNotFound
		}
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSessionForUpdate is GetSession: the transaction already holds the
// store lock.
func (s *Store) GetSessionForUpdate(ctx context.Context, id string) (*domain.ClassSession, error) {
	return s.GetSession(ctx, id)
}

func (s *Store) UpdateSessionDetails(ctx context.Context, session *domain.ClassSession) error {
	return s.do(ctx, func(st *state) error {
		current, ok := st.sessions[session.ID]
		if !ok {
			return domain.ErrSessionNotFound
		}
		for id, existing := range st.sessions {
			if id != session.ID && sameSchedule(existing, *session) {
				return domain.ErrScheduleConflict
			}
		}
		current.Name = session.Name
		current.Description = session.Description
		current.Kind = session.Kind
		current.Date = session.Date
		current.StartTime = session.StartTime
		current.EndTime = session.EndTime
		current.UpdatedAt = session.UpdatedAt
		st.sessions[session.ID] = current
		return nil
	})
}

func (s *Store) TakeSlot(ctx context.Context, sessionID string) (*domain.ClassSession, error) {
	var out domain.ClassSession
	err := s.do(ctx, func(st *state) error {
		session, ok := st.sessions[sessionID]
		if !ok {
			return domain.ErrSessionNotFound
		}
		session.Available--
		session.Filled++
		session.UpdatedAt = s.clock.Now()
		st.sessions[sessionID] = session
		out = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) ListSessions(ctx context.Context) ([]domain.ClassSession, error) {
	var out []domain.ClassSession
	err := s.do(ctx, func(st *state) error {
		out = sortedSessions(st, func(domain.ClassSession) bool { return true })
		return nil
	})
	return out, err
}

func (s *Store) AvailableSessions(ctx context.Context) iter.Seq2[domain.ClassSession, error] {
	return func(yield func(domain.ClassSession, error) bool) {
		var snapshot []domain.ClassSession
		err := s.do(ctx, func(st *state) error {
			snapshot = sortedSessions(st, domain.ClassSession.HasFreeSlot)
			return nil
		})
		if err != nil {
			yield(domain.ClassSession{}, err)
			return
		}
		for _, session := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(domain.ClassSession{}, err)
				return
			}
			if !yield(session, nil) {
				return
			}
		}
	}
}

// DeleteSession removes the session and cascades to its bookings. The
// after-delete hook finds no session for those bookings and changes nothing.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.do(ctx, func(st *state) error {
		if _, ok := st.sessions[id]; !ok {
			return domain.ErrSessionNotFound
		}
		delete(st.sessions, id)
		for bookingID, b := range st.bookings {
			if b.SessionID == id {
				s.deleteBooking(st, bookingID)
			}
		}
		return nil
	})
}

func (s *Store) InsertBooking(ctx context.Context, b *domain.Booking) error {
	return s.do(ctx, func(st *state) error {
		if _, ok := st.sessions[b.SessionID]; !ok {
			return domain.ErrSessionNotFound
		}
		for _, existing := range st.bookings {
			if existing.UserID == b.UserID && existing.SessionID == b.SessionID {
				return domain.ErrDuplicateBooking
			}
		}
		st.bookings[b.ID] = *b
		return nil
	})
}

func (s *Store) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var out domain.Booking
	err := s.do(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return domain.ErrBookingNotFound
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	return s.do(ctx, func(st *state) error {
		if _, ok := st.bookings[id]; !ok {
			return domain.ErrBookingNotFound
		}
		s.deleteBooking(st, id)
		return nil
	})
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := s.do(ctx, func(st *state) error {
		out = sortedBookings(st, func(b domain.Booking) bool { return b.UserID == userID })
		return nil
	})
	return out, err
}

func (s *Store) ListBookingsBySession(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := s.do(ctx, func(st *state) error {
		out = sortedBookings(st, func(b domain.Booking) bool { return b.SessionID == sessionID })
		return nil
	})
	return out, err
}

func (s *Store) AppendEvent(ctx context.Context, e domain.Event) error {
	return s.do(ctx, func(st *state) error {
		st.events = append(st.events, e)
		return nil
	})
}

// PendingEvents returns up to limit unpublished events, oldest first.
func (s *Store) PendingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	var out []domain.Event
	err := s.do(ctx, func(st *state) error {
		for _, e := range st.events {
			if e.PublishedAt != nil {
				continue
			}
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// MarkEventsPublished drops the given events. Nothing reads published events
// back, so the log only holds the unpublished tail.
func (s *Store) MarkEventsPublished(ctx context.Context, ids []string, _ time.Time) error {
	marked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	return s.do(ctx, func(st *state) error {
		kept := st.events[:0]
		for _, e := range st.events {
			if _, ok := marked[e.ID]; !ok {
				kept = append(kept, e)
			}
		}
		clear(st.events[len(kept):])
		st.events = kept
		return nil
	})
}

// deleteBooking removes the row and runs the after-delete hook: one seat goes
// back to the owning session if that session still exists. No clamping.
func (s *Store) deleteBooking(st *state, id string) {
	b, ok := st.bookings[id]
	if !ok {
		return
	}
	delete(st.bookings, id)

	session, ok := st.sessions[b.SessionID]
	if !ok {
		return
	}
	session.Available++
	session.Filled--
	session.UpdatedAt = s.clock.Now()
	st.sessions[b.SessionID] = session
}

func sameSchedule(a, b domain.ClassSession) bool {
	return a.Date.Equal(b.Date) && a.StartTime == b.StartTime && a.EndTime == b.EndTime
}

func sortedSessions(st *state, keep func(domain.ClassSession) bool) []domain.ClassSession {
	out := make([]domain.ClassSession, 0, len(st.sessions))
	for _, session := range st.sessions {
		if keep(session) {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime > out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortedBookings(st *state, keep func(domain.Booking) bool) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range st.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ ledger.Store = (*Store)(nil)
