package api

import (
	"context"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) BookSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) RecordBooking(ctx context.Context, actor domain.Actor, userID, sessionID string) (*domain.Booking, error) {
	args := m.Called(ctx, actor, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListMemberBookings(ctx context.Context, actor domain.Actor, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) RemoveMemberBookings(ctx context.Context, actor domain.Actor, userID string) (int, error) {
	args := m.Called(ctx, actor, userID)
	return args.Int(0), args.Error(1)
}

// MockSessionUseCase is a mock implementation of sessions.SessionUseCase
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) ListAvailable(ctx context.Context) ([]domain.ClassSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassSession), args.Error(1)
}

func (m *MockSessionUseCase) List(ctx context.Context, actor domain.Actor) ([]domain.ClassSession, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassSession), args.Error(1)
}

func (m *MockSessionUseCase) Get(ctx context.Context, id string) (*domain.ClassSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassSession), args.Error(1)
}

func (m *MockSessionUseCase) Create(ctx context.Context, actor domain.Actor, in ledger.CreateSessionInput) (*domain.ClassSession, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassSession), args.Error(1)
}

func (m *MockSessionUseCase) Update(ctx context.Context, actor domain.Actor, id string, in ledger.UpdateSessionInput) (*domain.ClassSession, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassSession), args.Error(1)
}

func (m *MockSessionUseCase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockSessionUseCase) Dashboard(ctx context.Context, actor domain.Actor) (domain.DashboardStats, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

func (m *MockSessionUseCase) Roster(ctx context.Context, actor domain.Actor, id string) (*domain.ClassSession, []domain.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.ClassSession), args.Get(1).([]domain.Booking), args.Error(2)
}
