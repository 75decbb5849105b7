package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, user_id, session_id, created_at`

func bookingError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return domain.ErrBookingNotFound
	}
	if name, ok := uniqueViolation(err); ok && name == userSessionConstraint {
		return domain.ErrDuplicateBooking
	}
	if isForeignKeyViolation(err) {
		return domain.ErrSessionNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *PGLedgerStore) InsertBooking(ctx context.Context, b *domain.Booking) error {
	_, err := r.exec(ctx, `INSERT INTO bookings (id, user_id, session_id, created_at) VALUES ($1, $2, $3, $4)`,
		b.ID, b.UserID, b.SessionID, b.CreatedAt)
	if err != nil {
		return bookingError("insert booking", err)
	}
	return nil
}

func (r *PGLedgerStore) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.queryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id).
		Scan(&b.ID, &b.UserID, &b.SessionID, &b.CreatedAt)
	if err != nil {
		return nil, bookingError("get booking", err)
	}
	return &b, nil
}

// DeleteBooking removes the row; bookings_after_delete gives the seat back.
func (r *PGLedgerStore) DeleteBooking(ctx context.Context, id string) error {
	cmd, err := r.exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return bookingError("delete booking", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *PGLedgerStore) ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC, id`, userID)
}

func (r *PGLedgerStore) ListBookingsBySession(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE session_id=$1 ORDER BY created_at DESC, id`, sessionID)
}

func (r *PGLedgerStore) listBookings(ctx context.Context, sql string, arg string) ([]domain.Booking, error) {
	rows, err := r.query(ctx, sql, arg)
	if err != nil {
		if isInvalidUUID(err) {
			return []domain.Booking{}, nil
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.SessionID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
