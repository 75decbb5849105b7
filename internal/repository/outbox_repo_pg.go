package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
)

func (r *PGLedgerStore) AppendEvent(ctx context.Context, e domain.Event) error {
	var bookingID any
	if e.BookingID != "" {
		bookingID = e.BookingID
	}
	_, err := r.exec(ctx, `
INSERT INTO ledger_events (id, type, session_id, booking_id, user_id, slots_available, slots_filled, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Type, e.SessionID, bookingID, e.UserID, e.Available, e.Filled, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// PendingEvents returns unpublished events, oldest first.
func (r *PGLedgerStore) PendingEvents(ctx context.Context, limit int) ([]domain.Event, error) {
	rows, err := r.query(ctx, `
SELECT id, type, session_id, booking_id, user_id, slots_available, slots_filled, occurred_at
FROM ledger_events
WHERE published_at IS NULL
ORDER BY occurred_at, id
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("pending events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		var (
			e         domain.Event
			bookingID *string
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.SessionID, &bookingID, &e.UserID, &e.Available, &e.Filled, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if bookingID != nil {
			e.BookingID = *bookingID
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PGLedgerStore) MarkEventsPublished(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.exec(ctx, `UPDATE ledger_events SET published_at=$2 WHERE id = ANY($1::uuid[]) AND published_at IS NULL`, ids, at)
	if err != nil {
		return fmt.Errorf("mark events published: %w", err)
	}
	return nil
}
