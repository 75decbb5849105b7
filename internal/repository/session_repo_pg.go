package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, name, description, kind, session_date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), capacity, slots_filled, slots_available, created_at, updated_at`

func scanSession(row pgx.Row) (domain.ClassSession, error) {
	var s domain.ClassSession
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Kind, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.Filled, &s.Available, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func sessionError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return domain.ErrSessionNotFound
	}
	if name, ok := uniqueViolation(err); ok && name == scheduleConstraint {
		return domain.ErrScheduleConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *PGLedgerStore) InsertSession(ctx context.Context, s *domain.ClassSession) error {
	_, err := r.exec(ctx, `
INSERT INTO class_sessions (id, name, description, kind, session_date, start_time, end_time, capacity, slots_filled, slots_available, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, $8, $9, $10, $11, $12)`,
		s.ID, s.Name, s.Description, s.Kind, s.Date, s.StartTime, s.EndTime, s.Capacity, s.Filled, s.Available, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return sessionError("insert session", err)
	}
	return nil
}

func (r *PGLedgerStore) GetSession(ctx context.Context, id string) (*domain.ClassSession, error) {
	s, err := scanSession(r.queryRow(ctx, `SELECT `+sessionColumns+` FROM class_sessions WHERE id=$1`, id))
	if err != nil {
		return nil, sessionError("get session", err)
	}
	return &s, nil
}

func (r *PGLedgerStore) GetSessionForUpdate(ctx context.Context, id string) (*domain.ClassSession, error) {
	s, err := scanSession(r.queryRow(ctx, `SELECT `+sessionColumns+` FROM class_sessions WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, sessionError("lock session", err)
	}
	return &s, nil
}

func (r *PGLedgerStore) UpdateSessionDetails(ctx context.Context, s *domain.ClassSession) error {
	cmd, err := r.exec(ctx, `
UPDATE class_sessions
SET name=$2, description=$3, kind=$4, session_date=$5, start_time=$6::time, end_time=$7::time, updated_at=$8
WHERE id=$1`,
		s.ID, s.Name, s.Description, s.Kind, s.Date, s.StartTime, s.EndTime, s.UpdatedAt)
	if err != nil {
		return sessionError("update session", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *PGLedgerStore) TakeSlot(ctx context.Context, sessionID string) (*domain.ClassSession, error) {
	s, err := scanSession(r.queryRow(ctx, `
UPDATE class_sessions
SET slots_available = slots_available - 1, slots_filled = slots_filled + 1, updated_at = now()
WHERE id=$1
RETURNING `+sessionColumns, sessionID))
	if err != nil {
		return nil, sessionError("take slot", err)
	}
	return &s, nil
}

func (r *PGLedgerStore) ListSessions(ctx context.Context) ([]domain.ClassSession, error) {
	rows, err := r.query(ctx, `SELECT `+sessionColumns+` FROM class_sessions ORDER BY session_date DESC, start_time DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.ClassSession, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// AvailableSessions streams sessions with free seats. The query runs when
// the sequence is ranged, so every range sees fresh data.
func (r *PGLedgerStore) AvailableSessions(ctx context.Context) iter.Seq2[domain.ClassSession, error] {
	return func(yield func(domain.ClassSession, error) bool) {
		rows, err := r.query(ctx, `SELECT `+sessionColumns+` FROM class_sessions WHERE slots_filled < capacity ORDER BY session_date DESC, start_time DESC, id`)
		if err != nil {
			yield(domain.ClassSession{}, fmt.Errorf("list available sessions: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanSession(rows)
			if err != nil {
				yield(domain.ClassSession{}, fmt.Errorf("scan session: %w", err))
				return
			}
			if !yield(s, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.ClassSession{}, err)
		}
	}
}

func (r *PGLedgerStore) DeleteSession(ctx context.Context, id string) error {
	cmd, err := r.exec(ctx, `DELETE FROM class_sessions WHERE id=$1`, id)
	if err != nil {
		return sessionError("delete session", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
