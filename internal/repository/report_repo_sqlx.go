package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ReportRepository serves read-only aggregates, typically from a replica.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// OpenReportDB connects to the reporting database through lib/pq.
func OpenReportDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect reporting db: %w", err)
	}
	return db, nil
}

const dashboardQuery = `
SELECT
	(SELECT COUNT(*) FROM class_sessions) AS sessions_total,
	(SELECT COUNT(*) FROM class_sessions WHERE kind = 'GROUP') AS group_sessions,
	(SELECT COUNT(*) FROM class_sessions WHERE kind = 'PRIVATE') AS private_sessions,
	(SELECT COUNT(*) FROM class_sessions WHERE slots_filled < capacity) AS available_sessions,
	(SELECT COUNT(*) FROM bookings) AS bookings_total,
	(SELECT COUNT(DISTINCT user_id) FROM bookings) AS members_with_bookings`

func (r *ReportRepository) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.db.GetContext(ctx, &stats, dashboardQuery); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("dashboard: %w", err)
	}
	return stats, nil
}
