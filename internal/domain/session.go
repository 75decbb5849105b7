package domain

import (
	"fmt"
	"time"
)

type SessionKind string

const (
	SessionKindGroup   SessionKind = "GROUP"
	SessionKindPrivate SessionKind = "PRIVATE"
)

func (k SessionKind) Valid() bool {
	return k == SessionKindGroup || k == SessionKindPrivate
}

// ClassSession is a scheduled class occurrence with a fixed seat capacity.
// Filled and Available are maintained by the ledger only.
type ClassSession struct {
	ID          string
	Name        string
	Description string
	Kind        SessionKind
	Date        time.Time
	StartTime   string
	EndTime     string
	Capacity    int
	Filled      int
	Available   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasFreeSlot reports whether filled seats are below capacity.
func (s ClassSession) HasFreeSlot() bool {
	return s.Filled < s.Capacity
}

const ClockLayout = "15:04"

// ParseSchedule normalizes a date and HH:MM start/end pair.
func ParseSchedule(date time.Time, start, end string) (time.Time, string, string, error) {
	st, err := time.Parse(ClockLayout, start)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: start time %q", ErrInvalidSchedule, start)
	}
	et, err := time.Parse(ClockLayout, end)
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("%w: end time %q", ErrInvalidSchedule, end)
	}
	if !st.Before(et) {
		return time.Time{}, "", "", fmt.Errorf("%w: start must be before end", ErrInvalidSchedule)
	}
	if date.IsZero() {
		return time.Time{}, "", "", fmt.Errorf("%w: date is required", ErrInvalidSchedule)
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day, st.Format(ClockLayout), et.Format(ClockLayout), nil
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	SessionsTotal       int `json:"sessions_total" db:"sessions_total"`
	GroupSessions       int `json:"group_sessions" db:"group_sessions"`
	PrivateSessions     int `json:"private_sessions" db:"private_sessions"`
	AvailableSessions   int `json:"available_sessions" db:"available_sessions"`
	BookingsTotal       int `json:"bookings_total" db:"bookings_total"`
	MembersWithBookings int `json:"members_with_bookings" db:"members_with_bookings"`
}
