package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testAdmin = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

func TestAdminHandler_createSession(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	body := []byte(`{"name":"Spin","kind":"GROUP","date":"2026-07-01","start_time":"18:00","end_time":"19:00","capacity":12}`)
	c, w := newTestContext("POST", "/api/v1/admin/sessions", body)
	c.Set(actorKey, testAdmin)

	in := ledger.CreateSessionInput{
		Name:      "Spin",
		Kind:      domain.SessionKindGroup,
		Date:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "18:00",
		EndTime:   "19:00",
		Capacity:  12,
	}
	session := testSession()
	mockSessions.On("Create", c.Request.Context(), testAdmin, in).Return(&session, nil)

	handler.createSession(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSessions.AssertExpectations(t)
}

func TestAdminHandler_createSession_BadInput(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	for name, body := range map[string]string{
		"missing fields": `{"name":"Spin"}`,
		"bad date":       `{"name":"Spin","kind":"GROUP","date":"01.07.2026","start_time":"18:00","end_time":"19:00"}`,
		"not json":       `{`,
	} {
		t.Run(name, func(t *testing.T) {
			c, w := newTestContext("POST", "/api/v1/admin/sessions", []byte(body))
			c.Set(actorKey, testAdmin)

			handler.createSession(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Empty(t, mockSessions.Calls)
}

func TestAdminHandler_createSession_Conflict(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	body := []byte(`{"name":"Spin","kind":"GROUP","date":"2026-07-01","start_time":"18:00","end_time":"19:00","capacity":12}`)
	c, w := newTestContext("POST", "/api/v1/admin/sessions", body)
	c.Set(actorKey, testAdmin)
	mockSessions.On("Create", c.Request.Context(), testAdmin, mock.AnythingOfType("ledger.CreateSessionInput")).Return(nil, domain.ErrScheduleConflict)

	handler.createSession(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var response errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, codeScheduleConflict, response.Code)
}

func TestAdminHandler_updateSession(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	body := []byte(`{"name":"Spin+","kind":"PRIVATE","date":"2026-07-02","start_time":"07:00","end_time":"08:00","capacity":99}`)
	c, w := newTestContext("PUT", "/api/v1/admin/sessions/s1", body)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	c.Set(actorKey, testAdmin)

	in := ledger.UpdateSessionInput{
		Name:      "Spin+",
		Kind:      domain.SessionKindPrivate,
		Date:      time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "07:00",
		EndTime:   "08:00",
	}
	session := testSession()
	mockSessions.On("Update", c.Request.Context(), testAdmin, "s1", in).Return(&session, nil)

	handler.updateSession(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSessions.AssertExpectations(t)
}

func TestAdminHandler_deleteSession(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	c, w := newTestContext("DELETE", "/api/v1/admin/sessions/s1", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	c.Set(actorKey, testAdmin)
	mockSessions.On("Delete", c.Request.Context(), testAdmin, "s1").Return(nil)

	handler.deleteSession(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockSessions.AssertExpectations(t)
}

func TestAdminHandler_exportRoster(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	c, w := newTestContext("GET", "/api/v1/admin/sessions/s1/roster.xlsx", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}
	c.Set(actorKey, testAdmin)

	session := testSession()
	bookings := []domain.Booking{{ID: "b1", UserID: "u1", SessionID: "s1"}}
	mockSessions.On("Roster", c.Request.Context(), testAdmin, "s1").Return(&session, bookings, nil)

	handler.exportRoster(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "roster-2026-07-01-s1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("Roster", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Spin", name)
}

func TestAdminHandler_dashboard(t *testing.T) {
	mockSessions := &MockSessionUseCase{}
	handler := NewAdminHandler(mockSessions, &MockBookingUseCase{})

	c, w := newTestContext("GET", "/api/v1/admin/dashboard", nil)
	c.Set(actorKey, testAdmin)
	mockSessions.On("Dashboard", c.Request.Context(), testAdmin).Return(domain.DashboardStats{SessionsTotal: 3, BookingsTotal: 7}, nil)

	handler.dashboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.SessionsTotal)
	assert.Equal(t, 7, stats.BookingsTotal)
}

func TestAdminHandler_recordBooking(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewAdminHandler(&MockSessionUseCase{}, mockBookings)

	c, w := newTestContext("POST", "/api/v1/admin/bookings", []byte(`{"user_id":"user-2","session_id":"s1"}`))
	c.Set(actorKey, testAdmin)
	booking := &domain.Booking{ID: "b1", UserID: "user-2", SessionID: "s1"}
	mockBookings.On("RecordBooking", c.Request.Context(), testAdmin, "user-2", "s1").Return(booking, nil)

	handler.recordBooking(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockBookings.AssertExpectations(t)
}

func TestAdminHandler_removeMemberBookings(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewAdminHandler(&MockSessionUseCase{}, mockBookings)

	c, w := newTestContext("DELETE", "/api/v1/admin/members/user-2/bookings", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "user-2"}}
	c.Set(actorKey, testAdmin)
	mockBookings.On("RemoveMemberBookings", c.Request.Context(), testAdmin, "user-2").Return(4, nil)

	handler.removeMemberBookings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":4}`, w.Body.String())
}
