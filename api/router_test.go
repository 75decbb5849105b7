package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/gymbooking/internal/auth"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenManager, *MockSessionUseCase, *MockBookingUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sessionSvc := &MockSessionUseCase{}
	bookingSvc := &MockBookingUseCase{}
	router := NewRouter(RouterDeps{
		Sessions:    sessionSvc,
		Bookings:    bookingSvc,
		Tokens:      tokens,
		ServiceName: "gymbooking-test",
	})
	return router, tokens, sessionSvc, bookingSvc
}

func bearer(t *testing.T, tokens *auth.TokenManager, actor domain.Actor) string {
	t.Helper()
	token, err := tokens.Issue(actor)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter_HealthAndMetricsNeedNoToken(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	router, _, sessionSvc, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/sessions/available", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/api/v1/sessions/available", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), codeUnauthorized)

	assert.Empty(t, sessionSvc.Calls)
}

func TestRouter_MemberFlow(t *testing.T) {
	router, tokens, sessionSvc, bookingSvc := newTestRouter(t)
	member := domain.Actor{UserID: "user-1", Role: domain.RoleMember}

	sessionSvc.On("ListAvailable", mock.Anything).Return([]domain.ClassSession{testSession()}, nil)
	bookingSvc.On("BookSession", mock.Anything, member, "s1").
		Return(&domain.Booking{ID: "b1", UserID: "user-1", SessionID: "s1"}, nil)

	req := httptest.NewRequest("GET", "/api/v1/sessions/available", nil)
	req.Header.Set("Authorization", bearer(t, tokens, member))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("POST", "/api/v1/bookings", strings.NewReader(`{"session_id":"s1"}`))
	req.Header.Set("Authorization", bearer(t, tokens, member))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	bookingSvc.AssertExpectations(t)
}

func TestRouter_AdminRoutesRejectMembers(t *testing.T) {
	router, tokens, sessionSvc, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, tokens, domain.Actor{UserID: "user-1", Role: domain.RoleMember}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, sessionSvc.Calls)
}

func TestRouter_AdminDashboard(t *testing.T) {
	router, tokens, sessionSvc, _ := newTestRouter(t)
	admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	sessionSvc.On("Dashboard", mock.Anything, admin).Return(domain.DashboardStats{SessionsTotal: 2}, nil)

	req := httptest.NewRequest("GET", "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, tokens, admin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sessions_total":2`)
}

func TestRouter_SwaggerDoc(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths, "/bookings")
	assert.Contains(t, doc.Paths["/bookings"], "post")
	assert.Contains(t, doc.Paths["/admin/sessions/{id}"], "delete")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}
