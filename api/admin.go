package api

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/export"
	"github.com/Domenick1991/gymbooking/internal/ledger"
	"github.com/Domenick1991/gymbooking/internal/service/booking"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	sessions sessions.SessionUseCase
	bookings booking.BookingUseCase
}

type sessionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Capacity    int    `json:"capacity"`
}

type recordBookingRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

func (r sessionRequest) date() (time.Time, error) {
	d, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidSchedule, r.Date)
	}
	return d, nil
}

func NewAdminHandler(sessionSvc sessions.SessionUseCase, bookingSvc booking.BookingUseCase) *AdminHandler {
	return &AdminHandler{sessions: sessionSvc, bookings: bookingSvc}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("/sessions", h.listSessions)
	router.POST("/sessions", h.createSession)
	router.PUT("/sessions/:id", h.updateSession)
	router.DELETE("/sessions/:id", h.deleteSession)
	router.GET("/sessions/:id/roster.xlsx", h.exportRoster)
	router.GET("/dashboard", h.dashboard)
	router.POST("/bookings", h.recordBooking)
	router.DELETE("/members/:user_id/bookings", h.removeMemberBookings)
}

func (h *AdminHandler) listSessions(c *gin.Context) {
	list, err := h.sessions.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponses(list))
}

func (h *AdminHandler) createSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := req.date()
	if err != nil {
		writeError(c, err)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), actorFrom(c), ledger.CreateSessionInput{
		Name:        req.Name,
		Description: req.Description,
		Kind:        domain.SessionKind(req.Kind),
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(*session))
}

// updateSession changes the descriptive and schedule fields. Capacity is
// fixed once the session exists; a capacity in the body is ignored.
func (h *AdminHandler) updateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := req.date()
	if err != nil {
		writeError(c, err)
		return
	}

	session, err := h.sessions.Update(c.Request.Context(), actorFrom(c), c.Param("id"), ledger.UpdateSessionInput{
		Name:        req.Name,
		Description: req.Description,
		Kind:        domain.SessionKind(req.Kind),
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(*session))
}

func (h *AdminHandler) deleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) exportRoster(c *gin.Context) {
	session, bookings, err := h.sessions.Roster(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRoster(&buf, *session, bookings); err != nil {
		writeError(c, err)
		return
	}
	filename := fmt.Sprintf("roster-%s-%s.xlsx", session.Date.Format(dateLayout), session.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	stats, err := h.sessions.Dashboard(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) recordBooking(c *gin.Context) {
	var req recordBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.bookings.RecordBooking(c.Request.Context(), actorFrom(c), req.UserID, req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(*b))
}

func (h *AdminHandler) removeMemberBookings(c *gin.Context) {
	n, err := h.bookings.RemoveMemberBookings(c.Request.Context(), actorFrom(c), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}
