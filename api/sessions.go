package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type SessionHandler struct {
	service sessions.SessionUseCase
}

type sessionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Capacity    int    `json:"capacity"`
	Filled      int    `json:"filled"`
	Available   int    `json:"available"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toSessionResponse(s domain.ClassSession) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Kind:        string(s.Kind),
		Date:        s.Date.Format(dateLayout),
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Capacity:    s.Capacity,
		Filled:      s.Filled,
		Available:   s.Available,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

func toSessionResponses(list []domain.ClassSession) []sessionResponse {
	out := make([]sessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func NewSessionHandler(service sessions.SessionUseCase) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.GET("/available", h.listAvailable)
	router.GET("/:id", h.get)
}

func (h *SessionHandler) listAvailable(c *gin.Context) {
	list, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponses(list))
}

func (h *SessionHandler) get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(*session))
}
