package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	codeInvalidInput      = "INVALID_INPUT"
	codeUnauthorized      = "UNAUTHORIZED"
	codeForbidden         = "FORBIDDEN"
	codeNotFound          = "NOT_FOUND"
	codeScheduleConflict  = "SCHEDULE_CONFLICT"
	codeDuplicateBooking  = "DUPLICATE_BOOKING"
	codeBookingInProgress = "BOOKING_IN_PROGRESS"
	codeCapacityExceeded  = "CAPACITY_EXCEEDED"
	codeInternal          = "INTERNAL"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, codeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, domain.ErrScheduleConflict):
		return http.StatusConflict, codeScheduleConflict
	case errors.Is(err, domain.ErrDuplicateBooking):
		return http.StatusConflict, codeDuplicateBooking
	case errors.Is(err, domain.ErrBookingInProgress):
		return http.StatusConflict, codeBookingInProgress
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity, codeCapacityExceeded
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// writeError maps a service error onto the response. Internal errors are
// logged and replaced with a generic message.
func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Code: code})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidInput})
}
