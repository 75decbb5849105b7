package api

import (
	"net/http"

	_ "github.com/Domenick1991/gymbooking/api/docs"
	"github.com/Domenick1991/gymbooking/internal/domain"
	"github.com/Domenick1991/gymbooking/internal/service/booking"
	"github.com/Domenick1991/gymbooking/internal/service/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterDeps struct {
	Sessions    sessions.SessionUseCase
	Bookings    booking.BookingUseCase
	Tokens      TokenParser
	ServiceName string
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), Tracing(d.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	v1 := r.Group("/api/v1", JWTAuth(d.Tokens))

	NewSessionHandler(d.Sessions).Register(v1.Group("/sessions"))

	bookings := NewBookingHandler(d.Bookings)
	bookings.Register(v1.Group("/bookings"))
	bookings.RegisterMembers(v1.Group("/members"))

	NewAdminHandler(d.Sessions, d.Bookings).Register(v1.Group("/admin", RequireRole(domain.RoleAdmin)))

	return r
}
