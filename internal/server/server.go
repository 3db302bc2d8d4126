package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"turfbook/internal/auth"
	"turfbook/internal/booking"
	"turfbook/internal/config"
	"turfbook/internal/logger"
	"turfbook/internal/realtime"
	"turfbook/internal/turf"
	"turfbook/internal/user"

	"github.com/gin-gonic/gin"
)

// Handlers groups the per-module HTTP handlers mounted by the router.
type Handlers struct {
	User     *user.Handler
	Turf     *turf.Handler
	Booking  *booking.Handler
	Realtime *realtime.Handler
	Checks   map[string]Pinger
}

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
}

func New(cfg *config.Config, h Handlers) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		TracingMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	limiter := NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, 3*time.Minute)
	authenticate := auth.Authenticate(cfg.JWTSecret)
	requireAuth := auth.RequireAuth(cfg.JWTSecret)

	api := router.Group("/api")
	{
		api.GET("/", h.Turf.ListTurfs)
		api.GET("/turf/:id", h.Turf.GetTurf)
		api.GET("/turf/:id/slots", h.Turf.ListSlots)

		api.GET("/book/:slotId", h.Booking.GetBookingPage)
		api.POST("/book/:slotId", requireAuth, h.Booking.BookSlot)

		api.POST("/register", limiter.Middleware(), h.User.Register)
		api.POST("/login", limiter.Middleware(), h.User.Login)
		api.POST("/logout", h.User.Logout)
		api.GET("/logout", h.User.Logout)
		api.GET("/auth/me", authenticate, h.User.Me)
	}

	member := api.Group("/user")
	member.Use(requireAuth)
	{
		member.GET("/dashboard", h.Booking.UserBookings)
		member.GET("/bookings", h.Booking.UserBookings)
	}

	admin := api.Group("/admin")
	admin.Use(requireAuth, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/dashboard", h.Booking.AdminDashboard)
		admin.GET("/bookings", h.Booking.AllBookings)
		admin.GET("/upcoming", h.Booking.UpcomingBookings)
		admin.POST("/mark-paid/:id", h.Booking.MarkPaid)
		admin.POST("/turfs", h.Turf.CreateTurf)
		admin.POST("/turfs/:id/slots", h.Turf.CreateSlot)
	}

	router.GET("/ws", authenticate, h.Realtime.Serve)

	router.GET("/health", Health(h.Checks))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:  router,
		limiter: limiter,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests. Hijacked websocket connections are
// not tracked here and must be closed by their owner.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.http.Shutdown(ctx)
}
