// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"skybook/internal/auth"
	"skybook/internal/bookings"
	"skybook/internal/flights"
	"skybook/internal/inventory"
	"skybook/internal/realtime"
	"skybook/internal/shared/config"
	"skybook/internal/shared/database"
	"skybook/pkg/cache"
	"skybook/pkg/logger"
	"skybook/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	log       *logger.Logger
	hub       *realtime.Hub
	publisher realtime.Publisher

	limiter *ratelimit.RateLimiter

	// flightService is shared with the booking wiring so a confirmed
	// reservation can invalidate the cached seat map.
	flightService flights.Service
	flightRepo    flights.Repository
}

// NewRouter creates a new router instance. The hub and publisher are
// created by the caller because their lifecycle outlives request handling.
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, hub *realtime.Hub, publisher realtime.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		log:       log,
		hub:       hub,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.limiter = ratelimit.NewRateLimiter(r.db.GetRedis(), &ratelimit.Config{
		Enabled:         r.config.RateLimit.Enabled,
		WindowDuration:  r.config.RateLimit.WindowDuration,
		DefaultRequests: r.config.RateLimit.DefaultRequests,
		PublicRequests:  r.config.RateLimit.PublicRequests,
		AuthRequests:    r.config.RateLimit.AuthRequests,
		BookingRequests: r.config.RateLimit.BookingRequests,
		WhitelistedIPs:  r.config.RateLimit.WhitelistedIPs,
	})

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupFlightRoutes(api)
		r.setupBookingRoutes(api)
	}

	// Websocket subscriptions live outside the versioned API prefix.
	r.setupRealtimeRoutes(engine)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skybook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skybook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authGroup := rg.Group("")
	authGroup.Use(ratelimit.Middleware(r.limiter, ratelimit.RateLimitTypeAuth))
	authRouter.SetupRoutes(authGroup)
}

// setupFlightRoutes configures flight search, routing and seat map routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	cacheService := cache.NewService(r.db.GetRedis())

	r.flightRepo = flights.NewRepository(r.db.GetPostgreSQL())
	r.flightService = flights.NewService(r.flightRepo, cacheService, r.config.SeatMap)
	flightController := flights.NewController(r.flightService)

	flightGroup := rg.Group("")
	flightGroup.Use(ratelimit.Middleware(r.limiter, ratelimit.RateLimitTypePublic))
	flights.SetupFlightRoutes(flightGroup, flightController, r.config)
}

// setupBookingRoutes configures seat reservation routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	store := inventory.NewStore(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, store, r.flightRepo, r.flightService, r.publisher, r.log)
	bookingController := bookings.NewController(bookingService)

	bookingGroup := rg.Group("")
	bookingGroup.Use(ratelimit.Middleware(r.limiter, ratelimit.RateLimitTypeBooking))
	bookings.SetupBookingRoutes(bookingGroup, bookingController, r.config)
}

// setupRealtimeRoutes configures the websocket subscription endpoint
func (r *Router) setupRealtimeRoutes(engine *gin.Engine) {
	controller := realtime.NewController(r.hub, r.flightRepo, r.log)
	realtime.SetupRealtimeRoutes(engine, controller)
}
