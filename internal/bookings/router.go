package bookings

import (
	"skybook/internal/shared/config"
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers all booking routes. Every route requires an
// authenticated user.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/bookings")
	group.Use(middleware.JWTAuthWithConfig(cfg))
	{
		group.POST("", controller.CreateBooking)
		group.GET("/mybookings", controller.GetMyBookings)
	}
}
