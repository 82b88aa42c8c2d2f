package flights

import (
	"skybook/internal/shared/config"
	"skybook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupFlightRoutes registers all flight routes
func SetupFlightRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	group := rg.Group("/flights")
	{
		// Public routes
		group.GET("/search", controller.SearchFlights)
		group.GET("/route", controller.FindRoute)
		group.GET("/:id", controller.GetFlight)

		// Admin routes
		admin := group.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateFlight)
		}
	}
}
