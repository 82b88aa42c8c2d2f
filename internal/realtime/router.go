package realtime

import (
	"github.com/gin-gonic/gin"
)

// SetupRealtimeRoutes registers the websocket subscription endpoint.
func SetupRealtimeRoutes(r *gin.Engine, controller *Controller) {
	r.GET("/ws/flights/:id", controller.Subscribe)
}
