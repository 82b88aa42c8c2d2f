package realtime

import (
	"net/http"
	"time"

	"skybook/internal/flights"
	"skybook/internal/shared/utils/response"
	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	hub     *Hub
	flights flights.Repository
	log     *logger.Logger
}

func NewController(hub *Hub, flightRepo flights.Repository, log *logger.Logger) *Controller {
	return &Controller{hub: hub, flights: flightRepo, log: log}
}

// Subscribe handles GET /ws/flights/:id. An unknown flight is rejected
// before the upgrade; no subscription is created for it.
func (c *Controller) Subscribe(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid flight ID")
		return
	}

	if _, err := c.flights.GetFlightByID(ctx.Request.Context(), flightID); err != nil {
		if err == flights.ErrFlightNotFound {
			response.RespondError(ctx, http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load flight")
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.WithError(err).Error("websocket upgrade failed")
		return
	}

	cl := &client{
		flightID: flightID,
		conn:     conn,
		send:     make(chan []byte, 16),
	}
	c.hub.register <- cl

	go c.writePump(cl)
	go c.readPump(cl)
}

// readPump drains client frames so pongs and close messages are processed.
// Subscribers never send application data.
func (c *Controller) readPump(cl *client) {
	defer func() {
		c.hub.unregister <- cl
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Controller) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
