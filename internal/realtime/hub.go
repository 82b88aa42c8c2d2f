package realtime

import (
	"context"

	"skybook/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// client is one websocket subscriber scoped to a single flight.
type client struct {
	flightID uuid.UUID
	conn     *websocket.Conn
	send     chan []byte
}

// Hub fans change events out to websocket subscribers, partitioned per
// flight. All subscription state is owned by the run goroutine; the only
// way in is the channels.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan ChangeEvent

	// flightID -> connected clients. run-goroutine only.
	flights map[uuid.UUID]map[*client]bool

	log *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan ChangeEvent, 64),
		flights:    make(map[uuid.UUID]map[*client]bool),
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.flights {
				for c := range clients {
					close(c.send)
				}
			}
			return

		case c := <-h.register:
			if h.flights[c.flightID] == nil {
				h.flights[c.flightID] = make(map[*client]bool)
			}
			h.flights[c.flightID][c] = true

		case c := <-h.unregister:
			if clients, ok := h.flights[c.flightID]; ok {
				if clients[c] {
					delete(clients, c)
					close(c.send)
					if len(clients) == 0 {
						delete(h.flights, c.flightID)
					}
				}
			}

		case event := <-h.broadcast:
			payload, err := event.Marshal()
			if err != nil {
				h.log.WithError(err).Error("failed to marshal change event")
				continue
			}
			for c := range h.flights[event.FlightID] {
				select {
				case c.send <- payload:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.flights[event.FlightID], c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast hands an event to the hub without blocking the caller.
func (h *Hub) Broadcast(event ChangeEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("hub broadcast buffer full, dropping event",
			"flight_id", event.FlightID.String(),
			"seat_number", event.SeatNumber)
	}
}
