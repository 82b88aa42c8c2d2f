package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

// EventSeatBooked is the wire name clients switch on.
const EventSeatBooked = "seatBooked"

// ChangeEvent describes a single seat flipping state. It is both the Kafka
// payload and the websocket frame body.
type ChangeEvent struct {
	FlightID   uuid.UUID `json:"flightId"`
	SeatNumber string    `json:"seatNumber"`
	Booked     bool      `json:"isBooked"`
}

// Frame is the envelope pushed to websocket subscribers.
type Frame struct {
	Event string      `json:"event"`
	Data  ChangeEvent `json:"data"`
}

func (e ChangeEvent) Marshal() ([]byte, error) {
	return json.Marshal(Frame{Event: EventSeatBooked, Data: e})
}

func UnmarshalEvent(raw []byte) (ChangeEvent, error) {
	var e ChangeEvent
	err := json.Unmarshal(raw, &e)
	return e, err
}
