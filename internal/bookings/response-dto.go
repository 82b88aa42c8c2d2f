package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingRef string    `json:"bookingRef"`
	FlightID   uuid.UUID `json:"flightId"`
	SeatNumber string    `json:"seatNumber"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`

	// Flight details for the my-bookings listing.
	Airline       string    `json:"airline,omitempty"`
	FlightNumber  string    `json:"flightNumber,omitempty"`
	Source        string    `json:"source,omitempty"`
	Destination   string    `json:"destination,omitempty"`
	DepartureTime time.Time `json:"departureTime,omitempty"`
}
